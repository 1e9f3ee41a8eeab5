package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	abcitypes "github.com/cometbft/cometbft/abci/types"
	"github.com/gin-gonic/gin"
	"github.com/misterexcel/FutDAO/state"
	"github.com/misterexcel/FutDAO/tx"
)

type BalanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

type VotingPowerResponse struct {
	Address     string `json:"address"`
	VotingPower uint64 `json:"votingPower"`
}

type QueryResponse struct {
	Code   uint32          `json:"code"`
	Log    string          `json:"log,omitempty"`
	Height int64           `json:"height"`
	Value  json.RawMessage `json:"value,omitempty"`
}

type BuyNFTReq struct {
	Price *uint64 `json:"price,omitempty"`
}

func (s *Server) deliver(c *gin.Context, status int, btx *tx.LedgerTx) {
	res, err := s.app.DeliverTx(c.Request.Context(), btx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(status, res)
}

func proposalID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		abortInvalid(c, fmt.Errorf("bad proposal id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

// bindOptionalJSON decodes the request body into obj; an empty body leaves
// obj untouched.
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		abortInvalid(c, err)
		return false
	}
	return true
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.ledger.Status())
}

func (s *Server) handleQuery(c *gin.Context) {
	res, err := s.app.Query(c.Request.Context(), &abcitypes.RequestQuery{
		Path: c.Query("path"),
		Data: []byte(c.Query("data")),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, QueryResponse{
		Code:   res.Code,
		Log:    res.Log,
		Height: res.Height,
		Value:  res.Value,
	})
}

func (s *Server) handleGetWallet(c *gin.Context) {
	acnt := s.ledger.CurrentAccount()
	if acnt == nil {
		abortWithError(c, state.ErrAccountNotFound)
		return
	}
	c.JSON(http.StatusOK, acnt)
}

func (s *Server) handleConnect(c *gin.Context) {
	acnt, err := s.ledger.ConnectWallet()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, acnt)
}

func (s *Server) handleDisconnect(c *gin.Context) {
	s.ledger.DisconnectWallet()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleBalance(c *gin.Context) {
	addr := c.Param("address")
	bal, err := s.ledger.Balance(addr)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Address: addr, Balance: bal})
}

func (s *Server) handleVotingPower(c *gin.Context) {
	addr := c.Param("address")
	power, err := s.ledger.VotingPower(addr)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, VotingPowerResponse{Address: addr, VotingPower: power})
}

func (s *Server) handleListProposals(c *gin.Context) {
	c.JSON(http.StatusOK, s.ledger.Proposals())
}

func (s *Server) handleGetProposal(c *gin.Context) {
	id, ok := proposalID(c)
	if !ok {
		return
	}
	p := s.ledger.Proposal(id)
	if p == nil {
		abortWithError(c, state.ErrProposalNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleCreateProposal(c *gin.Context) {
	var req tx.ProposalTx
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalid(c, err)
		return
	}
	s.deliver(c, http.StatusCreated, tx.NewLedgerTx(tx.LedgerTxTypeCreateProposal, &req))
}

func (s *Server) handleVote(c *gin.Context) {
	id, ok := proposalID(c)
	if !ok {
		return
	}
	var req tx.VoteTx
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalid(c, err)
		return
	}
	req.Proposal = id
	s.deliver(c, http.StatusOK, tx.NewLedgerTx(tx.LedgerTxTypeVote, &req))
}

func (s *Server) handleExecute(c *gin.Context) {
	id, ok := proposalID(c)
	if !ok {
		return
	}
	s.deliver(c, http.StatusOK, tx.NewLedgerTx(tx.LedgerTxTypeExecuteProposal, &tx.ExecuteProposalTx{Proposal: id}))
}

func (s *Server) handleSettle(c *gin.Context) {
	id, ok := proposalID(c)
	if !ok {
		return
	}
	s.deliver(c, http.StatusOK, tx.NewLedgerTx(tx.LedgerTxTypeSettleProposal, &tx.SettleProposalTx{Proposal: id}))
}

func (s *Server) handleTransfer(c *gin.Context) {
	var req tx.TransferTx
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalid(c, err)
		return
	}
	s.deliver(c, http.StatusOK, tx.NewLedgerTx(tx.LedgerTxTypeTransfer, &req))
}

func (s *Server) handleListTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, s.ledger.Transactions(c.Query("address")))
}

func (s *Server) handleListNFTs(c *gin.Context) {
	c.JSON(http.StatusOK, s.ledger.NFTs(c.Query("owner")))
}

func (s *Server) handleGetNFT(c *gin.Context) {
	n := s.ledger.NFT(c.Param("id"))
	if n == nil {
		abortWithError(c, state.ErrNftNotFound)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (s *Server) handleMintNFT(c *gin.Context) {
	var req tx.MintNFTTx
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalid(c, err)
		return
	}
	s.deliver(c, http.StatusCreated, tx.NewLedgerTx(tx.LedgerTxTypeMintNFT, &req))
}

// handleBuyNFT pays the listed price unless the body names one.
func (s *Server) handleBuyNFT(c *gin.Context) {
	id := c.Param("id")
	var req BuyNFTReq
	if !bindOptionalJSON(c, &req) {
		return
	}
	var price uint64
	if req.Price != nil {
		price = *req.Price
	} else {
		n := s.ledger.NFT(id)
		if n == nil {
			abortWithError(c, state.ErrNftNotFound)
			return
		}
		price = n.ListPrice()
	}
	s.deliver(c, http.StatusOK, tx.NewLedgerTx(tx.LedgerTxTypeBuyNFT, &tx.BuyNFTTx{NFT: id, Price: price}))
}

// handleBroadcast accepts a complete tx envelope, as produced by
// tx.MarshalLedgerTx.
func (s *Server) handleBroadcast(c *gin.Context) {
	dat, err := io.ReadAll(c.Request.Body)
	if err != nil {
		abortInvalid(c, err)
		return
	}
	btx, err := tx.UnmarshalLedgerTx(dat)
	if err != nil {
		if errors.Is(err, tx.ErrUnsupportedTxType) || errors.Is(err, tx.ErrUnsupportedTxVersion) {
			abortWithError(c, err)
			return
		}
		abortInvalid(c, err)
		return
	}
	s.deliver(c, http.StatusOK, btx)
}
