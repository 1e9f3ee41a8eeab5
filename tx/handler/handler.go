package handler

import (
	"context"

	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/misterexcel/FutDAO/state"
	"github.com/misterexcel/FutDAO/tx"
	"github.com/misterexcel/FutDAO/types"
)

// Result carries what a delivered tx produced. Fields not touched by the
// tx type are nil.
type Result struct {
	Tx       *types.Transaction `json:"transaction"`
	Proposal *types.Proposal    `json:"proposal,omitempty"`
	NFT      *types.NFT         `json:"nft,omitempty"`
}

type TxHandler interface {
	Check(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *abcitypes.ResponseCheckTx, err error)
	Deliver(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *Result, err error)
}

func payload[T any](btx *tx.LedgerTx) (*T, error) {
	p, ok := btx.Tx.(*T)
	if !ok {
		return nil, tx.ErrUnmatchedTxType
	}
	return p, nil
}

// checkPayload asserts the payload type and runs its stateless validation.
// Validation failures are reported through the response code, not err.
func checkPayload[T any](logger cmtlog.Logger, btx *tx.LedgerTx) (res *abcitypes.ResponseCheckTx, err error) {
	p, err := payload[T](btx)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ResponseCheckTx{Code: 0}
	v, ok := any(p).(tx.Validator)
	if !ok {
		return
	}
	if err1 := v.ValidateBasic(); err1 != nil {
		logger.Info("CheckTx fail", "type", btx.Type, "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

// NewHandlers returns one handler per ledger tx type.
func NewHandlers(logger cmtlog.Logger) map[tx.LedgerTxType]TxHandler {
	return map[tx.LedgerTxType]TxHandler{
		tx.LedgerTxTypeCreateProposal:  NewProposalTxHandler(logger),
		tx.LedgerTxTypeVote:            NewVoteTxHandler(logger),
		tx.LedgerTxTypeExecuteProposal: NewExecuteProposalTxHandler(logger),
		tx.LedgerTxTypeSettleProposal:  NewSettleProposalTxHandler(logger),
		tx.LedgerTxTypeTransfer:        NewTransferTxHandler(logger),
		tx.LedgerTxTypeMintNFT:         NewMintNFTTxHandler(logger),
		tx.LedgerTxTypeBuyNFT:          NewBuyNFTTxHandler(logger),
	}
}
