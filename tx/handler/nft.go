package handler

import (
	"context"

	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/misterexcel/FutDAO/state"
	"github.com/misterexcel/FutDAO/tx"
	"github.com/misterexcel/FutDAO/types"
)

type MintNFTTxHandler struct {
	logger cmtlog.Logger
}

func NewMintNFTTxHandler(logger cmtlog.Logger) (h *MintNFTTxHandler) {
	logger = logger.With("module", "mintNFTTx")
	h = &MintNFTTxHandler{
		logger: logger,
	}
	return
}

func (h *MintNFTTxHandler) Check(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *abcitypes.ResponseCheckTx, err error) {
	return checkPayload[tx.MintNFTTx](h.logger, btx)
}

func (h *MintNFTTxHandler) Deliver(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *Result, err error) {
	mtx, err := payload[tx.MintNFTTx](btx)
	if err != nil {
		return
	}
	meta := types.NFTMetadata{
		Name:        mtx.Name,
		Description: mtx.Description,
		Image:       mtx.Image,
		Attributes:  mtx.Attributes,
	}
	n, t, err := ld.MintNFT(meta, mtx.Price)
	if err != nil {
		return
	}
	res = &Result{Tx: t, NFT: n}
	return
}

type BuyNFTTxHandler struct {
	logger cmtlog.Logger
}

func NewBuyNFTTxHandler(logger cmtlog.Logger) (h *BuyNFTTxHandler) {
	logger = logger.With("module", "buyNFTTx")
	h = &BuyNFTTxHandler{
		logger: logger,
	}
	return
}

func (h *BuyNFTTxHandler) Check(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *abcitypes.ResponseCheckTx, err error) {
	return checkPayload[tx.BuyNFTTx](h.logger, btx)
}

func (h *BuyNFTTxHandler) Deliver(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *Result, err error) {
	btxn, err := payload[tx.BuyNFTTx](btx)
	if err != nil {
		return
	}
	n, t, err := ld.BuyNFT(btxn.NFT, btxn.Price)
	if err != nil {
		return
	}
	res = &Result{Tx: t, NFT: n}
	return
}
