package handler

import (
	"context"

	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/misterexcel/FutDAO/state"
	"github.com/misterexcel/FutDAO/tx"
)

type TransferTxHandler struct {
	logger cmtlog.Logger
}

func NewTransferTxHandler(logger cmtlog.Logger) (h *TransferTxHandler) {
	logger = logger.With("module", "transferTx")
	h = &TransferTxHandler{
		logger: logger,
	}
	return
}

func (h *TransferTxHandler) Check(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *abcitypes.ResponseCheckTx, err error) {
	return checkPayload[tx.TransferTx](h.logger, btx)
}

func (h *TransferTxHandler) Deliver(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *Result, err error) {
	ttx, err := payload[tx.TransferTx](btx)
	if err != nil {
		return
	}
	t, err := ld.TransferTokens(ttx.To, ttx.Amount)
	if err != nil {
		return
	}
	res = &Result{Tx: t}
	return
}
