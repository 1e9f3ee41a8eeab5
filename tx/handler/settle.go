package handler

import (
	"context"

	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/misterexcel/FutDAO/state"
	"github.com/misterexcel/FutDAO/tx"
)

type SettleProposalTxHandler struct {
	logger cmtlog.Logger
}

func NewSettleProposalTxHandler(logger cmtlog.Logger) (h *SettleProposalTxHandler) {
	logger = logger.With("module", "settleProposalTx")
	h = &SettleProposalTxHandler{
		logger: logger,
	}
	return
}

func (h *SettleProposalTxHandler) Check(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *abcitypes.ResponseCheckTx, err error) {
	return checkPayload[tx.SettleProposalTx](h.logger, btx)
}

func (h *SettleProposalTxHandler) Deliver(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *Result, err error) {
	stx, err := payload[tx.SettleProposalTx](btx)
	if err != nil {
		return
	}
	p, t, err := ld.SettleProposal(stx.Proposal)
	if err != nil {
		return
	}
	res = &Result{Tx: t, Proposal: p}
	return
}
