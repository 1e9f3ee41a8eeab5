package handler

import (
	"context"

	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/misterexcel/FutDAO/state"
	"github.com/misterexcel/FutDAO/tx"
)

type VoteTxHandler struct {
	logger cmtlog.Logger
}

func NewVoteTxHandler(logger cmtlog.Logger) (h *VoteTxHandler) {
	logger = logger.With("module", "voteTx")
	h = &VoteTxHandler{
		logger: logger,
	}
	return
}

func (h *VoteTxHandler) Check(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *abcitypes.ResponseCheckTx, err error) {
	return checkPayload[tx.VoteTx](h.logger, btx)
}

func (h *VoteTxHandler) Deliver(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *Result, err error) {
	vtx, err := payload[tx.VoteTx](btx)
	if err != nil {
		return
	}
	t, err := ld.VoteOnProposal(vtx.Proposal, vtx.Vote)
	if err != nil {
		return
	}
	res = &Result{Tx: t, Proposal: ld.Proposal(vtx.Proposal)}
	return
}
