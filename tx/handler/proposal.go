package handler

import (
	"context"

	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/misterexcel/FutDAO/state"
	"github.com/misterexcel/FutDAO/tx"
)

type ProposalTxHandler struct {
	logger cmtlog.Logger
}

func NewProposalTxHandler(logger cmtlog.Logger) (h *ProposalTxHandler) {
	logger = logger.With("module", "proposalTx")
	h = &ProposalTxHandler{
		logger: logger,
	}
	return
}

func (h *ProposalTxHandler) Check(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *abcitypes.ResponseCheckTx, err error) {
	return checkPayload[tx.ProposalTx](h.logger, btx)
}

func (h *ProposalTxHandler) Deliver(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *Result, err error) {
	ptx, err := payload[tx.ProposalTx](btx)
	if err != nil {
		return
	}
	p, t, err := ld.CreateProposal(ptx.Title, ptx.Description, ptx.Category, ptx.Duration())
	if err != nil {
		return
	}
	res = &Result{Tx: t, Proposal: p}
	return
}

type ExecuteProposalTxHandler struct {
	logger cmtlog.Logger
}

func NewExecuteProposalTxHandler(logger cmtlog.Logger) (h *ExecuteProposalTxHandler) {
	logger = logger.With("module", "executeProposalTx")
	h = &ExecuteProposalTxHandler{
		logger: logger,
	}
	return
}

func (h *ExecuteProposalTxHandler) Check(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *abcitypes.ResponseCheckTx, err error) {
	return checkPayload[tx.ExecuteProposalTx](h.logger, btx)
}

func (h *ExecuteProposalTxHandler) Deliver(ctx context.Context, ld *state.Ledger, btx *tx.LedgerTx) (res *Result, err error) {
	etx, err := payload[tx.ExecuteProposalTx](btx)
	if err != nil {
		return
	}
	t, err := ld.ExecuteProposal(etx.Proposal)
	if err != nil {
		return
	}
	res = &Result{Tx: t, Proposal: ld.Proposal(etx.Proposal)}
	return
}
