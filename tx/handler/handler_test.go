package handler

import (
	"context"
	"testing"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/misterexcel/FutDAO/state"
	"github.com/misterexcel/FutDAO/tx"
	"github.com/misterexcel/FutDAO/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) *state.Ledger {
	t.Helper()
	ld, err := state.NewLedger(nil, state.WithConnectDelay(0))
	require.NoError(t, err)
	return ld
}

func TestHandlersCoverEveryTxType(t *testing.T) {
	hs := NewHandlers(cmtlog.NewNopLogger())
	for _, tp := range []tx.LedgerTxType{
		tx.LedgerTxTypeCreateProposal,
		tx.LedgerTxTypeVote,
		tx.LedgerTxTypeExecuteProposal,
		tx.LedgerTxTypeSettleProposal,
		tx.LedgerTxTypeTransfer,
		tx.LedgerTxTypeMintNFT,
		tx.LedgerTxTypeBuyNFT,
	} {
		assert.Contains(t, hs, tp)
	}
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	ld := newLedger(t)
	h := NewVoteTxHandler(cmtlog.NewNopLogger())

	res, err := h.Check(ctx, ld, tx.NewLedgerTx(tx.LedgerTxTypeVote, &tx.VoteTx{Proposal: 1, Vote: types.VoteFor}))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), res.Code)

	res, err = h.Check(ctx, ld, tx.NewLedgerTx(tx.LedgerTxTypeVote, &tx.VoteTx{Proposal: 1, Vote: "maybe"}))
	require.NoError(t, err)
	assert.Equal(t, uint32(1), res.Code)
	assert.NotEmpty(t, res.Log)

	_, err = h.Check(ctx, ld, tx.NewLedgerTx(tx.LedgerTxTypeVote, &tx.TransferTx{To: "x"}))
	require.ErrorIs(t, err, tx.ErrUnmatchedTxType)
}

func TestDeliver(t *testing.T) {
	ctx := context.Background()
	ld := newLedger(t)
	hs := NewHandlers(cmtlog.NewNopLogger())

	res, err := hs[tx.LedgerTxTypeCreateProposal].Deliver(ctx, ld, tx.NewLedgerTx(tx.LedgerTxTypeCreateProposal, &tx.ProposalTx{Title: "Academy"}))
	require.NoError(t, err)
	require.NotNil(t, res.Proposal)
	assert.Equal(t, uint64(3), res.Proposal.ID)
	assert.Equal(t, types.TxTypeProposal, res.Tx.Type)

	res, err = hs[tx.LedgerTxTypeVote].Deliver(ctx, ld, tx.NewLedgerTx(tx.LedgerTxTypeVote, &tx.VoteTx{Proposal: 3, Vote: types.VoteAgainst}))
	require.NoError(t, err)
	assert.Equal(t, uint64(1250), res.Proposal.VotesAgainst)

	res, err = hs[tx.LedgerTxTypeExecuteProposal].Deliver(ctx, ld, tx.NewLedgerTx(tx.LedgerTxTypeExecuteProposal, &tx.ExecuteProposalTx{Proposal: 2}))
	require.NoError(t, err)
	assert.Equal(t, types.ProposalStatusExecuted, res.Proposal.Status)

	_, err = hs[tx.LedgerTxTypeSettleProposal].Deliver(ctx, ld, tx.NewLedgerTx(tx.LedgerTxTypeSettleProposal, &tx.SettleProposalTx{Proposal: 3}))
	require.ErrorIs(t, err, state.ErrVotingNotEnded)

	res, err = hs[tx.LedgerTxTypeTransfer].Deliver(ctx, ld, tx.NewLedgerTx(tx.LedgerTxTypeTransfer, &tx.TransferTx{To: "club", Amount: 50}))
	require.NoError(t, err)
	assert.Equal(t, uint64(50), res.Tx.Amount)

	price := uint64(20)
	res, err = hs[tx.LedgerTxTypeMintNFT].Deliver(ctx, ld, tx.NewLedgerTx(tx.LedgerTxTypeMintNFT, &tx.MintNFTTx{Name: "Pin", Price: &price}))
	require.NoError(t, err)
	require.NotNil(t, res.NFT)
	assert.True(t, res.NFT.IsForSale)

	res, err = hs[tx.LedgerTxTypeBuyNFT].Deliver(ctx, ld, tx.NewLedgerTx(tx.LedgerTxTypeBuyNFT, &tx.BuyNFTTx{NFT: res.NFT.ID, Price: 20}))
	require.NoError(t, err)
	assert.False(t, res.NFT.IsForSale)
	assert.Equal(t, types.TxTypeNFTPurchase, res.Tx.Type)
}
