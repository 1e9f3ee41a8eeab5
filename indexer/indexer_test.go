package indexer

import (
	"context"
	"testing"
	"time"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/misterexcel/FutDAO/app"
	"github.com/misterexcel/FutDAO/config"
	"github.com/misterexcel/FutDAO/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndexer(t *testing.T) *EventIndexer {
	t.Helper()
	idx, err := NewEventIndexer(cmtlog.NewNopLogger(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestHandleEvents(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndexer(t)

	idx.HandleEvent(ctx, types.EncodeEventProposalCreated(&types.EventProposalCreated{
		Proposal: 3, Proposer: "member", Title: "Kit", Category: "merch", Deadline: 1000, TxHash: "0x01",
	}))
	idx.HandleEvent(ctx, types.EncodeEventVoteCast(&types.EventVoteCast{
		Proposal: 3, Voter: "member", Vote: types.VoteFor, Power: 40, TxHash: "0x02",
	}))
	idx.HandleEvent(ctx, types.EncodeEventVoteCast(&types.EventVoteCast{
		Proposal: 3, Voter: "member", Vote: types.VoteAgainst, Power: 15, TxHash: "0x03",
	}))

	proposals, total, err := idx.GetProposals("", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, proposals, 1)
	assert.Equal(t, "Kit", proposals[0].Title)
	assert.Equal(t, uint64(40), proposals[0].VotesFor)
	assert.Equal(t, uint64(15), proposals[0].VotesAgainst)

	idx.HandleEvent(ctx, types.EncodeEventProposalSettled(&types.EventProposalSettled{
		Proposal: 3, Status: types.ProposalStatusPassed, VotesFor: 40, VotesAgainst: 15, TxHash: "0x04",
	}))
	passed, total, err := idx.GetProposals(string(types.ProposalStatusPassed), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.NotZero(t, passed[0].SettleTimestamp)

	idx.HandleEvent(ctx, types.EncodeEventProposalExecuted(&types.EventProposalExecuted{Proposal: 3, Executor: "member", TxHash: "0x05"}))
	executed, _, err := idx.GetProposals(string(types.ProposalStatusExecuted), 0, 10)
	require.NoError(t, err)
	assert.Len(t, executed, 1)

	votes, total, err := idx.GetVotes(3, "", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Equal(t, "against", votes[0].Vote)

	none, total, err := idx.GetVotes(3, "someone", 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, none)
}

func TestPaging(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndexer(t)
	for i := 0; i < 5; i++ {
		idx.HandleEvent(ctx, types.EncodeEventTransfer(&types.EventTransfer{From: "a", To: "b", Amount: uint64(i + 1)}))
	}
	idx.HandleEvent(ctx, types.EncodeEventTransfer(&types.EventTransfer{From: "c", To: "d", Amount: 9}))

	page, total, err := idx.GetTransfers("a", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, uint64(3), page[0].Amount)

	all, total, err := idx.GetTransfers("", -1, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), total)
	assert.Len(t, all, 6)

	byRecipient, total, err := idx.GetTransfers("d", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, uint64(9), byRecipient[0].Amount)
}

func TestIndexLedgerEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ledgerApp, err := app.NewLedgerApp(config.TestConfig(), cmtlog.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, ledgerApp.Start())
	defer ledgerApp.Stop()

	idx := newTestIndexer(t)
	require.NoError(t, idx.Start(ctx, ledgerApp.EventBus()))
	require.ErrorIs(t, idx.Start(ctx, ledgerApp.EventBus()), ErrAlreadyStarted)

	ld := ledgerApp.Ledger()
	price := uint64(30)
	n, _, err := ld.MintNFT(types.NFTMetadata{Name: "Badge"}, &price)
	require.NoError(t, err)
	_, _, err = ld.BuyNFT(n.ID, 30)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		sales, total, err := idx.GetSales(n.ID, 0, 10)
		return err == nil && total == 1 && sales[0].Price == 30
	}, 2*time.Second, 10*time.Millisecond)

	mints, total, err := idx.GetMints(types.DefaultAccountAddress, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.True(t, mints[0].ForSale)
	assert.Equal(t, "Badge", mints[0].Name)

	cancel()
	idx.Wait()
}
