package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cometbft/cometbft/libs/pubsub/query"
	"github.com/misterexcel/FutDAO/config"
	"github.com/misterexcel/FutDAO/state"
	"github.com/misterexcel/FutDAO/tx"
	"github.com/misterexcel/FutDAO/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, mutate ...func(cfg *config.Config)) *LedgerApp {
	t.Helper()
	cfg := config.TestConfig()
	for _, m := range mutate {
		m(cfg)
	}
	app, err := NewLedgerApp(cfg, cmtlog.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, app.Start())
	t.Cleanup(app.Stop)
	return app
}

func TestDeliverTx(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	res, err := app.DeliverTx(ctx, tx.NewLedgerTx(tx.LedgerTxTypeTransfer, &tx.TransferTx{To: "club", Amount: 100}))
	require.NoError(t, err)
	assert.Equal(t, types.TxTypeTransfer, res.Tx.Type)
	assert.Equal(t, uint64(1150), app.Ledger().CurrentAccount().Balance)

	_, err = app.DeliverTx(ctx, tx.NewLedgerTx(tx.LedgerTxTypeMintNFT, &tx.MintNFTTx{}))
	require.ErrorIs(t, err, tx.ErrInvalidTx)

	_, err = app.DeliverTx(ctx, tx.NewLedgerTx("stake", &tx.TransferTx{To: "x"}))
	require.ErrorIs(t, err, tx.ErrUnsupportedTxType)

	_, err = app.DeliverTx(ctx, tx.NewLedgerTx(tx.LedgerTxTypeVote, &tx.VoteTx{Proposal: 2, Vote: types.VoteFor}))
	require.ErrorIs(t, err, state.ErrProposalNotActive)

	chk, err := app.CheckTx(ctx, tx.NewLedgerTx(tx.LedgerTxTypeVote, &tx.VoteTx{Proposal: 1, Vote: "abstain"}))
	require.NoError(t, err)
	assert.Equal(t, uint32(1), chk.Code)
}

func TestQuery(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	res, err := app.Query(ctx, &abcitypes.RequestQuery{Path: "/proposals"})
	require.NoError(t, err)
	var ps []*types.Proposal
	require.NoError(t, json.Unmarshal(res.Value, &ps))
	assert.Len(t, ps, 2)
	assert.Equal(t, app.Ledger().Version(), res.Height)

	res, err = app.Query(ctx, &abcitypes.RequestQuery{Path: "/proposals/", Data: []byte("2")})
	require.NoError(t, err)
	var p types.Proposal
	require.NoError(t, json.Unmarshal(res.Value, &p))
	assert.Equal(t, types.ProposalStatusPassed, p.Status)

	res, err = app.Query(ctx, &abcitypes.RequestQuery{Path: "/proposals/", Data: []byte("9")})
	require.NoError(t, err)
	assert.Equal(t, CodeNotFound, res.Code)

	res, err = app.Query(ctx, &abcitypes.RequestQuery{Path: "/proposals/", Data: []byte("two")})
	require.NoError(t, err)
	assert.Equal(t, CodeBadQuery, res.Code)

	res, err = app.Query(ctx, &abcitypes.RequestQuery{Path: "/accounts/", Data: []byte(types.DefaultAccountAddress)})
	require.NoError(t, err)
	assert.Equal(t, CodeOK, res.Code)
	res, err = app.Query(ctx, &abcitypes.RequestQuery{Path: "/accounts/", Data: []byte("other")})
	require.NoError(t, err)
	assert.Equal(t, CodeNotFound, res.Code)

	res, err = app.Query(ctx, &abcitypes.RequestQuery{Path: "/nfts/", Data: []byte("nobody")})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(res.Value))

	res, err = app.Query(ctx, &abcitypes.RequestQuery{Path: "/status/"})
	require.NoError(t, err)
	var st types.LedgerStatus
	require.NoError(t, json.Unmarshal(res.Value, &st))
	assert.Equal(t, 2, st.Transactions)

	res, err = app.Query(ctx, &abcitypes.RequestQuery{Path: "/store/", Data: []byte("pi")})
	require.NoError(t, err)
	assert.Equal(t, CodeOK, res.Code)
	var leaf []byte
	require.NoError(t, json.Unmarshal(res.Value, &leaf))
	assert.NotEmpty(t, leaf)

	res, err = app.Query(ctx, &abcitypes.RequestQuery{Path: "/store/", Data: []byte("missing")})
	require.NoError(t, err)
	assert.Equal(t, CodeNotFound, res.Code)

	res, err = app.Query(ctx, &abcitypes.RequestQuery{Path: "/store/"})
	require.NoError(t, err)
	assert.Equal(t, CodeBadQuery, res.Code)

	res, err = app.Query(ctx, &abcitypes.RequestQuery{Path: "/validators/"})
	require.NoError(t, err)
	assert.Equal(t, CodeNoRoute, res.Code)
}

func TestEventBusDeliversCommittedEvents(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	all, err := app.EventBus().Subscribe(ctx, "all", QueryAll, 10)
	require.NoError(t, err)
	votes, err := app.EventBus().Subscribe(ctx, "votes", query.MustCompile("ledger.event='vote_cast' AND vote_cast.proposal=1"), 10)
	require.NoError(t, err)

	_, err = app.Ledger().TransferTokens("club", 5)
	require.NoError(t, err)
	_, err = app.Ledger().VoteOnProposal(1, types.VoteFor)
	require.NoError(t, err)

	for _, want := range []string{types.EventTransferType, types.EventVoteCastType} {
		select {
		case msg := <-all.Out():
			ev, ok := msg.Data().(abcitypes.Event)
			require.True(t, ok)
			assert.Equal(t, want, ev.Type)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}

	select {
	case msg := <-votes.Out():
		ev := types.DecodeEventVoteCast(msg.Data().(abcitypes.Event))
		require.NotNil(t, ev)
		assert.Equal(t, uint64(1250), ev.Power)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for vote event")
	}
	require.NoError(t, app.EventBus().UnsubscribeAll(ctx, "votes"))
}

func TestFlattenEvent(t *testing.T) {
	ev := types.EncodeEventTransfer(&types.EventTransfer{From: "a", To: "b", Amount: 3, TxHash: "h"})
	flat := FlattenEvent(ev)
	assert.Equal(t, []string{"transfer"}, flat[EventTypeKey])
	assert.Equal(t, []string{"3"}, flat["transfer.amount"])
	assert.Equal(t, []string{"b"}, flat["transfer.to"])
}

func TestSettleLoop(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) {
		cfg.Ledger.SettleInterval = 10 * time.Millisecond
	})
	p, _, err := app.Ledger().CreateProposal("Quick", "", "misc", time.Millisecond)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return app.Ledger().Proposal(p.ID).Status == types.ProposalStatusRejected
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLoadGenesisFromFile(t *testing.T) {
	home := t.TempDir()
	gen := &types.GenesisDoc{
		Account: &types.GenesisAccount{Address: "member-7", Balance: 10},
	}
	genFile := filepath.Join(home, "genesis.json")
	require.NoError(t, types.ExportGenesisFile(gen, genFile))

	app := newTestApp(t, func(cfg *config.Config) {
		cfg.Ledger.GenesisFile = genFile
	})
	acnt := app.Ledger().CurrentAccount()
	require.NotNil(t, acnt)
	assert.Equal(t, "member-7", acnt.Address)
	assert.Empty(t, app.Ledger().Proposals())

	require.NoError(t, os.WriteFile(genFile, []byte("{"), 0o600))
	cfg := config.TestConfig()
	cfg.Ledger.GenesisFile = genFile
	_, err := NewLedgerApp(cfg, cmtlog.NewNopLogger())
	require.Error(t, err)
}
