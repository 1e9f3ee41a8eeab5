package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/misterexcel/FutDAO/api"
	"github.com/misterexcel/FutDAO/app"
	"github.com/misterexcel/FutDAO/config"
	"github.com/misterexcel/FutDAO/indexer"
	"github.com/misterexcel/FutDAO/tx"
	"github.com/misterexcel/FutDAO/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const otherAddress = "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	logger := log.NewNopLogger()
	cfg := config.TestConfig()
	ledgerApp, err := app.NewLedgerApp(cfg, logger)
	require.NoError(t, err)
	require.NoError(t, ledgerApp.Start())
	idx, err := indexer.NewEventIndexer(logger, ":memory:")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, idx.Start(ctx, ledgerApp.EventBus()))

	srv := api.NewServer(cfg.API, ledgerApp, idx, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
		idx.Wait()
		ledgerApp.Stop()
		idx.Close()
	})
	return New(ts.URL + "/")
}

func TestClientFlow(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	acnt, err := c.Account(ctx)
	require.NoError(t, err)
	require.NotNil(t, acnt)

	bal, err := c.Balance(ctx, acnt.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(types.DefaultAccountBalance), bal)

	power, err := c.VotingPower(ctx, acnt.Address)
	require.NoError(t, err)
	assert.Equal(t, acnt.VotingPower, power)

	res, err := c.CreateProposal(ctx, &tx.ProposalTx{Title: "Cantera", Category: "academia"})
	require.NoError(t, err)
	id := res.Proposal.ID

	_, err = c.Vote(ctx, id, types.VoteAgainst)
	require.NoError(t, err)
	p, err := c.Proposal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, acnt.VotingPower, p.VotesAgainst)

	_, err = c.Transfer(ctx, otherAddress, 25)
	require.NoError(t, err)
	txs, err := c.Transactions(ctx, otherAddress)
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	mint, err := c.MintNFT(ctx, &tx.MintNFTTx{Name: "Bufanda"})
	require.NoError(t, err)
	assert.False(t, mint.NFT.IsForSale)
	nfts, err := c.NFTs(ctx, acnt.Address)
	require.NoError(t, err)
	assert.Len(t, nfts, 2)

	st, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Proposals)

	require.Eventually(t, func() bool {
		page, err := History[indexer.Transfer](ctx, c, "transfers", url.Values{"address": {otherAddress}}, 0, 10)
		return err == nil && page.Total == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, c.Disconnect(ctx))
	acnt, err = c.Account(ctx)
	require.NoError(t, err)
	assert.Nil(t, acnt)
}

func TestClientErrors(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.Proposal(ctx, 99)
	require.Error(t, err)
	assert.True(t, IsCode(err, "proposal_not_found"))
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusNotFound, ae.Status)

	_, err = c.Execute(ctx, 1)
	assert.True(t, IsCode(err, "proposal_not_executable"))

	_, err = c.BuyNFT(ctx, "nft-1", nil)
	assert.True(t, IsCode(err, "insufficient_balance"))

	_, err = c.Broadcast(ctx, tx.NewLedgerTx(tx.LedgerTxTypeVote, &tx.VoteTx{Proposal: 1, Vote: "maybe"}))
	assert.True(t, IsCode(err, api.CodeInvalidRequest))

	res, err := c.Query(ctx, "/nowhere", "")
	require.NoError(t, err)
	assert.Equal(t, app.CodeNoRoute, res.Code)
}
