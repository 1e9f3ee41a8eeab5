package tx

import (
	"testing"
	"time"

	"github.com/misterexcel/FutDAO/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalLedgerTx(t *testing.T) {
	t.Run("vote", func(t *testing.T) {
		btx, err := UnmarshalLedgerTx([]byte(`{"version":1,"type":"vote","tx":{"proposal":3,"vote":"against"}}`))
		require.NoError(t, err)
		assert.Equal(t, LedgerTxTypeVote, btx.Type)
		vtx, ok := btx.Tx.(*VoteTx)
		require.True(t, ok)
		assert.Equal(t, uint64(3), vtx.Proposal)
		assert.Equal(t, types.VoteAgainst, vtx.Vote)
		require.NoError(t, vtx.ValidateBasic())
	})

	t.Run("mint with attributes", func(t *testing.T) {
		btx, err := UnmarshalLedgerTx([]byte(`{"type":"mint_nft","tx":{"name":"Ball","attributes":[{"trait_type":"Goals","value":3}],"price":40}}`))
		require.NoError(t, err)
		mtx := btx.Tx.(*MintNFTTx)
		require.NotNil(t, mtx.Price)
		assert.Equal(t, uint64(40), *mtx.Price)
		require.Len(t, mtx.Attributes, 1)
		assert.Equal(t, float64(3), mtx.Attributes[0].Value)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := UnmarshalLedgerTx([]byte(`{"type":"stake","tx":{}}`))
		require.ErrorIs(t, err, ErrUnsupportedTxType)
	})

	t.Run("missing version reads as current", func(t *testing.T) {
		btx, err := UnmarshalLedgerTx([]byte(`{"type":"transfer","tx":{"to":"x","amount":1}}`))
		require.NoError(t, err)
		assert.Equal(t, LedgerTxVersion1, btx.Version)

		btx, err = UnmarshalLedgerTx([]byte(`{"version":0,"type":"transfer","tx":{"to":"x","amount":1}}`))
		require.NoError(t, err)
		assert.Equal(t, LedgerTxVersion1, btx.Version)
	})

	t.Run("future version", func(t *testing.T) {
		_, err := UnmarshalLedgerTx([]byte(`{"version":2,"type":"transfer","tx":{"to":"x","amount":1}}`))
		require.ErrorIs(t, err, ErrUnsupportedTxVersion)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := UnmarshalLedgerTx([]byte(`not json`))
		require.ErrorIs(t, err, ErrUnsupportedTxType)
	})
}

func TestMarshalRoundTrip(t *testing.T) {
	btx := NewLedgerTx(LedgerTxTypeTransfer, &TransferTx{To: "club", Amount: 12})
	dat, err := MarshalLedgerTx(btx)
	require.NoError(t, err)
	out, err := UnmarshalLedgerTx(dat)
	require.NoError(t, err)
	assert.Equal(t, btx, out)
}

func TestValidateBasic(t *testing.T) {
	cases := []struct {
		name string
		tx   Validator
		ok   bool
	}{
		{"proposal", &ProposalTx{Title: "Kit"}, true},
		{"proposal without title", &ProposalTx{}, true},
		{"vote for", &VoteTx{Vote: types.VoteFor}, true},
		{"vote abstain", &VoteTx{Vote: "abstain"}, false},
		{"transfer", &TransferTx{To: "x"}, true},
		{"transfer without recipient", &TransferTx{Amount: 3}, true},
		{"mint", &MintNFTTx{Name: "Ball"}, true},
		{"mint without name", &MintNFTTx{}, false},
		{"buy", &BuyNFTTx{NFT: "nft-1"}, true},
		{"buy without id", &BuyNFTTx{}, false},
		{"execute", &ExecuteProposalTx{Proposal: 1}, true},
		{"settle", &SettleProposalTx{Proposal: 1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tx.ValidateBasic()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidTx)
		})
	}
}

func TestProposalDuration(t *testing.T) {
	assert.Equal(t, types.DefaultProposalDuration, (&ProposalTx{}).Duration())
	ms := int64(90_000)
	assert.Equal(t, 90*time.Second, (&ProposalTx{DurationMs: &ms}).Duration())
}
