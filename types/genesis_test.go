package types

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGenesisIsValid(t *testing.T) {
	gen := DefaultGenesis()
	require.NoError(t, gen.ValidateAndComplete())
	assert.Len(t, gen.Proposals, 2)
	assert.Len(t, gen.Transactions, 2)
	require.Len(t, gen.NFTs, 1)
	assert.Equal(t, "nft-1", gen.NFTs[0].ID)
}

func TestValidateAndComplete(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		gen := &GenesisDoc{
			Account:   &GenesisAccount{Address: "member", Balance: 40},
			Proposals: []GenesisProposal{{Title: "p"}},
			Transactions: []GenesisTransaction{{
				Hash: "0x1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef",
				Type: TxTypeTransfer,
			}},
			NFTs: []GenesisNFT{{Owner: "member"}, {Owner: "member"}},
		}
		require.NoError(t, gen.ValidateAndComplete())
		require.NotNil(t, gen.Account.VotingPower)
		assert.Equal(t, uint64(40), gen.Account.Account().VotingPower)
		assert.Equal(t, ProposalStatusActive, gen.Proposals[0].Status)
		assert.Equal(t, TxStatusConfirmed, gen.Transactions[0].Status)
		assert.Equal(t, "nft-1", gen.NFTs[0].ID)
		assert.Equal(t, "nft-2", gen.NFTs[1].ID)
	})

	t.Run("keeps zero voting power", func(t *testing.T) {
		zero := uint64(0)
		gen := &GenesisDoc{Account: &GenesisAccount{Address: "member", Balance: 40, VotingPower: &zero}}
		require.NoError(t, gen.ValidateAndComplete())
		acnt := gen.Account.Account()
		assert.Equal(t, uint64(40), acnt.Balance)
		assert.Zero(t, acnt.VotingPower)
	})

	cases := map[string]func(gen *GenesisDoc){
		"empty address":     func(gen *GenesisDoc) { gen.Account.Address = "" },
		"bad status":        func(gen *GenesisDoc) { gen.Proposals[0].Status = "pending" },
		"uppercase hash":    func(gen *GenesisDoc) { gen.Transactions[0].Hash = "0xABCDEF1234567890ABCDEF1234567890ABCDEF1234567890ABCDEF1234567890" },
		"duplicate hash":    func(gen *GenesisDoc) { gen.Transactions[1].Hash = gen.Transactions[0].Hash },
		"bad tx type":       func(gen *GenesisDoc) { gen.Transactions[0].Type = "stake" },
		"nft without owner": func(gen *GenesisDoc) { gen.NFTs[0].Owner = "" },
		"duplicate nft id": func(gen *GenesisDoc) {
			gen.NFTs = append(gen.NFTs, gen.NFTs[0])
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			gen := DefaultGenesis()
			mutate(gen)
			require.Error(t, gen.ValidateAndComplete())
		})
	}
}

func TestGenesisFileRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, ExportGenesisFile(DefaultGenesis(), file))

	gen, err := LoadGenesisFile(file)
	require.NoError(t, err)
	assert.Equal(t, DefaultAccountAddress, gen.Account.Address)
	require.Len(t, gen.NFTs, 1)
	require.NotNil(t, gen.NFTs[0].Price)
	assert.Equal(t, uint64(2500), *gen.NFTs[0].Price)
	assert.Equal(t, "Rarity", gen.NFTs[0].Metadata.Attributes[0].TraitType)

	_, err = LoadGenesisFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestIsTxHash(t *testing.T) {
	assert.True(t, IsTxHash("0xabcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890"))
	assert.False(t, IsTxHash("abcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890ab"))
	assert.False(t, IsTxHash("0xabc"))
	assert.False(t, IsTxHash("0xzzcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890"))
}
