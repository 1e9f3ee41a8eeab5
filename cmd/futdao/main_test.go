package main

import (
	"bytes"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/misterexcel/FutDAO/config"
	"github.com/misterexcel/FutDAO/tx/handler"
	"github.com/misterexcel/FutDAO/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestVersionWithCommit(t *testing.T) {
	assert.Equal(t, Version, VersionWithCommit(""))
	assert.Equal(t, Version+"-0123abcd", VersionWithCommit("0123abcdef99"))
}

func TestVersionRun(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionArgs.Long = false })

	versionRun(versionCmd, nil)
	assert.Contains(t, out.String(), Version)

	out.Reset()
	versionArgs.Long = true
	versionRun(versionCmd, nil)
	assert.Contains(t, out.String(), runtime.Version())
	assert.Contains(t, out.String(), "Module")
}

func TestInitWritesHome(t *testing.T) {
	home := t.TempDir()
	initArgs = initArguments{Home: home, NewAccount: true}
	var out bytes.Buffer
	initCmd.SetOut(&out)
	require.NoError(t, initRun(initCmd, nil))
	assert.Contains(t, out.String(), "genesis_file")

	cfg, err := config.LoadConfig(home)
	require.NoError(t, err)
	gen, err := types.LoadGenesisFile(cfg.GenesisFile())
	require.NoError(t, err)
	assert.NotEqual(t, types.DefaultAccountAddress, gen.Account.Address)
	assert.Equal(t, gen.Account.Address, gen.Proposals[0].Proposer)
	assert.Equal(t, gen.Account.Address, gen.NFTs[0].Owner)
	assert.FileExists(t, filepath.Join(home, config.DefaultConfigDir, config.DefaultAccountKeyName))

	require.Error(t, initRun(initCmd, nil))
	initArgs.Overwrite = true
	require.NoError(t, initRun(initCmd, nil))
}

func TestParseAttributes(t *testing.T) {
	attrs, err := parseAttributes([]string{"Rarity=Legendary", "Goals=42"})
	require.NoError(t, err)
	require.Len(t, attrs, 2)
	assert.Equal(t, "Legendary", attrs[0].Value)
	assert.Equal(t, float64(42), attrs[1].Value)

	_, err = parseAttributes([]string{"broken"})
	require.Error(t, err)
}

func TestRender(t *testing.T) {
	deadline := time.Date(2024, 5, 8, 12, 0, 0, 0, time.UTC)
	price := uint64(2500)
	var out bytes.Buffer

	renderProposals(&out, []*types.Proposal{{ID: 7, Title: "Fichaje", VotesFor: 10, Status: types.ProposalStatusActive, Deadline: deadline}})
	assert.Contains(t, out.String(), "Fichaje")
	assert.Contains(t, out.String(), "active")

	out.Reset()
	renderNFTs(&out, []*types.NFT{
		{ID: "nft-1", TokenID: 1, Metadata: types.NFTMetadata{Name: "Camiseta"}, Price: &price, IsForSale: true},
		{ID: "nft-2", TokenID: 2, Metadata: types.NFTMetadata{Name: "Bufanda"}},
	})
	assert.Contains(t, out.String(), "2500")
	assert.Contains(t, out.String(), "not listed")

	out.Reset()
	hash := "0x1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef"
	renderResult(&out, &handler.Result{Tx: &types.Transaction{Hash: hash, Type: types.TxTypeTransfer}})
	assert.Contains(t, out.String(), hash)

	assert.Equal(t, "0x12345678…abcdef", shortHash(hash))
	assert.Equal(t, "0x1234", shortHash("0x1234"))
}

func TestNewProposalTxDuration(t *testing.T) {
	flag := proposalCreateCmd.Flags().Lookup("duration")
	require.NotNil(t, flag)
	t.Cleanup(func() {
		flag.Changed = false
		proposalArgs.Duration = 0
	})

	proposalArgs.Title = "Cantera"
	ptx := newProposalTx(proposalCreateCmd)
	assert.Nil(t, ptx.DurationMs)
	assert.Equal(t, types.DefaultProposalDuration, ptx.Duration())

	require.NoError(t, proposalCreateCmd.Flags().Set("duration", "-1ms"))
	ptx = newProposalTx(proposalCreateCmd)
	require.NotNil(t, ptx.DurationMs)
	assert.Equal(t, int64(-1), *ptx.DurationMs)
	assert.Equal(t, "Cantera", ptx.Title)

	require.NoError(t, proposalCreateCmd.Flags().Set("duration", "0s"))
	ptx = newProposalTx(proposalCreateCmd)
	require.NotNil(t, ptx.DurationMs)
	assert.Zero(t, *ptx.DurationMs)
}
