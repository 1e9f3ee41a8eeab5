package crypto

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrGenAccountKey(t *testing.T) {
	file := filepath.Join(t.TempDir(), "account_priv_key")

	k1, err := LoadOrGenAccountKey(file)
	require.NoError(t, err)
	assert.True(t, common.IsHexAddress(k1.Address()))
	assert.Len(t, k1.PublicKey(), 65)

	k2, err := LoadOrGenAccountKey(file)
	require.NoError(t, err)
	assert.Equal(t, k1.Address(), k2.Address())

	k3, err := GenerateAccountKey()
	require.NoError(t, err)
	assert.NotEqual(t, k1.Address(), k3.Address())
}

func TestLoadAccountKeyErrors(t *testing.T) {
	_, err := LoadAccountKey(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
