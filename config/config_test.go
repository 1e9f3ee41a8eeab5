package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/srv/futdao")
	require.NoError(t, cfg.ValidateBasic())
	assert.Equal(t, "/srv/futdao/config/config.toml", cfg.ConfigFile())
	assert.Equal(t, "/srv/futdao/config/genesis.json", cfg.GenesisFile())
	assert.Equal(t, ":memory:", cfg.IndexerDBPath())
	assert.Equal(t, time.Second, cfg.Ledger.ConnectDelay)

	cfg.Indexer.DBPath = "data/history.db"
	assert.Equal(t, "/srv/futdao/data/history.db", cfg.IndexerDBPath())
	cfg.Ledger.GenesisFile = "/etc/genesis.json"
	assert.Equal(t, "/etc/genesis.json", cfg.GenesisFile())
}

func TestValidateBasic(t *testing.T) {
	cases := map[string]struct {
		mutate func(cfg *Config)
		err    error
	}{
		"listen addr":   {func(cfg *Config) { cfg.API.ListenAddr = "" }, ErrEmptyListenAddr},
		"connect delay": {func(cfg *Config) { cfg.Ledger.ConnectDelay = -time.Second }, ErrNegativeConnectDelay},
		"settle":        {func(cfg *Config) { cfg.Ledger.SettleInterval = -time.Second }, ErrNegativeSettle},
		"indexer db":    {func(cfg *Config) { cfg.Indexer.DBPath = "" }, ErrEmptyIndexerDB},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig("/tmp/x")
			tc.mutate(cfg)
			require.ErrorIs(t, cfg.ValidateBasic(), tc.err)
		})
	}
}

func TestWriteAndLoadConfig(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureRoot(home))

	cfg := DefaultConfig(home)
	cfg.LogLevel = "debug"
	cfg.API.ListenAddr = "0.0.0.0:9000"
	cfg.Ledger.ConnectDelay = 250 * time.Millisecond
	cfg.Ledger.DedupVotes = true
	cfg.Ledger.SettleInterval = 0
	cfg.Indexer.DBPath = "history.db"
	require.NoError(t, WriteConfigFile(cfg.ConfigFile(), cfg))

	dat, err := RenderConfig(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(dat), `connect_delay = "250ms"`)

	loaded, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, home, loaded.Home)
	assert.Equal(t, "debug", loaded.LogLevel)
	assert.Equal(t, "0.0.0.0:9000", loaded.API.ListenAddr)
	assert.Equal(t, 250*time.Millisecond, loaded.Ledger.ConnectDelay)
	assert.True(t, loaded.Ledger.DedupVotes)
	assert.Zero(t, loaded.Ledger.SettleInterval)
	assert.Equal(t, filepath.Join(home, "history.db"), loaded.IndexerDBPath())
}

func TestLoadConfigWithoutFile(t *testing.T) {
	home := t.TempDir()
	cfg, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, DefaultListenAddr, cfg.API.ListenAddr)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("FUTDAO_API_LISTEN_ADDR", "127.0.0.1:7000")
	t.Setenv("FUTDAO_LEDGER_CONNECT_DELAY", "5ms")
	cfg, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.API.ListenAddr)
	assert.Equal(t, 5*time.Millisecond, cfg.Ledger.ConnectDelay)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureRoot(home))
	require.NoError(t, os.WriteFile(filepath.Join(home, "config", "config.toml"), []byte("[api]\nlisten_addr = \"\"\n"), 0o644))
	_, err := LoadConfig(home)
	require.ErrorIs(t, err, ErrEmptyListenAddr)
}
