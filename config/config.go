package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cmtcfg "github.com/cometbft/cometbft/config"
	cmtos "github.com/cometbft/cometbft/libs/os"
	"github.com/spf13/viper"
)

const (
	DefaultHomeDir        = ".futdao"
	DefaultConfigDir      = "config"
	DefaultConfigFileName = "config.toml"
	DefaultGenesisName    = "genesis.json"
	DefaultAccountKeyName = "account_priv_key"
	DefaultListenAddr     = "127.0.0.1:8080"
	DefaultIndexerDB      = ":memory:"
	EnvPrefix             = "FUTDAO"
)

var (
	ErrEmptyListenAddr      = errors.New("api.listen_addr must not be empty")
	ErrNegativeConnectDelay = errors.New("ledger.connect_delay can't be negative")
	ErrNegativeSettle       = errors.New("ledger.settle_interval can't be negative")
	ErrEmptyIndexerDB       = errors.New("indexer.db_path must not be empty when the indexer is enabled")
)

type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

type LedgerConfig struct {
	GenesisFile    string        `mapstructure:"genesis_file"`
	ConnectDelay   time.Duration `mapstructure:"connect_delay"`
	DedupVotes     bool          `mapstructure:"dedup_votes"`
	SettleInterval time.Duration `mapstructure:"settle_interval"`
}

type IndexerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

type Config struct {
	Home     string `mapstructure:"-"`
	LogLevel string `mapstructure:"log_level"`

	API     *APIConfig     `mapstructure:"api"`
	Ledger  *LedgerConfig  `mapstructure:"ledger"`
	Indexer *IndexerConfig `mapstructure:"indexer"`
}

func DefaultConfig(home string) *Config {
	if len(home) == 0 {
		home = os.ExpandEnv("$HOME/" + DefaultHomeDir)
	}
	return &Config{
		Home:     home,
		LogLevel: cmtcfg.DefaultLogLevel,
		API: &APIConfig{
			ListenAddr: DefaultListenAddr,
		},
		Ledger: &LedgerConfig{
			GenesisFile:    filepath.Join(DefaultConfigDir, DefaultGenesisName),
			ConnectDelay:   time.Second,
			SettleInterval: time.Minute,
		},
		Indexer: &IndexerConfig{
			Enabled: true,
			DBPath:  DefaultIndexerDB,
		},
	}
}

// TestConfig returns a config suited to in-process tests: no connect delay,
// no background settler and an in-memory indexer.
func TestConfig() *Config {
	cfg := DefaultConfig(os.TempDir())
	cfg.API.ListenAddr = "127.0.0.1:0"
	cfg.Ledger.GenesisFile = ""
	cfg.Ledger.ConnectDelay = 0
	cfg.Ledger.SettleInterval = 0
	return cfg
}

func (cfg *Config) ValidateBasic() error {
	if cfg.API == nil || cfg.API.ListenAddr == "" {
		return ErrEmptyListenAddr
	}
	if cfg.Ledger != nil {
		if cfg.Ledger.ConnectDelay < 0 {
			return ErrNegativeConnectDelay
		}
		if cfg.Ledger.SettleInterval < 0 {
			return ErrNegativeSettle
		}
	}
	if cfg.Indexer != nil && cfg.Indexer.Enabled && cfg.Indexer.DBPath == "" {
		return ErrEmptyIndexerDB
	}
	return nil
}

func (cfg *Config) rootify(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.Home, p)
}

func (cfg *Config) ConfigFile() string {
	return filepath.Join(cfg.Home, DefaultConfigDir, DefaultConfigFileName)
}

// GenesisFile resolves the genesis path against the home directory. An
// empty result means the built-in genesis is used.
func (cfg *Config) GenesisFile() string {
	if cfg.Ledger == nil {
		return ""
	}
	return cfg.rootify(cfg.Ledger.GenesisFile)
}

func (cfg *Config) AccountKeyFile() string {
	return filepath.Join(cfg.Home, DefaultConfigDir, DefaultAccountKeyName)
}

// IndexerDBPath resolves the indexer database path. ":memory:" is passed
// through unchanged.
func (cfg *Config) IndexerDBPath() string {
	if cfg.Indexer == nil || cfg.Indexer.DBPath == DefaultIndexerDB {
		return DefaultIndexerDB
	}
	return cfg.rootify(cfg.Indexer.DBPath)
}

// EnsureRoot creates the home and config directories.
func EnsureRoot(home string) error {
	if err := cmtos.EnsureDir(home, DefaultDirPerm); err != nil {
		return err
	}
	return cmtos.EnsureDir(filepath.Join(home, DefaultConfigDir), DefaultDirPerm)
}

// LoadConfig reads <home>/config/config.toml on top of the defaults and
// applies FUTDAO_* environment overrides. A missing file is not an error.
func LoadConfig(home string) (cfg *Config, err error) {
	cfg = DefaultConfig(home)
	v := viper.New()
	v.SetConfigFile(cfg.ConfigFile())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindDefaults(v, cfg)

	if cmtos.FileExists(cfg.ConfigFile()) {
		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	if err = v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err = cfg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("invalid configuration data: %w", err)
	}
	return cfg, nil
}

// bindDefaults registers every key so AutomaticEnv can override keys that
// are absent from the file.
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("api.listen_addr", cfg.API.ListenAddr)
	v.SetDefault("ledger.genesis_file", cfg.Ledger.GenesisFile)
	v.SetDefault("ledger.connect_delay", cfg.Ledger.ConnectDelay)
	v.SetDefault("ledger.dedup_votes", cfg.Ledger.DedupVotes)
	v.SetDefault("ledger.settle_interval", cfg.Ledger.SettleInterval)
	v.SetDefault("indexer.enabled", cfg.Indexer.Enabled)
	v.SetDefault("indexer.db_path", cfg.Indexer.DBPath)
}
