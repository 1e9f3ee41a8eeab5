package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	cmtos "github.com/cometbft/cometbft/libs/os"
	"github.com/misterexcel/FutDAO/config"
	"github.com/misterexcel/FutDAO/crypto"
	"github.com/misterexcel/FutDAO/types"
	"github.com/spf13/cobra"
)

type printInfo struct {
	Home        string `json:"home"`
	ConfigFile  string `json:"config_file"`
	GenesisFile string `json:"genesis_file"`
	Address     string `json:"address"`
	AccountKey  string `json:"account_key,omitempty"`
}

func displayInfo(w io.Writer, info printInfo) error {
	out, err := json.MarshalIndent(info, "", " ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}

type initArguments struct {
	Home       string
	Overwrite  bool
	NewAccount bool
}

var initArgs initArguments

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration and genesis files",
	Long:  `Write config.toml and genesis.json into <home>/config.`,
	Args:  cobra.NoArgs,
	RunE:  initRun,
}

func init() {
	homeFlag(initCmd, &initArgs.Home)
	initCmd.Flags().BoolVarP(&initArgs.Overwrite, "overwrite", "o", false, "overwrite existing config and genesis files")
	initCmd.Flags().BoolVar(&initArgs.NewAccount, "new-account", false, "generate a member key and use its address in genesis")
}

func initRun(cmd *cobra.Command, args []string) error {
	home := resolveHome(initArgs.Home)
	if err := config.EnsureRoot(home); err != nil {
		return err
	}
	cfg := config.DefaultConfig(home)
	genFile := cfg.GenesisFile()
	if !initArgs.Overwrite && (cmtos.FileExists(genFile) || cmtos.FileExists(cfg.ConfigFile())) {
		return fmt.Errorf("%s is already initialized, use --overwrite to replace it", home)
	}

	genesis := types.DefaultGenesis()
	genesis.GenesisTime = time.Now().UTC()
	info := printInfo{
		Home:        home,
		ConfigFile:  cfg.ConfigFile(),
		GenesisFile: genFile,
		Address:     genesis.Account.Address,
	}
	if initArgs.NewAccount {
		key, err := crypto.LoadOrGenAccountKey(cfg.AccountKeyFile())
		if err != nil {
			return fmt.Errorf("account key: %w", err)
		}
		rebaseGenesis(genesis, key.Address())
		info.Address = key.Address()
		info.AccountKey = cfg.AccountKeyFile()
	}

	if err := types.ExportGenesisFile(genesis, genFile); err != nil {
		return fmt.Errorf("failed to export genesis file: %w", err)
	}
	if err := config.WriteConfigFile(cfg.ConfigFile(), cfg); err != nil {
		return err
	}
	return displayInfo(cmd.OutOrStdout(), info)
}

// rebaseGenesis moves everything the default member holds in genesis to
// addr.
func rebaseGenesis(genesis *types.GenesisDoc, addr string) {
	old := genesis.Account.Address
	genesis.Account.Address = addr
	for i := range genesis.Proposals {
		if genesis.Proposals[i].Proposer == old {
			genesis.Proposals[i].Proposer = addr
		}
	}
	for i := range genesis.Transactions {
		t := &genesis.Transactions[i]
		if t.From == old {
			t.From = addr
		}
		if t.To == old {
			t.To = addr
		}
	}
	for i := range genesis.NFTs {
		if genesis.NFTs[i].Owner == old {
			genesis.NFTs[i].Owner = addr
		}
	}
}
