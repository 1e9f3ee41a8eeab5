package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/misterexcel/FutDAO/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "futdao",
	Short:         "FutDAO is a fan-club governance ledger",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func urlFlag(cmd *cobra.Command, url *string) {
	cmd.PersistentFlags().StringVarP(url, "url", "u", "http://"+config.DefaultListenAddr, "futdao node url")
}

func homeFlag(cmd *cobra.Command, home *string) {
	cmd.Flags().StringVarP(home, "homedir", "d", "", "home directory")
}

func resolveHome(home string) string {
	if home == "" {
		return os.ExpandEnv("$HOME/" + config.DefaultHomeDir)
	}
	return home
}

// loadDotEnv loads .env from the working directory so FUTDAO_* overrides
// can live next to the binary.
func loadDotEnv() {
	envFile := filepath.Join(".", ".env")
	if _, err := os.Stat(envFile); err != nil {
		return
	}
	if err := godotenv.Load(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", envFile, err)
	}
}
