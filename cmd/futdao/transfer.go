package main

import (
	"fmt"
	"strconv"

	"github.com/misterexcel/FutDAO/client"
	"github.com/spf13/cobra"
)

type transferArguments struct {
	Url     string
	Address string
}

var transferArgs transferArguments

var transferCmd = &cobra.Command{
	Use:   "transfer <to> <amount>",
	Short: "Send tokens from the connected member",
	Args:  cobra.ExactArgs(2),
	RunE:  transferRun,
}

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Inspect the transaction log",
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, optionally those touching one address",
	Args:  cobra.NoArgs,
	RunE:  txListRun,
}

func init() {
	urlFlag(transferCmd, &transferArgs.Url)
	urlFlag(txCmd, &transferArgs.Url)
	txListCmd.Flags().StringVarP(&transferArgs.Address, "address", "a", "", "sender or recipient address")
	txCmd.AddCommand(txListCmd)
}

func transferRun(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}
	res, err := client.New(transferArgs.Url).Transfer(cmd.Context(), args[0], amount)
	if err != nil {
		return err
	}
	renderResult(cmd.OutOrStdout(), res)
	return nil
}

func txListRun(cmd *cobra.Command, args []string) error {
	txs, err := client.New(transferArgs.Url).Transactions(cmd.Context(), transferArgs.Address)
	if err != nil {
		return err
	}
	renderTransactions(cmd.OutOrStdout(), txs)
	return nil
}
