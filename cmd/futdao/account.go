package main

import (
	"fmt"

	"github.com/misterexcel/FutDAO/client"
	"github.com/spf13/cobra"
)

type accountArguments struct {
	Url string
}

var accountArgs accountArguments

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show the connected account",
	Args:  cobra.NoArgs,
	RunE:  accountRun,
}

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect the member wallet",
	Args:  cobra.NoArgs,
	RunE:  connectRun,
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect the member wallet",
	Args:  cobra.NoArgs,
	RunE:  disconnectRun,
}

func init() {
	urlFlag(accountCmd, &accountArgs.Url)
	urlFlag(connectCmd, &accountArgs.Url)
	urlFlag(disconnectCmd, &accountArgs.Url)
}

func accountRun(cmd *cobra.Command, args []string) error {
	cli := client.New(accountArgs.Url)
	acnt, err := cli.Account(cmd.Context())
	if err != nil {
		return err
	}
	if acnt == nil {
		fmt.Fprintln(cmd.OutOrStdout(), faintStyle.Sprint("no wallet connected"))
		return nil
	}
	renderAccount(cmd.OutOrStdout(), acnt)
	return nil
}

func connectRun(cmd *cobra.Command, args []string) error {
	cli := client.New(accountArgs.Url)
	acnt, err := cli.Connect(cmd.Context())
	if err != nil {
		return err
	}
	renderAccount(cmd.OutOrStdout(), acnt)
	return nil
}

func disconnectRun(cmd *cobra.Command, args []string) error {
	cli := client.New(accountArgs.Url)
	if err := cli.Disconnect(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "wallet disconnected")
	return nil
}
