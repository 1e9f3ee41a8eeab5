package main

import (
	"github.com/misterexcel/FutDAO/client"
	"github.com/spf13/cobra"
)

type statusArguments struct {
	Url string
}

var statusArgs statusArguments

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the ledger status",
	Args:  cobra.NoArgs,
	RunE:  statusRun,
}

var queryCmd = &cobra.Command{
	Use:   "query <path> [data]",
	Short: "Run a raw ledger query such as /proposals/ 1",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  queryRun,
}

func init() {
	urlFlag(statusCmd, &statusArgs.Url)
	urlFlag(queryCmd, &statusArgs.Url)
}

func statusRun(cmd *cobra.Command, args []string) error {
	st, err := client.New(statusArgs.Url).Status(cmd.Context())
	if err != nil {
		return err
	}
	renderStatus(cmd.OutOrStdout(), st)
	return nil
}

func queryRun(cmd *cobra.Command, args []string) error {
	var data string
	if len(args) > 1 {
		data = args[1]
	}
	res, err := client.New(statusArgs.Url).Query(cmd.Context(), args[0], data)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), res)
}
