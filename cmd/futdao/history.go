package main

import (
	"net/url"
	"strconv"

	"github.com/misterexcel/FutDAO/client"
	"github.com/misterexcel/FutDAO/indexer"
	"github.com/spf13/cobra"
)

type historyArguments struct {
	Url      string
	Page     int
	PageSize int
	Status   string
	Proposal uint64
	Voter    string
	Address  string
	Owner    string
	NFT      string
}

var historyArgs historyArguments

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Page through indexed ledger events",
}

func init() {
	urlFlag(historyCmd, &historyArgs.Url)
	historyCmd.PersistentFlags().IntVar(&historyArgs.Page, "page", 0, "page number, from 0")
	historyCmd.PersistentFlags().IntVar(&historyArgs.PageSize, "page-size", 20, "rows per page")

	proposals := historySubCmd[indexer.Proposal]("proposals", "Settled and open proposals", func() url.Values {
		return url.Values{"status": {historyArgs.Status}}
	})
	proposals.Flags().StringVarP(&historyArgs.Status, "status", "s", "", "proposal status")

	votes := historySubCmd[indexer.ProposalVote]("votes", "Cast votes", func() url.Values {
		q := url.Values{"voter": {historyArgs.Voter}}
		if historyArgs.Proposal > 0 {
			q.Set("proposal", strconv.FormatUint(historyArgs.Proposal, 10))
		}
		return q
	})
	votes.Flags().Uint64VarP(&historyArgs.Proposal, "proposal", "p", 0, "proposal id")
	votes.Flags().StringVar(&historyArgs.Voter, "voter", "", "voter address")

	transfers := historySubCmd[indexer.Transfer]("transfers", "Token transfers", func() url.Values {
		return url.Values{"address": {historyArgs.Address}}
	})
	transfers.Flags().StringVarP(&historyArgs.Address, "address", "a", "", "sender or recipient address")

	mints := historySubCmd[indexer.Mint]("mints", "Minted collectibles", func() url.Values {
		return url.Values{"owner": {historyArgs.Owner}}
	})
	mints.Flags().StringVarP(&historyArgs.Owner, "owner", "o", "", "minter address")

	sales := historySubCmd[indexer.Sale]("sales", "Collectible sales", func() url.Values {
		return url.Values{"nft": {historyArgs.NFT}}
	})
	sales.Flags().StringVar(&historyArgs.NFT, "nft", "", "collectible id")

	historyCmd.AddCommand(proposals, votes, transfers, mints, sales)
}

func historySubCmd[T any](kind string, short string, filter func() url.Values) *cobra.Command {
	return &cobra.Command{
		Use:   kind,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := client.New(historyArgs.Url)
			page, err := client.History[T](cmd.Context(), cli, kind, filter(), historyArgs.Page, historyArgs.PageSize)
			if err != nil {
				return err
			}
			return renderPage(cmd.OutOrStdout(), page.Total, page.Items)
		},
	}
}
