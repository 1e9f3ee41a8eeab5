package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/misterexcel/FutDAO/client"
	"github.com/misterexcel/FutDAO/tx"
	"github.com/misterexcel/FutDAO/types"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type proposalArguments struct {
	Url         string
	Status      string
	Title       string
	Description string
	Category    string
	Duration    time.Duration
}

var proposalArgs proposalArguments

var proposalCmd = &cobra.Command{
	Use:   "proposal",
	Short: "List, create and vote on proposals",
}

var proposalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List proposals",
	Args:  cobra.NoArgs,
	RunE:  proposalListRun,
}

var proposalShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one proposal",
	Args:  cobra.ExactArgs(1),
	RunE:  proposalShowRun,
}

var proposalCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a proposal as the connected member",
	Args:  cobra.NoArgs,
	RunE:  proposalCreateRun,
}

var proposalVoteCmd = &cobra.Command{
	Use:   "vote <id> <for|against>",
	Short: "Vote with the full voting power of the connected member",
	Args:  cobra.ExactArgs(2),
	RunE:  proposalVoteRun,
}

var proposalExecuteCmd = &cobra.Command{
	Use:   "execute <id>",
	Short: "Execute a passed proposal",
	Args:  cobra.ExactArgs(1),
	RunE:  proposalExecuteRun,
}

var proposalSettleCmd = &cobra.Command{
	Use:   "settle <id>",
	Short: "Close voting on a proposal whose deadline has passed",
	Args:  cobra.ExactArgs(1),
	RunE:  proposalSettleRun,
}

func init() {
	urlFlag(proposalCmd, &proposalArgs.Url)
	proposalListCmd.Flags().StringVarP(&proposalArgs.Status, "status", "s", "", "only show proposals with this status")
	proposalCreateCmd.Flags().StringVarP(&proposalArgs.Title, "title", "t", "", "proposal title")
	proposalCreateCmd.Flags().StringVar(&proposalArgs.Description, "description", "", "proposal description")
	proposalCreateCmd.Flags().StringVarP(&proposalArgs.Category, "category", "c", "", "proposal category")
	proposalCreateCmd.Flags().DurationVar(&proposalArgs.Duration, "duration", 0, "voting window, 7 days when unset")
	_ = proposalCreateCmd.MarkFlagRequired("title")

	proposalCmd.AddCommand(proposalListCmd)
	proposalCmd.AddCommand(proposalShowCmd)
	proposalCmd.AddCommand(proposalCreateCmd)
	proposalCmd.AddCommand(proposalVoteCmd)
	proposalCmd.AddCommand(proposalExecuteCmd)
	proposalCmd.AddCommand(proposalSettleCmd)
}

func parseProposalID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid proposal id %q", s)
	}
	return id, nil
}

func proposalListRun(cmd *cobra.Command, args []string) error {
	ps, err := client.New(proposalArgs.Url).Proposals(cmd.Context())
	if err != nil {
		return err
	}
	if proposalArgs.Status != "" {
		ps = lo.Filter(ps, func(p *types.Proposal, _ int) bool {
			return string(p.Status) == proposalArgs.Status
		})
	}
	renderProposals(cmd.OutOrStdout(), ps)
	return nil
}

func proposalShowRun(cmd *cobra.Command, args []string) error {
	id, err := parseProposalID(args[0])
	if err != nil {
		return err
	}
	p, err := client.New(proposalArgs.Url).Proposal(cmd.Context(), id)
	if err != nil {
		return err
	}
	renderProposal(cmd.OutOrStdout(), p)
	return nil
}

// newProposalTx builds the create payload from the flags. An explicit
// --duration is sent as is, zero and negative windows included.
func newProposalTx(cmd *cobra.Command) *tx.ProposalTx {
	ptx := &tx.ProposalTx{
		Title:       proposalArgs.Title,
		Description: proposalArgs.Description,
		Category:    proposalArgs.Category,
	}
	if cmd.Flags().Changed("duration") {
		ptx.DurationMs = lo.ToPtr(proposalArgs.Duration.Milliseconds())
	}
	return ptx
}

func proposalCreateRun(cmd *cobra.Command, args []string) error {
	res, err := client.New(proposalArgs.Url).CreateProposal(cmd.Context(), newProposalTx(cmd))
	if err != nil {
		return err
	}
	renderResult(cmd.OutOrStdout(), res)
	return nil
}

func proposalVoteRun(cmd *cobra.Command, args []string) error {
	id, err := parseProposalID(args[0])
	if err != nil {
		return err
	}
	choice := types.VoteChoice(args[1])
	if !choice.Valid() {
		return fmt.Errorf("vote must be %q or %q", types.VoteFor, types.VoteAgainst)
	}
	res, err := client.New(proposalArgs.Url).Vote(cmd.Context(), id, choice)
	if err != nil {
		return err
	}
	renderResult(cmd.OutOrStdout(), res)
	return nil
}

func proposalExecuteRun(cmd *cobra.Command, args []string) error {
	id, err := parseProposalID(args[0])
	if err != nil {
		return err
	}
	res, err := client.New(proposalArgs.Url).Execute(cmd.Context(), id)
	if err != nil {
		return err
	}
	renderResult(cmd.OutOrStdout(), res)
	return nil
}

func proposalSettleRun(cmd *cobra.Command, args []string) error {
	id, err := parseProposalID(args[0])
	if err != nil {
		return err
	}
	res, err := client.New(proposalArgs.Url).Settle(cmd.Context(), id)
	if err != nil {
		return err
	}
	renderResult(cmd.OutOrStdout(), res)
	return nil
}
