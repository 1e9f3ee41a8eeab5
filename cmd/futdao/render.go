package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/misterexcel/FutDAO/tx/handler"
	"github.com/misterexcel/FutDAO/types"
)

var (
	activeStyle   = color.New(color.FgYellow)
	passedStyle   = color.New(color.FgGreen)
	rejectedStyle = color.New(color.FgRed)
	executedStyle = color.New(color.FgCyan)
	labelStyle    = color.New(color.Bold)
	faintStyle    = color.New(color.Faint)
	okStyle       = color.New(color.FgGreen, color.Bold)
)

const timeLayout = "2006-01-02 15:04"

func newTable(header ...any) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row(header))
	return t
}

func statusCell(s types.ProposalStatus) string {
	switch s {
	case types.ProposalStatusActive:
		return activeStyle.Sprint(s)
	case types.ProposalStatusPassed:
		return passedStyle.Sprint(s)
	case types.ProposalStatusRejected:
		return rejectedStyle.Sprint(s)
	case types.ProposalStatusExecuted:
		return executedStyle.Sprint(s)
	}
	return string(s)
}

func shortHash(h string) string {
	if len(h) <= 18 {
		return h
	}
	return h[:10] + "…" + h[len(h)-6:]
}

func priceCell(n *types.NFT) string {
	if !n.IsForSale {
		return faintStyle.Sprint("not listed")
	}
	return fmt.Sprintf("%d", n.ListPrice())
}

func renderProposals(w io.Writer, ps []*types.Proposal) {
	t := newTable("ID", "Title", "Category", "For", "Against", "Status", "Deadline")
	for _, p := range ps {
		t.AppendRow(table.Row{p.ID, p.Title, p.Category, p.VotesFor, p.VotesAgainst, statusCell(p.Status), p.Deadline.Local().Format(timeLayout)})
	}
	fmt.Fprintln(w, t.Render())
}

func renderProposal(w io.Writer, p *types.Proposal) {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{labelStyle.Sprint("ID"), p.ID},
		{labelStyle.Sprint("Title"), p.Title},
		{labelStyle.Sprint("Description"), p.Description},
		{labelStyle.Sprint("Category"), p.Category},
		{labelStyle.Sprint("Proposer"), p.Proposer},
		{labelStyle.Sprint("Votes for"), p.VotesFor},
		{labelStyle.Sprint("Votes against"), p.VotesAgainst},
		{labelStyle.Sprint("Status"), statusCell(p.Status)},
		{labelStyle.Sprint("Deadline"), p.Deadline.Local().Format(time.RFC3339)},
	})
	fmt.Fprintln(w, t.Render())
}

func renderTransactions(w io.Writer, txs []*types.Transaction) {
	t := newTable("Hash", "Type", "From", "To", "Amount", "Status", "Time")
	for _, tx := range txs {
		t.AppendRow(table.Row{shortHash(tx.Hash), tx.Type, tx.From, tx.To, tx.Amount, tx.Status, tx.Timestamp.Local().Format(timeLayout)})
	}
	fmt.Fprintln(w, t.Render())
}

func renderNFTs(w io.Writer, nfts []*types.NFT) {
	t := newTable("ID", "Token", "Name", "Owner", "Price")
	for _, n := range nfts {
		t.AppendRow(table.Row{n.ID, n.TokenID, n.Metadata.Name, n.Owner, priceCell(n)})
	}
	fmt.Fprintln(w, t.Render())
}

func renderAccount(w io.Writer, acnt *types.Account) {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{labelStyle.Sprint("Address"), acnt.Address},
		{labelStyle.Sprint("Balance"), acnt.Balance},
		{labelStyle.Sprint("Voting power"), acnt.VotingPower},
	})
	fmt.Fprintln(w, t.Render())
}

func renderStatus(w io.Writer, st *types.LedgerStatus) {
	wallet := faintStyle.Sprint("disconnected")
	if st.Connected {
		wallet = okStyle.Sprint(st.Address)
	}
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{labelStyle.Sprint("Wallet"), wallet},
		{labelStyle.Sprint("Proposals"), st.Proposals},
		{labelStyle.Sprint("Transactions"), st.Transactions},
		{labelStyle.Sprint("NFTs"), st.NFTs},
		{labelStyle.Sprint("Version"), st.Version},
		{labelStyle.Sprint("App hash"), st.AppHash},
	})
	fmt.Fprintln(w, t.Render())
}

// renderResult prints the confirmed transaction followed by whatever entity
// it produced.
func renderResult(w io.Writer, res *handler.Result) {
	if res == nil || res.Tx == nil {
		return
	}
	fmt.Fprintf(w, "%s %s %s\n", okStyle.Sprint("✔"), res.Tx.Type, res.Tx.Hash)
	switch {
	case res.Proposal != nil:
		renderProposal(w, res.Proposal)
	case res.NFT != nil:
		renderNFTs(w, []*types.NFT{res.NFT})
	}
}

func renderPage[T any](w io.Writer, total uint64, rows []T) error {
	fmt.Fprintf(w, "%s %d\n", labelStyle.Sprint("total"), total)
	if len(rows) == 0 {
		return nil
	}
	return printJSON(w, rows)
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, strings.TrimSpace(string(out)))
	return err
}
