package types

import "time"

// DefaultProposalDuration is the voting window applied when a proposal is
// created without an explicit duration.
const DefaultProposalDuration = 7 * 24 * time.Hour

type Proposal struct {
	ID           uint64         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	Proposer     string         `json:"proposer"`
	VotesFor     uint64         `json:"votesFor"`
	VotesAgainst uint64         `json:"votesAgainst"`
	Status       ProposalStatus `json:"status"`
	Deadline     time.Time      `json:"deadline"`
}

func (p *Proposal) Clone() *Proposal {
	n := *p
	return &n
}

// Expired reports whether voting on p is closed at now.
func (p *Proposal) Expired(now time.Time) bool {
	return now.After(p.Deadline)
}

type ProposalStatus string

const (
	ProposalStatusActive   ProposalStatus = "active"
	ProposalStatusPassed   ProposalStatus = "passed"
	ProposalStatusRejected ProposalStatus = "rejected"
	ProposalStatusExecuted ProposalStatus = "executed"
)

func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusActive, ProposalStatusPassed, ProposalStatusRejected, ProposalStatusExecuted:
		return true
	}
	return false
}

type VoteChoice string

const (
	VoteFor     VoteChoice = "for"
	VoteAgainst VoteChoice = "against"
)

func (v VoteChoice) Valid() bool {
	return v == VoteFor || v == VoteAgainst
}
