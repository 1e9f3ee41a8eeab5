package state

import "errors"

var (
	ErrConnection            = errors.New("could not connect wallet")
	ErrNotConnected          = errors.New("wallet not connected")
	ErrAccountNotFound       = errors.New("account not found")
	ErrProposalNotFound      = errors.New("proposal not found")
	ErrNftNotFound           = errors.New("nft not found")
	ErrProposalNotActive     = errors.New("proposal not active")
	ErrVotingExpired         = errors.New("voting period expired")
	ErrProposalNotExecutable = errors.New("proposal must be passed to be executed")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrNftNotForSale         = errors.New("nft not for sale")
	ErrVotingNotEnded        = errors.New("voting period not ended")
	ErrAlreadyVoted          = errors.New("account already voted on proposal")
	ErrInvalidVoteChoice     = errors.New("invalid vote choice")
)
