package tx

import (
	"errors"
)

type LedgerTxType string

const (
	LedgerTxTypeUnknown         LedgerTxType = ""
	LedgerTxTypeCreateProposal  LedgerTxType = "create_proposal"
	LedgerTxTypeVote            LedgerTxType = "vote"
	LedgerTxTypeExecuteProposal LedgerTxType = "execute_proposal"
	LedgerTxTypeSettleProposal  LedgerTxType = "settle_proposal"
	LedgerTxTypeTransfer        LedgerTxType = "transfer"
	LedgerTxTypeMintNFT         LedgerTxType = "mint_nft"
	LedgerTxTypeBuyNFT          LedgerTxType = "buy_nft"
)

const (
	LedgerTxVersion0 uint8 = 0
	LedgerTxVersion1 uint8 = 1
)

// MaxHashAttempts bounds how many fresh hashes are drawn before giving up on
// finding one that is not already indexed.
const MaxHashAttempts = 8

var (
	ErrInvalidTx            = errors.New("invalid tx")
	ErrUnsupportedTxType    = errors.New("unsupported tx type")
	ErrUnmatchedTxType      = errors.New("unmatched tx type")
	ErrUnsupportedTxVersion = errors.New("unsupported tx version")
	ErrHashExhausted        = errors.New("no unique transaction hash available")
	ErrDuplicateHash        = errors.New("duplicate transaction hash")
	ErrMalformedHash        = errors.New("malformed transaction hash")
)
