package types

import "time"

type Transaction struct {
	Hash      string    `json:"hash"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    uint64    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	Status    TxStatus  `json:"status"`
	Type      TxType    `json:"type"`
}

func (t *Transaction) Clone() *Transaction {
	n := *t
	return &n
}

// Involves reports whether addr is the sender or the recipient of t.
func (t *Transaction) Involves(addr string) bool {
	return t.From == addr || t.To == addr
}

type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusFailed    TxStatus = "failed"
)

func (s TxStatus) Valid() bool {
	return s == TxStatusPending || s == TxStatusConfirmed || s == TxStatusFailed
}

type TxType string

const (
	TxTypeVote        TxType = "vote"
	TxTypeTransfer    TxType = "transfer"
	TxTypeProposal    TxType = "proposal"
	TxTypeNFTMint     TxType = "nft_mint"
	TxTypeNFTPurchase TxType = "nft_purchase"
)

func (t TxType) Valid() bool {
	switch t {
	case TxTypeVote, TxTypeTransfer, TxTypeProposal, TxTypeNFTMint, TxTypeNFTPurchase:
		return true
	}
	return false
}
