package tx

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/misterexcel/FutDAO/types"
)

// LedgerTx is the envelope for every mutating ledger operation. Tx holds a
// pointer to the payload matching Type.
type LedgerTx struct {
	Version uint8        `json:"version"`
	Type    LedgerTxType `json:"type"`
	Tx      any          `json:"tx"`
}

type ProposalTx struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DurationMs  *int64 `json:"duration_ms,omitempty"`
}

// Duration returns the requested voting window, defaulting to
// types.DefaultProposalDuration.
func (t *ProposalTx) Duration() time.Duration {
	if t.DurationMs == nil {
		return types.DefaultProposalDuration
	}
	return time.Duration(*t.DurationMs) * time.Millisecond
}

// ValidateBasic accepts any title, description and category, empty ones
// included.
func (t *ProposalTx) ValidateBasic() error { return nil }

type VoteTx struct {
	Proposal uint64           `json:"proposal"`
	Vote     types.VoteChoice `json:"vote"`
}

func (t *VoteTx) ValidateBasic() error {
	if !t.Vote.Valid() {
		return fmt.Errorf("%w: vote must be %q or %q", ErrInvalidTx, types.VoteFor, types.VoteAgainst)
	}
	return nil
}

type ExecuteProposalTx struct {
	Proposal uint64 `json:"proposal"`
}

func (t *ExecuteProposalTx) ValidateBasic() error { return nil }

type SettleProposalTx struct {
	Proposal uint64 `json:"proposal"`
}

func (t *SettleProposalTx) ValidateBasic() error { return nil }

type TransferTx struct {
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// ValidateBasic accepts any recipient; only the sender's balance is
// checked, at delivery.
func (t *TransferTx) ValidateBasic() error { return nil }

type MintNFTTx struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Image       string               `json:"image"`
	Attributes  []types.NFTAttribute `json:"attributes"`
	Price       *uint64              `json:"price,omitempty"`
}

func (t *MintNFTTx) ValidateBasic() error {
	if t.Name == "" {
		return fmt.Errorf("%w: nft name is empty", ErrInvalidTx)
	}
	return nil
}

type BuyNFTTx struct {
	NFT   string `json:"nft"`
	Price uint64 `json:"price"`
}

func (t *BuyNFTTx) ValidateBasic() error {
	if t.NFT == "" {
		return fmt.Errorf("%w: nft id is empty", ErrInvalidTx)
	}
	return nil
}

// Validator is implemented by every payload type.
type Validator interface {
	ValidateBasic() error
}

type ledgerTxTmpl[Tx any] struct {
	Version uint8        `json:"version"`
	Type    LedgerTxType `json:"type"`
	Tx      Tx           `json:"tx"`
}

func parseLedgerTxType(dat []byte) LedgerTxType {
	var tx struct {
		Type LedgerTxType `json:"type"`
	}
	err := json.Unmarshal(dat, &tx)
	if err != nil {
		return LedgerTxTypeUnknown
	}
	return tx.Type
}

func unmarshalLedgerTx[Tx any](dat []byte) (btx *LedgerTx, err error) {
	var txt ledgerTxTmpl[Tx]
	err = json.Unmarshal(dat, &txt)
	if err != nil {
		return
	}
	if txt.Version > LedgerTxVersion1 {
		err = ErrUnsupportedTxVersion
		return
	}
	// an envelope without a version field decodes as version 0 and is read
	// as the current version
	if txt.Version == LedgerTxVersion0 {
		txt.Version = LedgerTxVersion1
	}
	btx = new(LedgerTx)
	btx.Version = txt.Version
	btx.Type = txt.Type
	btx.Tx = &txt.Tx
	return
}

func UnmarshalLedgerTx(dat []byte) (btx *LedgerTx, err error) {
	tp := parseLedgerTxType(dat)
	switch tp {
	case LedgerTxTypeCreateProposal:
		return unmarshalLedgerTx[ProposalTx](dat)
	case LedgerTxTypeVote:
		return unmarshalLedgerTx[VoteTx](dat)
	case LedgerTxTypeExecuteProposal:
		return unmarshalLedgerTx[ExecuteProposalTx](dat)
	case LedgerTxTypeSettleProposal:
		return unmarshalLedgerTx[SettleProposalTx](dat)
	case LedgerTxTypeTransfer:
		return unmarshalLedgerTx[TransferTx](dat)
	case LedgerTxTypeMintNFT:
		return unmarshalLedgerTx[MintNFTTx](dat)
	case LedgerTxTypeBuyNFT:
		return unmarshalLedgerTx[BuyNFTTx](dat)
	default:
		err = ErrUnsupportedTxType
	}
	return
}

func MarshalLedgerTx(btx *LedgerTx) (dat []byte, err error) {
	return json.Marshal(btx)
}

// NewLedgerTx wraps payload in a current-version envelope.
func NewLedgerTx(tp LedgerTxType, payload any) *LedgerTx {
	return &LedgerTx{
		Version: LedgerTxVersion1,
		Type:    tp,
		Tx:      payload,
	}
}
