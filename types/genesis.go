package types

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// GenesisDoc defines the initial ledger contents. Deadlines and transaction
// timestamps are offsets from GenesisTime; a zero GenesisTime means the
// moment the ledger is constructed.
type GenesisDoc struct {
	GenesisTime  time.Time            `json:"genesis_time"`
	Account      *GenesisAccount      `json:"account,omitempty"`
	Proposals    []GenesisProposal    `json:"proposals"`
	Transactions []GenesisTransaction `json:"transactions"`
	NFTs         []GenesisNFT         `json:"nfts"`
}

// GenesisAccount seeds the member account. A missing voting_power defaults
// to the balance; an explicit zero is kept.
type GenesisAccount struct {
	Address     string  `json:"address"`
	Balance     uint64  `json:"balance"`
	VotingPower *uint64 `json:"voting_power,omitempty"`
}

// Account returns the ledger account described by ga. VotingPower must have
// been filled by ValidateAndComplete.
func (ga *GenesisAccount) Account() *Account {
	acnt := &Account{Address: ga.Address, Balance: ga.Balance}
	if ga.VotingPower != nil {
		acnt.VotingPower = *ga.VotingPower
	}
	return acnt
}

type GenesisProposal struct {
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Category         string         `json:"category"`
	Proposer         string         `json:"proposer"`
	VotesFor         uint64         `json:"votes_for"`
	VotesAgainst     uint64         `json:"votes_against"`
	Status           ProposalStatus `json:"status"`
	DeadlineOffsetMs int64          `json:"deadline_offset_ms"`
}

type GenesisTransaction struct {
	Hash   string   `json:"hash"`
	From   string   `json:"from"`
	To     string   `json:"to"`
	Amount uint64   `json:"amount"`
	Type   TxType   `json:"type"`
	Status TxStatus `json:"status"`
	AgeMs  int64    `json:"age_ms"`
}

type GenesisNFT struct {
	ID       string      `json:"id"`
	Owner    string      `json:"owner"`
	Metadata NFTMetadata `json:"metadata"`
	Price    *uint64     `json:"price,omitempty"`
}

// SaveAs is a utility method for saving GenesisDoc as a JSON file.
func (genDoc *GenesisDoc) SaveAs(file string) error {
	genDocBytes, err := json.MarshalIndent(genDoc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, genDocBytes, 0o600)
}

func (gd *GenesisDoc) ValidateAndComplete() error {
	if gd.Account != nil {
		if gd.Account.Address == "" {
			return errors.New("genesis account must include non-empty address")
		}
		if gd.Account.VotingPower == nil {
			power := gd.Account.Balance
			gd.Account.VotingPower = &power
		}
	}

	for i := range gd.Proposals {
		p := &gd.Proposals[i]
		if p.Status == "" {
			p.Status = ProposalStatusActive
		}
		if !p.Status.Valid() {
			return fmt.Errorf("genesis proposal %d has invalid status %q", i+1, p.Status)
		}
	}

	seen := make(map[string]bool)
	for i := range gd.Transactions {
		t := &gd.Transactions[i]
		if !IsTxHash(t.Hash) {
			return fmt.Errorf("genesis transaction %d has malformed hash %q", i, t.Hash)
		}
		if seen[t.Hash] {
			return fmt.Errorf("genesis transaction %d duplicates hash %s", i, t.Hash)
		}
		seen[t.Hash] = true
		if !t.Type.Valid() {
			return fmt.Errorf("genesis transaction %d has invalid type %q", i, t.Type)
		}
		if t.Status == "" {
			t.Status = TxStatusConfirmed
		}
		if !t.Status.Valid() {
			return fmt.Errorf("genesis transaction %d has invalid status %q", i, t.Status)
		}
	}

	ids := make(map[string]bool)
	for i := range gd.NFTs {
		n := &gd.NFTs[i]
		if n.Owner == "" {
			return fmt.Errorf("genesis nft %d must include an owner", i)
		}
		if n.ID == "" {
			n.ID = fmt.Sprintf("nft-%d", i+1)
		}
		if ids[n.ID] {
			return fmt.Errorf("genesis nft id %s is duplicated", n.ID)
		}
		ids[n.ID] = true
	}
	return nil
}

func LoadGenesisFile(genFile string) (*GenesisDoc, error) {
	dat, err := os.ReadFile(genFile)
	if err != nil {
		return nil, err
	}
	genDoc := new(GenesisDoc)
	if err = json.Unmarshal(dat, genDoc); err != nil {
		return nil, fmt.Errorf("decode genesis %s: %w", genFile, err)
	}
	if err = genDoc.ValidateAndComplete(); err != nil {
		return nil, err
	}
	return genDoc, nil
}

func ExportGenesisFile(genesis *GenesisDoc, genFile string) error {
	if err := genesis.ValidateAndComplete(); err != nil {
		return err
	}
	return genesis.SaveAs(genFile)
}

// IsTxHash reports whether s is 0x followed by 64 lowercase hex digits.
func IsTxHash(s string) bool {
	if len(s) != 66 || !strings.HasPrefix(s, "0x") {
		return false
	}
	if strings.ToLower(s) != s {
		return false
	}
	_, err := hex.DecodeString(s[2:])
	return err == nil
}

const (
	DefaultAccountAddress = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	DefaultAccountBalance = 1250
)

// DefaultGenesis returns the demo club ledger: one connected member, an open
// signing proposal, an already passed stadium proposal and a listed shirt.
func DefaultGenesis() *GenesisDoc {
	const other = "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty"
	day := 24 * time.Hour
	price := uint64(2500)
	power := uint64(DefaultAccountBalance)
	return &GenesisDoc{
		Account: &GenesisAccount{
			Address:     DefaultAccountAddress,
			Balance:     DefaultAccountBalance,
			VotingPower: &power,
		},
		Proposals: []GenesisProposal{
			{
				Title:            "Fichaje de Kylian Mbappé",
				Description:      "Propuesta para fichar al delantero francés por €180M",
				Category:         "fichajes",
				Proposer:         DefaultAccountAddress,
				VotesFor:         1250,
				VotesAgainst:     180,
				Status:           ProposalStatusActive,
				DeadlineOffsetMs: (7 * day).Milliseconds(),
			},
			{
				Title:            "Renovación del Estadio",
				Description:      "Ampliación del estadio con 5,000 asientos adicionales",
				Category:         "infraestructura",
				Proposer:         other,
				VotesFor:         2100,
				VotesAgainst:     300,
				Status:           ProposalStatusPassed,
				DeadlineOffsetMs: -day.Milliseconds(),
			},
		},
		Transactions: []GenesisTransaction{
			{
				Hash:   "0x1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef",
				From:   DefaultAccountAddress,
				To:     other,
				Amount: 100,
				Type:   TxTypeTransfer,
				Status: TxStatusConfirmed,
				AgeMs:  (2 * time.Hour).Milliseconds(),
			},
			{
				Hash:   "0xabcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890",
				From:   DefaultAccountAddress,
				To:     SystemAddress,
				Type:   TxTypeVote,
				Status: TxStatusConfirmed,
				AgeMs:  time.Hour.Milliseconds(),
			},
		},
		NFTs: []GenesisNFT{
			{
				ID:    "nft-1",
				Owner: DefaultAccountAddress,
				Metadata: NFTMetadata{
					Name:        "Camiseta Histórica 2022",
					Description: "Camiseta oficial del Real Madrid de la temporada 2021-22",
					Image:       "https://images.unsplash.com/photo-1522778119026-d647f0596c20?w=300&h=300&fit=crop",
					Attributes: []NFTAttribute{
						{TraitType: "Rarity", Value: "Legendary"},
						{TraitType: "Season", Value: "2021-22"},
						{TraitType: "Team", Value: "Real Madrid"},
					},
				},
				Price: &price,
			},
		},
	}
}
