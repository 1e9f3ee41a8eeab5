package types

// SystemAddress is the counterparty recorded for ledger actions that move no
// tokens (votes, proposals, mints, settlements).
const SystemAddress = "0x0000000000000000000000000000000000000000"

type Account struct {
	Address     string `json:"address"`
	Balance     uint64 `json:"balance"`
	VotingPower uint64 `json:"votingPower"`
}

func (a *Account) Clone() *Account {
	n := *a
	return &n
}
