package types

// LedgerStatus summarizes the ledger for the status endpoint.
type LedgerStatus struct {
	Connected    bool   `json:"connected"`
	Address      string `json:"address,omitempty"`
	Proposals    int    `json:"proposals"`
	Transactions int    `json:"transactions"`
	NFTs         int    `json:"nfts"`
	AppHash      string `json:"appHash"`
	Version      int64  `json:"version"`
}
