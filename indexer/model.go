package indexer

// sqlite models

type Proposal struct {
	Id              uint64 `gorm:"primary_key" json:"id"`
	Proposer        string `json:"proposer"`
	Title           string `json:"title"`
	Category        string `json:"category"`
	Status          string `json:"status"`
	VotesFor        uint64 `json:"votes_for"`
	VotesAgainst    uint64 `json:"votes_against"`
	TxHash          string `json:"tx_hash"`
	Deadline        int64  `json:"deadline"`
	CreateTimestamp int64  `json:"create_timestamp"`
	SettleTimestamp int64  `json:"settle_timestamp"`
}

type ProposalVote struct {
	Id        uint64 `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Proposal  uint64 `json:"proposal"`
	Voter     string `json:"voter"`
	Vote      string `json:"vote"`
	Power     uint64 `json:"power"`
	TxHash    string `json:"tx_hash"`
	Timestamp int64  `json:"timestamp"`
}

type Transfer struct {
	Id        uint64 `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
	TxHash    string `json:"tx_hash"`
	Timestamp int64  `json:"timestamp"`
}

type Mint struct {
	Id        uint64 `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	NFT       string `gorm:"column:nft" json:"nft"`
	TokenID   uint64 `gorm:"column:token_id" json:"token_id"`
	Owner     string `json:"owner"`
	Name      string `json:"name"`
	Price     uint64 `json:"price"`
	ForSale   bool   `json:"for_sale"`
	TxHash    string `json:"tx_hash"`
	Timestamp int64  `json:"timestamp"`
}

type Sale struct {
	Id        uint64 `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	NFT       string `gorm:"column:nft" json:"nft"`
	TokenID   uint64 `gorm:"column:token_id" json:"token_id"`
	Seller    string `json:"seller"`
	Buyer     string `json:"buyer"`
	Price     uint64 `json:"price"`
	TxHash    string `json:"tx_hash"`
	Timestamp int64  `json:"timestamp"`
}
