package types

type NFT struct {
	ID        string      `json:"id"`
	TokenID   uint64      `json:"tokenId"`
	Owner     string      `json:"owner"`
	Metadata  NFTMetadata `json:"metadata"`
	Price     *uint64     `json:"price,omitempty"`
	IsForSale bool        `json:"isForSale"`
}

type NFTMetadata struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Attributes  []NFTAttribute `json:"attributes"`
}

// NFTAttribute is one trait of a collectible. Value holds either a string or
// a number, as decoded from JSON.
type NFTAttribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

func (n *NFT) Clone() *NFT {
	c := *n
	if n.Price != nil {
		price := *n.Price
		c.Price = &price
	}
	if n.Metadata.Attributes != nil {
		c.Metadata.Attributes = make([]NFTAttribute, len(n.Metadata.Attributes))
		copy(c.Metadata.Attributes, n.Metadata.Attributes)
	}
	return &c
}

// ListPrice returns the sale price, or zero when n is not listed.
func (n *NFT) ListPrice() uint64 {
	if n.Price == nil {
		return 0
	}
	return *n.Price
}
