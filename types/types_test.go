package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCodecs(t *testing.T) {
	const hash = "0xabcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890"

	vote := &EventVoteCast{Proposal: 4, Voter: "member", Vote: VoteAgainst, Power: 1250, TxHash: hash}
	assert.Equal(t, vote, DecodeEventVoteCast(EncodeEventVoteCast(vote)))

	settled := &EventProposalSettled{Proposal: 1, Status: ProposalStatusRejected, VotesFor: 3, VotesAgainst: 3, TxHash: hash}
	assert.Equal(t, settled, DecodeEventProposalSettled(EncodeEventProposalSettled(settled)))

	minted := &EventNFTMinted{NFT: "nft-9", TokenID: 9, Owner: "member", Name: "Ball", Price: 12, ForSale: true, TxHash: hash}
	assert.Equal(t, minted, DecodeEventNFTMinted(EncodeEventNFTMinted(minted)))

	sold := &EventNFTSold{NFT: "nft-9", TokenID: 9, Seller: "a", Buyer: "b", Price: 12, TxHash: hash}
	ev := EncodeEventNFTSold(sold)
	assert.Equal(t, EventNFTSoldType, ev.Type)
	assert.Equal(t, sold, DecodeEventNFTSold(ev))
}

func TestDecodeRejectsBadNumbers(t *testing.T) {
	ev := EncodeEventTransfer(&EventTransfer{From: "a", To: "b", Amount: 5})
	for i := range ev.Attributes {
		if ev.Attributes[i].Key == "amount" {
			ev.Attributes[i].Value = "five"
		}
	}
	require.Nil(t, DecodeEventTransfer(ev))
}

func TestCloneIsDeep(t *testing.T) {
	price := uint64(10)
	n := &NFT{ID: "nft-1", Price: &price, Metadata: NFTMetadata{Attributes: []NFTAttribute{{TraitType: "Team", Value: "Real Madrid"}}}}
	c := n.Clone()
	*c.Price = 20
	c.Metadata.Attributes[0].Value = "Atlético"
	assert.Equal(t, uint64(10), *n.Price)
	assert.Equal(t, "Real Madrid", n.Metadata.Attributes[0].Value)

	tx := &Transaction{From: "a", To: "b"}
	assert.True(t, tx.Involves("a"))
	assert.True(t, tx.Involves("b"))
	assert.False(t, tx.Involves("c"))
}
