package types

import (
	"fmt"
	"strconv"

	abci "github.com/cometbft/cometbft/abci/types"
)

const (
	EventProposalCreatedType  = "proposal_created"
	EventVoteCastType         = "vote_cast"
	EventProposalExecutedType = "proposal_executed"
	EventProposalSettledType  = "proposal_settled"
	EventTransferType         = "transfer"
	EventNFTMintedType        = "nft_minted"
	EventNFTSoldType          = "nft_sold"
)

type EventProposalCreated struct {
	Proposal uint64 `json:"proposal"`
	Proposer string `json:"proposer"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Deadline int64  `json:"deadline"`
	TxHash   string `json:"txHash"`
}

func EncodeEventProposalCreated(event *EventProposalCreated) abci.Event {
	return abci.Event{
		Type: EventProposalCreatedType,
		Attributes: []abci.EventAttribute{
			{Key: "proposal", Value: fmt.Sprintf("%v", event.Proposal), Index: true},
			{Key: "proposer", Value: event.Proposer, Index: true},
			{Key: "title", Value: event.Title, Index: false},
			{Key: "category", Value: event.Category, Index: true},
			{Key: "deadline", Value: fmt.Sprintf("%v", event.Deadline), Index: false},
			{Key: "txHash", Value: event.TxHash, Index: false},
		},
	}
}

func DecodeEventProposalCreated(originEvent abci.Event) *EventProposalCreated {
	event := &EventProposalCreated{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "proposal":
			proposal, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Proposal = proposal
		case "proposer":
			event.Proposer = v.Value
		case "title":
			event.Title = v.Value
		case "category":
			event.Category = v.Value
		case "deadline":
			deadline, err := strconv.ParseInt(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Deadline = deadline
		case "txHash":
			event.TxHash = v.Value
		}
	}
	return event
}

type EventVoteCast struct {
	Proposal uint64     `json:"proposal"`
	Voter    string     `json:"voter"`
	Vote     VoteChoice `json:"vote"`
	Power    uint64     `json:"power"`
	TxHash   string     `json:"txHash"`
}

func EncodeEventVoteCast(event *EventVoteCast) abci.Event {
	return abci.Event{
		Type: EventVoteCastType,
		Attributes: []abci.EventAttribute{
			{Key: "proposal", Value: fmt.Sprintf("%v", event.Proposal), Index: true},
			{Key: "voter", Value: event.Voter, Index: true},
			{Key: "vote", Value: string(event.Vote), Index: true},
			{Key: "power", Value: fmt.Sprintf("%v", event.Power), Index: false},
			{Key: "txHash", Value: event.TxHash, Index: false},
		},
	}
}

func DecodeEventVoteCast(originEvent abci.Event) *EventVoteCast {
	event := &EventVoteCast{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "proposal":
			proposal, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Proposal = proposal
		case "voter":
			event.Voter = v.Value
		case "vote":
			event.Vote = VoteChoice(v.Value)
		case "power":
			power, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Power = power
		case "txHash":
			event.TxHash = v.Value
		}
	}
	return event
}

type EventProposalExecuted struct {
	Proposal uint64 `json:"proposal"`
	Executor string `json:"executor"`
	TxHash   string `json:"txHash"`
}

func EncodeEventProposalExecuted(event *EventProposalExecuted) abci.Event {
	return abci.Event{
		Type: EventProposalExecutedType,
		Attributes: []abci.EventAttribute{
			{Key: "proposal", Value: fmt.Sprintf("%v", event.Proposal), Index: true},
			{Key: "executor", Value: event.Executor, Index: true},
			{Key: "txHash", Value: event.TxHash, Index: false},
		},
	}
}

func DecodeEventProposalExecuted(originEvent abci.Event) *EventProposalExecuted {
	event := &EventProposalExecuted{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "proposal":
			proposal, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Proposal = proposal
		case "executor":
			event.Executor = v.Value
		case "txHash":
			event.TxHash = v.Value
		}
	}
	return event
}

type EventProposalSettled struct {
	Proposal     uint64         `json:"proposal"`
	Status       ProposalStatus `json:"status"`
	VotesFor     uint64         `json:"votesFor"`
	VotesAgainst uint64         `json:"votesAgainst"`
	TxHash       string         `json:"txHash"`
}

func EncodeEventProposalSettled(event *EventProposalSettled) abci.Event {
	return abci.Event{
		Type: EventProposalSettledType,
		Attributes: []abci.EventAttribute{
			{Key: "proposal", Value: fmt.Sprintf("%v", event.Proposal), Index: true},
			{Key: "status", Value: string(event.Status), Index: true},
			{Key: "votesFor", Value: fmt.Sprintf("%v", event.VotesFor), Index: false},
			{Key: "votesAgainst", Value: fmt.Sprintf("%v", event.VotesAgainst), Index: false},
			{Key: "txHash", Value: event.TxHash, Index: false},
		},
	}
}

func DecodeEventProposalSettled(originEvent abci.Event) *EventProposalSettled {
	event := &EventProposalSettled{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "proposal":
			proposal, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Proposal = proposal
		case "status":
			event.Status = ProposalStatus(v.Value)
		case "votesFor":
			votes, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.VotesFor = votes
		case "votesAgainst":
			votes, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.VotesAgainst = votes
		case "txHash":
			event.TxHash = v.Value
		}
	}
	return event
}

type EventTransfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
	TxHash string `json:"txHash"`
}

func EncodeEventTransfer(event *EventTransfer) abci.Event {
	return abci.Event{
		Type: EventTransferType,
		Attributes: []abci.EventAttribute{
			{Key: "from", Value: event.From, Index: true},
			{Key: "to", Value: event.To, Index: true},
			{Key: "amount", Value: fmt.Sprintf("%v", event.Amount), Index: false},
			{Key: "txHash", Value: event.TxHash, Index: false},
		},
	}
}

func DecodeEventTransfer(originEvent abci.Event) *EventTransfer {
	event := &EventTransfer{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "from":
			event.From = v.Value
		case "to":
			event.To = v.Value
		case "amount":
			amount, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Amount = amount
		case "txHash":
			event.TxHash = v.Value
		}
	}
	return event
}

type EventNFTMinted struct {
	NFT     string `json:"nft"`
	TokenID uint64 `json:"tokenId"`
	Owner   string `json:"owner"`
	Name    string `json:"name"`
	Price   uint64 `json:"price"`
	ForSale bool   `json:"forSale"`
	TxHash  string `json:"txHash"`
}

func EncodeEventNFTMinted(event *EventNFTMinted) abci.Event {
	return abci.Event{
		Type: EventNFTMintedType,
		Attributes: []abci.EventAttribute{
			{Key: "nft", Value: event.NFT, Index: true},
			{Key: "tokenId", Value: fmt.Sprintf("%v", event.TokenID), Index: false},
			{Key: "owner", Value: event.Owner, Index: true},
			{Key: "name", Value: event.Name, Index: false},
			{Key: "price", Value: fmt.Sprintf("%v", event.Price), Index: false},
			{Key: "forSale", Value: fmt.Sprintf("%v", event.ForSale), Index: false},
			{Key: "txHash", Value: event.TxHash, Index: false},
		},
	}
}

func DecodeEventNFTMinted(originEvent abci.Event) *EventNFTMinted {
	event := &EventNFTMinted{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "nft":
			event.NFT = v.Value
		case "tokenId":
			tokenID, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.TokenID = tokenID
		case "owner":
			event.Owner = v.Value
		case "name":
			event.Name = v.Value
		case "price":
			price, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Price = price
		case "forSale":
			forSale, err := strconv.ParseBool(v.Value)
			if err != nil {
				return nil
			}
			event.ForSale = forSale
		case "txHash":
			event.TxHash = v.Value
		}
	}
	return event
}

type EventNFTSold struct {
	NFT     string `json:"nft"`
	TokenID uint64 `json:"tokenId"`
	Seller  string `json:"seller"`
	Buyer   string `json:"buyer"`
	Price   uint64 `json:"price"`
	TxHash  string `json:"txHash"`
}

func EncodeEventNFTSold(event *EventNFTSold) abci.Event {
	return abci.Event{
		Type: EventNFTSoldType,
		Attributes: []abci.EventAttribute{
			{Key: "nft", Value: event.NFT, Index: true},
			{Key: "tokenId", Value: fmt.Sprintf("%v", event.TokenID), Index: false},
			{Key: "seller", Value: event.Seller, Index: true},
			{Key: "buyer", Value: event.Buyer, Index: true},
			{Key: "price", Value: fmt.Sprintf("%v", event.Price), Index: false},
			{Key: "txHash", Value: event.TxHash, Index: false},
		},
	}
}

func DecodeEventNFTSold(originEvent abci.Event) *EventNFTSold {
	event := &EventNFTSold{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "nft":
			event.NFT = v.Value
		case "tokenId":
			tokenID, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.TokenID = tokenID
		case "seller":
			event.Seller = v.Value
		case "buyer":
			event.Buyer = v.Value
		case "price":
			price, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Price = price
		case "txHash":
			event.TxHash = v.Value
		}
	}
	return event
}
