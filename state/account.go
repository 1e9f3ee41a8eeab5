package state

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/misterexcel/FutDAO/types"
)

type accountSt struct {
	Address     string
	Balance     uint64
	VotingPower uint64
}

type txSt struct {
	Hash      string
	From      string
	To        string
	Amount    uint64
	Timestamp uint64
	Status    string
	Type      string
}

func accountLeaf(acnt *types.Account) leaf {
	val, _ := rlp.EncodeToBytes(accountSt{
		Address:     acnt.Address,
		Balance:     acnt.Balance,
		VotingPower: acnt.VotingPower,
	})
	return newLeaf(KeyAccount, val)
}

// clearedAccountLeaf overwrites the account slot once the member account
// has been dropped.
func clearedAccountLeaf() leaf {
	val, _ := rlp.EncodeToBytes(accountSt{})
	return newLeaf(KeyAccount, val)
}

func proposalLeaves(p *types.Proposal, total int) []leaf {
	body, _ := json.Marshal(p)
	index, _ := rlp.EncodeToBytes(uint64(total))
	return []leaf{
		newLeaf(fmt.Sprintf(KeyProposalBody, p.ID), body),
		newLeaf(KeyProposalIndex, index),
	}
}

// txLeaves stores the transaction body at its position and maps its hash
// back to that position.
func txLeaves(t *types.Transaction, pos int) []leaf {
	body, _ := rlp.EncodeToBytes(txSt{
		Hash:      t.Hash,
		From:      t.From,
		To:        t.To,
		Amount:    t.Amount,
		Timestamp: uint64(t.Timestamp.UnixMilli()),
		Status:    string(t.Status),
		Type:      string(t.Type),
	})
	idx, _ := rlp.EncodeToBytes(uint64(pos))
	total, _ := rlp.EncodeToBytes(uint64(pos + 1))
	return []leaf{
		newLeaf(fmt.Sprintf(KeyTxBody, pos), body),
		newLeaf(fmt.Sprintf(KeyHash, t.Hash), idx),
		newLeaf(KeyTxIndex, total),
	}
}

func nftLeaves(n *types.NFT, total int) []leaf {
	body, _ := json.Marshal(n)
	index, _ := rlp.EncodeToBytes(uint64(total))
	return []leaf{
		newLeaf(fmt.Sprintf(KeyNFTBody, n.ID), body),
		newLeaf(KeyNFTIndex, index),
	}
}
