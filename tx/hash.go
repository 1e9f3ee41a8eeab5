package tx

import (
	"crypto/rand"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/misterexcel/FutDAO/types"
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/memdb"
)

// HashFunc produces a candidate transaction hash.
type HashFunc func() (string, error)

// RandomHash returns 0x followed by 64 lowercase hex digits drawn from
// crypto/rand.
func RandomHash() (string, error) {
	var b [common.HashLength]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return common.BytesToHash(b[:]).Hex(), nil
}

// HashIndex hands out transaction hashes and remembers every hash it has
// issued or reserved, so no hash is ever handed out twice.
type HashIndex struct {
	mtx  sync.Mutex
	db   *memdb.DB
	next HashFunc
}

func NewHashIndex(next HashFunc) *HashIndex {
	if next == nil {
		next = RandomHash
	}
	return &HashIndex{
		db:   memdb.New(comparer.DefaultComparer, 0),
		next: next,
	}
}

// Next draws hashes until it finds one not yet indexed and records it.
func (h *HashIndex) Next() (hash string, err error) {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	for i := 0; i < MaxHashAttempts; i++ {
		hash, err = h.next()
		if err != nil {
			return "", err
		}
		key := []byte(hash)
		if h.db.Contains(key) {
			continue
		}
		if err = h.db.Put(key, nil); err != nil {
			return "", err
		}
		return hash, nil
	}
	return "", ErrHashExhausted
}

// Reserve records an externally supplied hash, e.g. one loaded from genesis.
func (h *HashIndex) Reserve(hash string) error {
	if !types.IsTxHash(hash) {
		return ErrMalformedHash
	}
	h.mtx.Lock()
	defer h.mtx.Unlock()
	key := []byte(hash)
	if h.db.Contains(key) {
		return ErrDuplicateHash
	}
	return h.db.Put(key, nil)
}

func (h *HashIndex) Contains(hash string) bool {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	return h.db.Contains([]byte(hash))
}

func (h *HashIndex) Len() int {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	return h.db.Len()
}
