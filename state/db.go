package state

import (
	"fmt"
	"sync"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/iavl"
	dbm "github.com/cosmos/iavl/db"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	KeyAccount       = "a"
	KeyProposalBody  = "p%v"
	KeyProposalIndex = "pi"
	KeyTxBody        = "t%v"
	KeyTxIndex       = "ti"
	KeyHash          = "h%s"
	KeyNFTBody       = "n%v"
	KeyNFTIndex      = "ni"
)

type leaf struct {
	key   []byte
	value []byte
}

func newLeaf(key string, value []byte) leaf {
	return leaf{key: []byte(key), value: value}
}

// CommitDB keeps an in-memory iavl tree of the ledger entities and derives
// the application hash from its root. Each Apply saves a new version.
type CommitDB struct {
	mtx sync.RWMutex

	logger cmtlog.Logger
	db     *iavl.MutableTree
	dbVer  int64
	hash   common.Hash
}

func NewCommitDB(logger cmtlog.Logger) (cdb *CommitDB, err error) {
	logger = logger.With("module", "commitdb")
	ldb, err := dbm.NewDB("futdao", "memdb", "")
	if err != nil {
		return nil, err
	}
	tdb := iavl.NewMutableTree(ldb, 128, true, newTreeLogger(logger))
	cdb = &CommitDB{
		logger: logger,
		db:     tdb,
	}
	return
}

// Apply writes leaves and saves a new tree version. On failure the working
// tree is rolled back and the previous hash stays current.
func (c *CommitDB) Apply(leaves []leaf) (h common.Hash, err error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	for _, lf := range leaves {
		_, err = c.db.Set(lf.key, lf.value)
		if err != nil {
			c.db.Rollback()
			return c.hash, fmt.Errorf("set %s: %w", lf.key, err)
		}
	}
	rootHash, ver, err := c.db.SaveVersion()
	if err != nil {
		c.db.Rollback()
		return c.hash, err
	}
	c.dbVer = ver
	c.hash = crypto.Keccak256Hash(rootHash)
	c.logger.Debug("commit", "version", ver, "leaves", len(leaves), "hash", c.hash)
	h = c.hash
	return
}

// Get returns the value stored under key in the working tree, nil if the key
// is absent.
func (c *CommitDB) Get(key string) (val []byte, err error) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.db.Get([]byte(key))
}

func (c *CommitDB) Hash() common.Hash {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.hash
}

func (c *CommitDB) Version() int64 {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.dbVer
}

func (c *CommitDB) Close() error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.db.Close()
}
