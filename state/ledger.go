package state

import (
	"fmt"
	"sync"
	"time"

	abci "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/misterexcel/FutDAO/tx"
	"github.com/misterexcel/FutDAO/types"
	"github.com/samber/lo"
)

const DefaultConnectDelay = time.Second

// EventSink receives ledger events after the mutation producing them has
// been committed, in commit order.
type EventSink interface {
	PublishEvent(event abci.Event)
}

type Option func(*Ledger)

func WithLogger(logger cmtlog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithConnectDelay(d time.Duration) Option {
	return func(l *Ledger) { l.connectDelay = d }
}

// WithVoteDedup rejects a second vote by the same account on one proposal.
func WithVoteDedup(enabled bool) Option {
	return func(l *Ledger) { l.dedupVotes = enabled }
}

func WithHashFunc(f tx.HashFunc) Option {
	return func(l *Ledger) { l.hashFunc = f }
}

func WithEventSink(sink EventSink) Option {
	return func(l *Ledger) { l.sink = sink }
}

type voteKey struct {
	proposal uint64
	voter    string
}

// Ledger holds the club's governance state: the member account, proposals,
// the transaction log and collectibles. All methods are safe for
// concurrent use.
type Ledger struct {
	mtx sync.RWMutex

	logger       cmtlog.Logger
	now          func() time.Time
	connectDelay time.Duration
	dedupVotes   bool
	hashFunc     tx.HashFunc
	sink         EventSink

	wallet       *types.Account
	proposals    []*types.Proposal
	transactions []*types.Transaction
	nfts         []*types.NFT
	votes        map[voteKey]struct{}

	// pending holds committed events not yet handed to sink. Guarded by mtx;
	// emitMtx serializes draining it.
	pending []abci.Event
	emitMtx sync.Mutex

	hashes *tx.HashIndex
	db     *CommitDB
}

// NewLedger builds a ledger seeded from genesis. A nil genesis loads
// types.DefaultGenesis.
func NewLedger(genesis *types.GenesisDoc, opts ...Option) (l *Ledger, err error) {
	l = &Ledger{
		logger:       cmtlog.NewNopLogger(),
		now:          time.Now,
		connectDelay: DefaultConnectDelay,
		votes:        make(map[voteKey]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("module", "ledger")
	l.hashes = tx.NewHashIndex(l.hashFunc)
	l.db, err = NewCommitDB(l.logger)
	if err != nil {
		return nil, err
	}
	if genesis == nil {
		genesis = types.DefaultGenesis()
	}
	if err = genesis.ValidateAndComplete(); err != nil {
		return nil, err
	}
	if err = l.load(genesis); err != nil {
		return nil, err
	}
	l.logger.Info("ledger loaded",
		"proposals", len(l.proposals),
		"transactions", len(l.transactions),
		"nfts", len(l.nfts),
		"appHash", l.db.Hash())
	return l, nil
}

func (l *Ledger) load(gen *types.GenesisDoc) error {
	base := gen.GenesisTime
	if base.IsZero() {
		base = l.now()
	}
	var leaves []leaf
	if gen.Account != nil {
		l.wallet = gen.Account.Account()
		leaves = append(leaves, accountLeaf(l.wallet))
	}
	for i, gp := range gen.Proposals {
		p := &types.Proposal{
			ID:           uint64(i + 1),
			Title:        gp.Title,
			Description:  gp.Description,
			Category:     gp.Category,
			Proposer:     gp.Proposer,
			VotesFor:     gp.VotesFor,
			VotesAgainst: gp.VotesAgainst,
			Status:       gp.Status,
			Deadline:     base.Add(time.Duration(gp.DeadlineOffsetMs) * time.Millisecond),
		}
		l.proposals = append(l.proposals, p)
		leaves = append(leaves, proposalLeaves(p, len(l.proposals))...)
	}
	for _, gt := range gen.Transactions {
		if err := l.hashes.Reserve(gt.Hash); err != nil {
			return fmt.Errorf("genesis transaction %s: %w", gt.Hash, err)
		}
		t := &types.Transaction{
			Hash:      gt.Hash,
			From:      gt.From,
			To:        gt.To,
			Amount:    gt.Amount,
			Timestamp: base.Add(-time.Duration(gt.AgeMs) * time.Millisecond),
			Status:    gt.Status,
			Type:      gt.Type,
		}
		leaves = append(leaves, txLeaves(t, len(l.transactions))...)
		l.transactions = append(l.transactions, t)
	}
	for i, gn := range gen.NFTs {
		n := (&types.NFT{
			ID:        gn.ID,
			TokenID:   uint64(i + 1),
			Owner:     gn.Owner,
			Metadata:  gn.Metadata,
			Price:     gn.Price,
			IsForSale: gn.Price != nil,
		}).Clone()
		l.nfts = append(l.nfts, n)
		leaves = append(leaves, nftLeaves(n, len(l.nfts))...)
	}
	_, err := l.db.Apply(leaves)
	return err
}

func (l *Ledger) current() *types.Account {
	return l.wallet
}

func (l *Ledger) getProposal(id uint64) *types.Proposal {
	if id == 0 || id > uint64(len(l.proposals)) {
		return nil
	}
	return l.proposals[id-1]
}

func (l *Ledger) getNFT(id string) *types.NFT {
	n, _ := lo.Find(l.nfts, func(n *types.NFT) bool { return n.ID == id })
	return n
}

// appendTx records a confirmed transaction stamped now and returns its
// commitment leaves.
func (l *Ledger) appendTx(hash, from, to string, amount uint64, tp types.TxType, now time.Time) (*types.Transaction, []leaf) {
	t := &types.Transaction{
		Hash:      hash,
		From:      from,
		To:        to,
		Amount:    amount,
		Timestamp: now,
		Status:    types.TxStatusConfirmed,
		Type:      tp,
	}
	leaves := txLeaves(t, len(l.transactions))
	l.transactions = append(l.transactions, t)
	return t, leaves
}

func (l *Ledger) commit(leaves []leaf) {
	if _, err := l.db.Apply(leaves); err != nil {
		l.logger.Error("update commitment fail", "err", err)
	}
}

// queue must be called with the write lock held, right after the commit
// the events describe.
func (l *Ledger) queue(events ...abci.Event) {
	if l.sink == nil {
		return
	}
	l.pending = append(l.pending, events...)
}

// flush hands queued events to the sink. It must not be called with mtx
// held.
func (l *Ledger) flush() {
	if l.sink == nil {
		return
	}
	l.emitMtx.Lock()
	defer l.emitMtx.Unlock()
	l.mtx.Lock()
	events := l.pending
	l.pending = nil
	l.mtx.Unlock()
	for _, ev := range events {
		l.sink.PublishEvent(ev)
	}
}

func (l *Ledger) nextHash() (string, error) {
	hash, err := l.hashes.Next()
	if err != nil {
		l.logger.Error("generate tx hash fail", "err", err)
		return "", err
	}
	return hash, nil
}

// ConnectWallet waits the connect delay and then reports the member account.
// Once the account has been dropped by DisconnectWallet there is nothing left
// to connect to and ErrConnection is returned.
func (l *Ledger) ConnectWallet() (*types.Account, error) {
	if l.connectDelay > 0 {
		time.Sleep(l.connectDelay)
	}
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	if l.wallet == nil {
		return nil, ErrConnection
	}
	l.logger.Info("wallet connected", "address", l.wallet.Address)
	return l.wallet.Clone(), nil
}

// DisconnectWallet drops the member account. It is a no-op when no account
// is held.
func (l *Ledger) DisconnectWallet() {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.wallet == nil {
		return
	}
	addr := l.wallet.Address
	l.wallet = nil
	l.commit([]leaf{clearedAccountLeaf()})
	l.logger.Info("wallet disconnected", "address", addr)
}

func (l *Ledger) CurrentAccount() *types.Account {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	acnt := l.current()
	if acnt == nil {
		return nil
	}
	return acnt.Clone()
}

func (l *Ledger) Balance(address string) (uint64, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	acnt := l.current()
	if acnt == nil || acnt.Address != address {
		return 0, ErrAccountNotFound
	}
	return acnt.Balance, nil
}

func (l *Ledger) VotingPower(address string) (uint64, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	acnt := l.current()
	if acnt == nil || acnt.Address != address {
		return 0, ErrAccountNotFound
	}
	return acnt.VotingPower, nil
}

func (l *Ledger) Proposals() []*types.Proposal {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	return lo.Map(l.proposals, func(p *types.Proposal, _ int) *types.Proposal { return p.Clone() })
}

// Proposal returns a copy of proposal id, or nil if there is none.
func (l *Ledger) Proposal(id uint64) *types.Proposal {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	p := l.getProposal(id)
	if p == nil {
		return nil
	}
	return p.Clone()
}

func (l *Ledger) CreateProposal(title, description, category string, duration time.Duration) (*types.Proposal, *types.Transaction, error) {
	defer l.flush()
	return l.createProposal(title, description, category, duration)
}

func (l *Ledger) createProposal(title, description, category string, duration time.Duration) (p *types.Proposal, t *types.Transaction, err error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	acnt := l.current()
	if acnt == nil {
		return nil, nil, ErrNotConnected
	}
	hash, err := l.nextHash()
	if err != nil {
		return nil, nil, err
	}
	now := l.now()
	np := &types.Proposal{
		ID:          uint64(len(l.proposals) + 1),
		Title:       title,
		Description: description,
		Category:    category,
		Proposer:    acnt.Address,
		Status:      types.ProposalStatusActive,
		Deadline:    now.Add(duration),
	}
	l.proposals = append(l.proposals, np)
	leaves := proposalLeaves(np, len(l.proposals))
	nt, txl := l.appendTx(hash, acnt.Address, types.SystemAddress, 0, types.TxTypeProposal, now)
	l.commit(append(leaves, txl...))
	l.queue(types.EncodeEventProposalCreated(&types.EventProposalCreated{
		Proposal: np.ID,
		Proposer: np.Proposer,
		Title:    np.Title,
		Category: np.Category,
		Deadline: np.Deadline.UnixMilli(),
		TxHash:   nt.Hash,
	}))
	l.logger.Info("proposal created", "proposal", np.ID, "category", np.Category, "deadline", np.Deadline)
	return np.Clone(), nt.Clone(), nil
}

func (l *Ledger) VoteOnProposal(id uint64, choice types.VoteChoice) (*types.Transaction, error) {
	defer l.flush()
	return l.voteOnProposal(id, choice)
}

func (l *Ledger) voteOnProposal(id uint64, choice types.VoteChoice) (*types.Transaction, error) {
	if !choice.Valid() {
		return nil, ErrInvalidVoteChoice
	}
	l.mtx.Lock()
	defer l.mtx.Unlock()
	acnt := l.current()
	if acnt == nil {
		return nil, ErrNotConnected
	}
	p := l.getProposal(id)
	if p == nil {
		return nil, ErrProposalNotFound
	}
	if p.Status != types.ProposalStatusActive {
		return nil, ErrProposalNotActive
	}
	now := l.now()
	if p.Expired(now) {
		return nil, ErrVotingExpired
	}
	vk := voteKey{proposal: id, voter: acnt.Address}
	if l.dedupVotes {
		if _, ok := l.votes[vk]; ok {
			return nil, ErrAlreadyVoted
		}
	}
	hash, err := l.nextHash()
	if err != nil {
		return nil, err
	}
	power := acnt.VotingPower
	if choice == types.VoteFor {
		p.VotesFor += power
	} else {
		p.VotesAgainst += power
	}
	l.votes[vk] = struct{}{}
	leaves := proposalLeaves(p, len(l.proposals))
	nt, txl := l.appendTx(hash, acnt.Address, types.SystemAddress, 0, types.TxTypeVote, now)
	l.commit(append(leaves, txl...))
	l.queue(types.EncodeEventVoteCast(&types.EventVoteCast{
		Proposal: id,
		Voter:    nt.From,
		Vote:     choice,
		Power:    power,
		TxHash:   nt.Hash,
	}))
	l.logger.Info("vote cast", "proposal", id, "vote", choice, "power", power)
	return nt.Clone(), nil
}

func (l *Ledger) ExecuteProposal(id uint64) (*types.Transaction, error) {
	defer l.flush()
	return l.executeProposal(id)
}

func (l *Ledger) executeProposal(id uint64) (*types.Transaction, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	acnt := l.current()
	if acnt == nil {
		return nil, ErrNotConnected
	}
	p := l.getProposal(id)
	if p == nil {
		return nil, ErrProposalNotFound
	}
	if p.Status != types.ProposalStatusPassed {
		return nil, ErrProposalNotExecutable
	}
	hash, err := l.nextHash()
	if err != nil {
		return nil, err
	}
	p.Status = types.ProposalStatusExecuted
	leaves := proposalLeaves(p, len(l.proposals))
	nt, txl := l.appendTx(hash, acnt.Address, types.SystemAddress, 0, types.TxTypeProposal, l.now())
	l.commit(append(leaves, txl...))
	l.queue(types.EncodeEventProposalExecuted(&types.EventProposalExecuted{
		Proposal: id,
		Executor: nt.From,
		TxHash:   nt.Hash,
	}))
	l.logger.Info("proposal executed", "proposal", id)
	return nt.Clone(), nil
}

// SettleProposal closes voting on an active proposal whose deadline has
// passed. It passes when votes for strictly exceed votes against.
func (l *Ledger) SettleProposal(id uint64) (*types.Proposal, *types.Transaction, error) {
	defer l.flush()
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.settleProposal(id, l.now())
}

// SettleExpired settles every active proposal past its deadline, in id
// order, and returns the settlement transactions.
func (l *Ledger) SettleExpired() (txs []*types.Transaction) {
	defer l.flush()
	l.mtx.Lock()
	defer l.mtx.Unlock()
	now := l.now()
	for _, p := range l.proposals {
		if p.Status != types.ProposalStatusActive || !p.Expired(now) {
			continue
		}
		_, t, err := l.settleProposal(p.ID, now)
		if err != nil {
			l.logger.Error("settle proposal fail", "proposal", p.ID, "err", err)
			break
		}
		txs = append(txs, t)
	}
	return
}

func settledEvent(p *types.Proposal, t *types.Transaction) abci.Event {
	return types.EncodeEventProposalSettled(&types.EventProposalSettled{
		Proposal:     p.ID,
		Status:       p.Status,
		VotesFor:     p.VotesFor,
		VotesAgainst: p.VotesAgainst,
		TxHash:       t.Hash,
	})
}

// settleProposal must be called with the write lock held.
func (l *Ledger) settleProposal(id uint64, now time.Time) (*types.Proposal, *types.Transaction, error) {
	p := l.getProposal(id)
	if p == nil {
		return nil, nil, ErrProposalNotFound
	}
	if p.Status != types.ProposalStatusActive {
		return nil, nil, ErrProposalNotActive
	}
	if !p.Expired(now) {
		return nil, nil, ErrVotingNotEnded
	}
	hash, err := l.nextHash()
	if err != nil {
		return nil, nil, err
	}
	if p.VotesFor > p.VotesAgainst {
		p.Status = types.ProposalStatusPassed
	} else {
		p.Status = types.ProposalStatusRejected
	}
	leaves := proposalLeaves(p, len(l.proposals))
	nt, txl := l.appendTx(hash, types.SystemAddress, types.SystemAddress, 0, types.TxTypeProposal, now)
	l.commit(append(leaves, txl...))
	l.queue(settledEvent(p, nt))
	l.logger.Info("proposal settled", "proposal", id, "status", p.Status, "for", p.VotesFor, "against", p.VotesAgainst)
	return p.Clone(), nt.Clone(), nil
}

func (l *Ledger) TransferTokens(to string, amount uint64) (*types.Transaction, error) {
	defer l.flush()
	return l.transferTokens(to, amount)
}

func (l *Ledger) transferTokens(to string, amount uint64) (*types.Transaction, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	acnt := l.current()
	if acnt == nil {
		return nil, ErrNotConnected
	}
	if acnt.Balance < amount {
		return nil, ErrInsufficientBalance
	}
	hash, err := l.nextHash()
	if err != nil {
		return nil, err
	}
	acnt.Balance -= amount
	nt, txl := l.appendTx(hash, acnt.Address, to, amount, types.TxTypeTransfer, l.now())
	l.commit(append([]leaf{accountLeaf(acnt)}, txl...))
	l.queue(types.EncodeEventTransfer(&types.EventTransfer{
		From:   nt.From,
		To:     nt.To,
		Amount: nt.Amount,
		TxHash: nt.Hash,
	}))
	l.logger.Info("tokens transferred", "to", to, "amount", amount, "balance", acnt.Balance)
	return nt.Clone(), nil
}

// Transactions lists the log in insertion order. A non-empty address keeps
// only the transactions it sent or received.
func (l *Ledger) Transactions(address string) []*types.Transaction {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	txs := l.transactions
	if address != "" {
		txs = lo.Filter(txs, func(t *types.Transaction, _ int) bool { return t.Involves(address) })
	}
	return lo.Map(txs, func(t *types.Transaction, _ int) *types.Transaction { return t.Clone() })
}

// NFTs lists every collectible, or only those held by owner when it is set.
func (l *Ledger) NFTs(owner string) []*types.NFT {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	nfts := l.nfts
	if owner != "" {
		nfts = lo.Filter(nfts, func(n *types.NFT, _ int) bool { return n.Owner == owner })
	}
	return lo.Map(nfts, func(n *types.NFT, _ int) *types.NFT { return n.Clone() })
}

func (l *Ledger) NFT(id string) *types.NFT {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	n := l.getNFT(id)
	if n == nil {
		return nil
	}
	return n.Clone()
}

func (l *Ledger) MintNFT(metadata types.NFTMetadata, price *uint64) (*types.NFT, *types.Transaction, error) {
	defer l.flush()
	return l.mintNFT(metadata, price)
}

func (l *Ledger) mintNFT(metadata types.NFTMetadata, price *uint64) (*types.NFT, *types.Transaction, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	acnt := l.current()
	if acnt == nil {
		return nil, nil, ErrNotConnected
	}
	hash, err := l.nextHash()
	if err != nil {
		return nil, nil, err
	}
	n := (&types.NFT{
		ID:        "nft-" + uuid.NewString(),
		TokenID:   uint64(len(l.nfts) + 1),
		Owner:     acnt.Address,
		Metadata:  metadata,
		Price:     price,
		IsForSale: price != nil,
	}).Clone()
	l.nfts = append(l.nfts, n)
	leaves := nftLeaves(n, len(l.nfts))
	nt, txl := l.appendTx(hash, acnt.Address, types.SystemAddress, 0, types.TxTypeNFTMint, l.now())
	l.commit(append(leaves, txl...))
	l.queue(types.EncodeEventNFTMinted(&types.EventNFTMinted{
		NFT:     n.ID,
		TokenID: n.TokenID,
		Owner:   n.Owner,
		Name:    n.Metadata.Name,
		Price:   n.ListPrice(),
		ForSale: n.IsForSale,
		TxHash:  nt.Hash,
	}))
	l.logger.Info("nft minted", "nft", n.ID, "tokenId", n.TokenID, "forSale", n.IsForSale)
	return n.Clone(), nt.Clone(), nil
}

func (l *Ledger) BuyNFT(id string, price uint64) (*types.NFT, *types.Transaction, error) {
	defer l.flush()
	return l.buyNFT(id, price)
}

func (l *Ledger) buyNFT(id string, price uint64) (*types.NFT, *types.Transaction, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	acnt := l.current()
	if acnt == nil {
		return nil, nil, ErrNotConnected
	}
	nft := l.getNFT(id)
	if nft == nil {
		return nil, nil, ErrNftNotFound
	}
	if !nft.IsForSale {
		return nil, nil, ErrNftNotForSale
	}
	if acnt.Balance < price {
		return nil, nil, ErrInsufficientBalance
	}
	hash, err := l.nextHash()
	if err != nil {
		return nil, nil, err
	}
	seller := nft.Owner
	nft.Owner = acnt.Address
	nft.IsForSale = false
	nft.Price = nil
	acnt.Balance -= price
	leaves := append([]leaf{accountLeaf(acnt)}, nftLeaves(nft, len(l.nfts))...)
	nt, txl := l.appendTx(hash, acnt.Address, seller, price, types.TxTypeNFTPurchase, l.now())
	l.commit(append(leaves, txl...))
	l.queue(types.EncodeEventNFTSold(&types.EventNFTSold{
		NFT:     nft.ID,
		TokenID: nft.TokenID,
		Seller:  seller,
		Buyer:   nft.Owner,
		Price:   price,
		TxHash:  nt.Hash,
	}))
	l.logger.Info("nft purchased", "nft", id, "seller", seller, "price", price)
	return nft.Clone(), nt.Clone(), nil
}

func (l *Ledger) AppHash() common.Hash {
	return l.db.Hash()
}

func (l *Ledger) Version() int64 {
	return l.db.Version()
}

func (l *Ledger) Status() *types.LedgerStatus {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	st := &types.LedgerStatus{
		Connected:    l.wallet != nil,
		Proposals:    len(l.proposals),
		Transactions: len(l.transactions),
		NFTs:         len(l.nfts),
		AppHash:      l.db.Hash().Hex(),
		Version:      l.db.Version(),
	}
	if acnt := l.current(); acnt != nil {
		st.Address = acnt.Address
	}
	return st
}

// StoreValue reads the raw commitment leaf stored under key, or nil when
// the key is absent.
func (l *Ledger) StoreValue(key string) ([]byte, error) {
	return l.db.Get(key)
}

func (l *Ledger) Close() error {
	return l.db.Close()
}
