package indexer

import (
	"context"
	"errors"
	"time"

	abci "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	cmtpubsub "github.com/cometbft/cometbft/libs/pubsub"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/misterexcel/FutDAO/app"
	"github.com/misterexcel/FutDAO/types"
	"github.com/samber/lo"
)

const (
	SubscriberName     = "indexer"
	DefaultPageSize    = 20
	MaxPageSize        = 100
	subscriberCapacity = 1000
)

var ErrAlreadyStarted = errors.New("indexer already started")

// Subscriber is the part of the event bus the indexer consumes.
type Subscriber interface {
	Subscribe(ctx context.Context, subscriber string, q cmtpubsub.Query, outCapacity ...int) (*cmtpubsub.Subscription, error)
}

// EventIndexer records ledger events into sqlite so history can be paged
// without touching the ledger.
type EventIndexer struct {
	logger        cmtlog.Logger
	db            *gorm.DB
	eventHandlers map[string]eventHandler
	now           func() time.Time
	done          chan struct{}
}

func NewEventIndexer(logger cmtlog.Logger, dbPath string) (*EventIndexer, error) {
	logger = logger.With("module", "indexer")
	logger.Info("NewEventIndexer", "dbPath", dbPath)
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// every connection to ":memory:" opens a separate database
	db.DB().SetMaxOpenConns(1)
	if err := db.AutoMigrate(&Proposal{}, &ProposalVote{}, &Transfer{}, &Mint{}, &Sale{}).Error; err != nil {
		db.Close()
		return nil, err
	}

	c := &EventIndexer{
		logger: logger,
		db:     db,
		now:    time.Now,
	}
	c.eventHandlers = map[string]eventHandler{
		types.EventProposalCreatedType:  c.handleEventProposalCreated,
		types.EventVoteCastType:         c.handleEventVoteCast,
		types.EventProposalExecutedType: c.handleEventProposalExecuted,
		types.EventProposalSettledType:  c.handleEventProposalSettled,
		types.EventTransferType:         c.handleEventTransfer,
		types.EventNFTMintedType:        c.handleEventNFTMinted,
		types.EventNFTSoldType:          c.handleEventNFTSold,
	}
	return c, nil
}

// Start subscribes to every ledger event and indexes them in a background
// goroutine until ctx is done or the subscription is canceled.
func (c *EventIndexer) Start(ctx context.Context, bus Subscriber) error {
	if c.done != nil {
		return ErrAlreadyStarted
	}
	sub, err := bus.Subscribe(ctx, SubscriberName, app.QueryAll, subscriberCapacity)
	if err != nil {
		return err
	}
	c.done = make(chan struct{})
	go func() {
		defer close(c.done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.Canceled():
				c.logger.Error("subscription canceled", "err", sub.Err())
				return
			case msg := <-sub.Out():
				event, ok := msg.Data().(abci.Event)
				if !ok {
					continue
				}
				c.HandleEvent(ctx, event)
			}
		}
	}()
	return nil
}

// Wait blocks until the indexing goroutine started by Start returns.
func (c *EventIndexer) Wait() {
	if c.done != nil {
		<-c.done
	}
}

func (c *EventIndexer) Close() error {
	return c.db.Close()
}

type eventHandler func(ctx context.Context, event abci.Event)

func (c *EventIndexer) HandleEvent(ctx context.Context, event abci.Event) {
	if h, ok := c.eventHandlers[event.Type]; ok {
		h(ctx, event)
	}
}

func (c *EventIndexer) handleEventProposalCreated(ctx context.Context, event abci.Event) {
	ev := types.DecodeEventProposalCreated(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	proposal := Proposal{
		Id:              ev.Proposal,
		Proposer:        ev.Proposer,
		Title:           ev.Title,
		Category:        ev.Category,
		Status:          string(types.ProposalStatusActive),
		TxHash:          ev.TxHash,
		Deadline:        ev.Deadline,
		CreateTimestamp: c.now().UnixMilli(),
	}
	if err := c.db.Save(&proposal).Error; err != nil {
		c.logger.Error("save proposal fail", "err", err)
	}
}

func (c *EventIndexer) handleEventVoteCast(ctx context.Context, event abci.Event) {
	ev := types.DecodeEventVoteCast(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	vote := ProposalVote{
		Proposal:  ev.Proposal,
		Voter:     ev.Voter,
		Vote:      string(ev.Vote),
		Power:     ev.Power,
		TxHash:    ev.TxHash,
		Timestamp: c.now().UnixMilli(),
	}
	if err := c.db.Create(&vote).Error; err != nil {
		c.logger.Error("save vote fail", "err", err)
		return
	}
	column := "votes_for"
	if ev.Vote == types.VoteAgainst {
		column = "votes_against"
	}
	// proposals seeded at genesis have no row; the update is a no-op for them
	err := c.db.Model(&Proposal{}).Where("id = ?", ev.Proposal).
		UpdateColumn(column, gorm.Expr(column+" + ?", ev.Power)).Error
	if err != nil {
		c.logger.Error("update proposal tally fail", "err", err)
	}
}

func (c *EventIndexer) handleEventProposalExecuted(ctx context.Context, event abci.Event) {
	ev := types.DecodeEventProposalExecuted(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	err := c.db.Model(&Proposal{}).Where("id = ?", ev.Proposal).
		UpdateColumn("status", string(types.ProposalStatusExecuted)).Error
	if err != nil {
		c.logger.Error("update proposal fail", "err", err)
	}
}

func (c *EventIndexer) handleEventProposalSettled(ctx context.Context, event abci.Event) {
	ev := types.DecodeEventProposalSettled(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	err := c.db.Model(&Proposal{}).Where("id = ?", ev.Proposal).UpdateColumns(map[string]interface{}{
		"status":           string(ev.Status),
		"votes_for":        ev.VotesFor,
		"votes_against":    ev.VotesAgainst,
		"settle_timestamp": c.now().UnixMilli(),
	}).Error
	if err != nil {
		c.logger.Error("update proposal fail", "err", err)
	}
}

func (c *EventIndexer) handleEventTransfer(ctx context.Context, event abci.Event) {
	ev := types.DecodeEventTransfer(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	transfer := Transfer{
		Sender:    ev.From,
		Recipient: ev.To,
		Amount:    ev.Amount,
		TxHash:    ev.TxHash,
		Timestamp: c.now().UnixMilli(),
	}
	if err := c.db.Create(&transfer).Error; err != nil {
		c.logger.Error("save transfer fail", "err", err)
	}
}

func (c *EventIndexer) handleEventNFTMinted(ctx context.Context, event abci.Event) {
	ev := types.DecodeEventNFTMinted(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	mint := Mint{
		NFT:       ev.NFT,
		TokenID:   ev.TokenID,
		Owner:     ev.Owner,
		Name:      ev.Name,
		Price:     ev.Price,
		ForSale:   ev.ForSale,
		TxHash:    ev.TxHash,
		Timestamp: c.now().UnixMilli(),
	}
	if err := c.db.Create(&mint).Error; err != nil {
		c.logger.Error("save mint fail", "err", err)
	}
}

func (c *EventIndexer) handleEventNFTSold(ctx context.Context, event abci.Event) {
	ev := types.DecodeEventNFTSold(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	sale := Sale{
		NFT:       ev.NFT,
		TokenID:   ev.TokenID,
		Seller:    ev.Seller,
		Buyer:     ev.Buyer,
		Price:     ev.Price,
		TxHash:    ev.TxHash,
		Timestamp: c.now().UnixMilli(),
	}
	if err := c.db.Create(&sale).Error; err != nil {
		c.logger.Error("save sale fail", "err", err)
	}
}

func normalizePage(page int, pageSize int) (int, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}
	return page, lo.Clamp(pageSize, 1, MaxPageSize)
}

func (c *EventIndexer) GetProposals(status string, page int, pageSize int) ([]Proposal, uint64, error) {
	page, pageSize = normalizePage(page, pageSize)
	db := c.db.Model(&Proposal{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	var total uint64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	proposals := make([]Proposal, 0)
	err := db.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&proposals).Error
	if err != nil {
		return nil, 0, err
	}
	return proposals, total, nil
}

// GetVotes pages votes, optionally narrowed to one proposal and/or voter.
func (c *EventIndexer) GetVotes(proposal uint64, voter string, page int, pageSize int) ([]ProposalVote, uint64, error) {
	page, pageSize = normalizePage(page, pageSize)
	db := c.db.Model(&ProposalVote{})
	if proposal != 0 {
		db = db.Where("proposal = ?", proposal)
	}
	if voter != "" {
		db = db.Where("voter = ?", voter)
	}
	var total uint64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	votes := make([]ProposalVote, 0)
	err := db.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&votes).Error
	if err != nil {
		return nil, 0, err
	}
	return votes, total, nil
}

func (c *EventIndexer) GetTransfers(address string, page int, pageSize int) ([]Transfer, uint64, error) {
	page, pageSize = normalizePage(page, pageSize)
	db := c.db.Model(&Transfer{})
	if address != "" {
		db = db.Where("sender = ? OR recipient = ?", address, address)
	}
	var total uint64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	transfers := make([]Transfer, 0)
	err := db.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&transfers).Error
	if err != nil {
		return nil, 0, err
	}
	return transfers, total, nil
}

func (c *EventIndexer) GetMints(owner string, page int, pageSize int) ([]Mint, uint64, error) {
	page, pageSize = normalizePage(page, pageSize)
	db := c.db.Model(&Mint{})
	if owner != "" {
		db = db.Where("owner = ?", owner)
	}
	var total uint64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	mints := make([]Mint, 0)
	err := db.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&mints).Error
	if err != nil {
		return nil, 0, err
	}
	return mints, total, nil
}

func (c *EventIndexer) GetSales(nft string, page int, pageSize int) ([]Sale, uint64, error) {
	page, pageSize = normalizePage(page, pageSize)
	db := c.db.Model(&Sale{})
	if nft != "" {
		db = db.Where("nft = ?", nft)
	}
	var total uint64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	sales := make([]Sale, 0)
	err := db.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&sales).Error
	if err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}
