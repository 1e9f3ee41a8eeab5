package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	cmtos "github.com/cometbft/cometbft/libs/os"
	"github.com/misterexcel/FutDAO/config"
	"github.com/misterexcel/FutDAO/state"
	"github.com/misterexcel/FutDAO/tx"
	"github.com/misterexcel/FutDAO/tx/handler"
	"github.com/misterexcel/FutDAO/types"
)

type LedgerApp struct {
	cfg    *config.Config
	logger cmtlog.Logger

	ledger   *state.Ledger
	bus      *EventBus
	txHdlrs  map[tx.LedgerTxType]handler.TxHandler
	queriers map[string]Querier

	quit chan struct{}
	wg   sync.WaitGroup
}

func NewLedgerApp(cfg *config.Config, logger cmtlog.Logger) (app *LedgerApp, err error) {
	logger = logger.With("module", "app")

	genesis, err := loadGenesis(cfg, logger)
	if err != nil {
		return nil, err
	}
	bus := NewEventBus(logger)
	ledger, err := state.NewLedger(genesis,
		state.WithLogger(logger),
		state.WithConnectDelay(cfg.Ledger.ConnectDelay),
		state.WithVoteDedup(cfg.Ledger.DedupVotes),
		state.WithEventSink(bus),
	)
	if err != nil {
		return nil, err
	}

	app = &LedgerApp{
		cfg:      cfg,
		logger:   logger,
		ledger:   ledger,
		bus:      bus,
		queriers: make(map[string]Querier),
		quit:     make(chan struct{}),
	}
	app.registerTxHandler()
	app.registerQuerier()
	return
}

func loadGenesis(cfg *config.Config, logger cmtlog.Logger) (*types.GenesisDoc, error) {
	genFile := cfg.GenesisFile()
	if genFile == "" || !cmtos.FileExists(genFile) {
		logger.Info("genesis file not found, using built-in genesis", "file", genFile)
		return types.DefaultGenesis(), nil
	}
	gen, err := types.LoadGenesisFile(genFile)
	if err != nil {
		return nil, fmt.Errorf("load genesis: %w", err)
	}
	logger.Info("load genesis success", "file", genFile)
	return gen, nil
}

func (app *LedgerApp) registerTxHandler() {
	app.txHdlrs = handler.NewHandlers(app.logger)
}

func (app *LedgerApp) registerQuerier() {
	app.queriers["/accounts/"] = NewAccountQuerier(app.ledger, app.logger)
	app.queriers["/proposals/"] = NewProposalQuerier(app.ledger, app.logger)
	app.queriers["/transactions/"] = NewTransactionQuerier(app.ledger, app.logger)
	app.queriers["/nfts/"] = NewNFTQuerier(app.ledger, app.logger)
	app.queriers["/status/"] = NewStatusQuerier(app.ledger, app.logger)
	app.queriers["/store/"] = NewStoreQuerier(app.ledger, app.logger)
}

// Start runs the event bus and, when configured, the settler that closes
// proposals whose voting period has ended.
func (app *LedgerApp) Start() error {
	if err := app.bus.Start(); err != nil {
		return err
	}
	if interval := app.cfg.Ledger.SettleInterval; interval > 0 {
		app.wg.Add(1)
		go app.settleLoop(interval)
	}
	app.logger.Info("ledger app started", "appHash", app.ledger.AppHash())
	return nil
}

func (app *LedgerApp) Stop() {
	close(app.quit)
	app.wg.Wait()
	if err := app.bus.Stop(); err != nil {
		app.logger.Error("stop event bus fail", "err", err)
	}
	if err := app.ledger.Close(); err != nil {
		app.logger.Error("close ledger fail", "err", err)
	}
	app.logger.Info("ledger app stopped")
}

func (app *LedgerApp) settleLoop(interval time.Duration) {
	defer app.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-app.quit:
			return
		case <-ticker.C:
			if txs := app.ledger.SettleExpired(); len(txs) > 0 {
				app.logger.Info("settled expired proposals", "count", len(txs))
			}
		}
	}
}

func (app *LedgerApp) Ledger() *state.Ledger {
	return app.ledger
}

func (app *LedgerApp) EventBus() *EventBus {
	return app.bus
}

func (app *LedgerApp) CheckTx(ctx context.Context, btx *tx.LedgerTx) (res *abcitypes.ResponseCheckTx, err error) {
	h, ok := app.txHdlrs[btx.Type]
	if !ok {
		return nil, tx.ErrUnsupportedTxType
	}
	return h.Check(ctx, app.ledger, btx)
}

// DeliverTx validates btx and applies it to the ledger.
func (app *LedgerApp) DeliverTx(ctx context.Context, btx *tx.LedgerTx) (res *handler.Result, err error) {
	h, ok := app.txHdlrs[btx.Type]
	if !ok {
		return nil, tx.ErrUnsupportedTxType
	}
	chk, err := h.Check(ctx, app.ledger, btx)
	if err != nil {
		return nil, err
	}
	if chk.Code != 0 {
		return nil, fmt.Errorf("%w: %s", tx.ErrInvalidTx, chk.Log)
	}
	res, err = h.Deliver(ctx, app.ledger, btx)
	if err != nil {
		app.logger.Info("DeliverTx fail", "type", btx.Type, "err", err)
		return nil, err
	}
	app.logger.Debug("DeliverTx", "type", btx.Type, "hash", res.Tx.Hash)
	return
}
