package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/gin-gonic/gin"
	"github.com/misterexcel/FutDAO/app"
	"github.com/misterexcel/FutDAO/config"
	"github.com/misterexcel/FutDAO/indexer"
	"github.com/misterexcel/FutDAO/state"
)

// Server exposes the ledger over HTTP. History routes are only mounted when
// an indexer is given.
type Server struct {
	logger     cmtlog.Logger
	engine     *gin.Engine
	app        *app.LedgerApp
	ledger     *state.Ledger
	indexer    *indexer.EventIndexer
	listenAddr string

	srv      *http.Server
	addr     string
	quit     chan struct{}
	stopOnce sync.Once
}

func NewServer(cfg *config.APIConfig, ledgerApp *app.LedgerApp, idx *indexer.EventIndexer, logger cmtlog.Logger) *Server {
	logger = logger.With("module", "api")
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	s := &Server{
		logger:     logger,
		engine:     r,
		app:        ledgerApp,
		ledger:     ledgerApp.Ledger(),
		indexer:    idx,
		listenAddr: cfg.ListenAddr,
		quit:       make(chan struct{}),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.engine
	r.GET("/status", s.handleStatus)
	r.GET("/abci_query", s.handleQuery)
	r.GET("/events", s.handleEvents)

	r.GET("/wallet", s.handleGetWallet)
	r.POST("/wallet/connect", s.handleConnect)
	r.POST("/wallet/disconnect", s.handleDisconnect)
	r.GET("/accounts/:address/balance", s.handleBalance)
	r.GET("/accounts/:address/voting-power", s.handleVotingPower)

	r.GET("/proposals", s.handleListProposals)
	r.POST("/proposals", s.handleCreateProposal)
	r.GET("/proposals/:id", s.handleGetProposal)
	r.POST("/proposals/:id/votes", s.handleVote)
	r.POST("/proposals/:id/execute", s.handleExecute)
	r.POST("/proposals/:id/settle", s.handleSettle)

	r.POST("/transfers", s.handleTransfer)
	r.GET("/transactions", s.handleListTransactions)

	r.GET("/nfts", s.handleListNFTs)
	r.POST("/nfts", s.handleMintNFT)
	r.GET("/nfts/:id", s.handleGetNFT)
	r.POST("/nfts/:id/buy", s.handleBuyNFT)

	r.POST("/broadcast", s.handleBroadcast)

	if s.indexer != nil {
		h := r.Group("/history")
		h.GET("/proposals", s.handleHistoryProposals)
		h.GET("/votes", s.handleHistoryVotes)
		h.GET("/transfers", s.handleHistoryTransfers)
		h.GET("/mints", s.handleHistoryMints)
		h.GET("/sales", s.handleHistorySales)
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start binds the listen address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return err
	}
	s.addr = ln.Addr().String()
	s.srv = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server fail", "err", err)
		}
	}()
	s.logger.Info("api server started", "addr", s.addr)
	return nil
}

// Addr is the bound address once Start has returned.
func (s *Server) Addr() string {
	return s.addr
}

// Stop closes open event streams and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.quit) })
	if s.srv == nil {
		return nil
	}
	err := s.srv.Shutdown(ctx)
	s.logger.Info("api server stopped")
	return err
}

func requestLogger(logger cmtlog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start))
	}
}
