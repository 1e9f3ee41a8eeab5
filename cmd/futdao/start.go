package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	cmtcfg "github.com/cometbft/cometbft/config"
	cmtflags "github.com/cometbft/cometbft/libs/cli/flags"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/misterexcel/FutDAO/api"
	"github.com/misterexcel/FutDAO/app"
	"github.com/misterexcel/FutDAO/config"
	"github.com/misterexcel/FutDAO/indexer"
	"github.com/spf13/cobra"
)

type startArguments struct {
	Home string
}

var startArgs startArguments

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the ledger node",
	Long: `Run the ledger, its event indexer and the HTTP API.
Settings come from <home>/config/config.toml and FUTDAO_* variables.`,
	Args: cobra.NoArgs,
	Run:  startRun,
}

func init() {
	homeFlag(startCmd, &startArgs.Home)
}

func startRun(cmd *cobra.Command, args []string) {
	loadDotEnv()
	home := resolveHome(startArgs.Home)
	cfg, err := config.LoadConfig(home)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := cmtlog.NewTMLogger(cmtlog.NewSyncWriter(os.Stdout))
	logger, err = cmtflags.ParseLogLevel(cfg.LogLevel, logger, cmtcfg.DefaultLogLevel)
	if err != nil {
		log.Fatalf("failed to parse log level: %v", err)
	}

	ledgerApp, err := app.NewLedgerApp(cfg, logger)
	if err != nil {
		log.Fatalf("new App err:%v", err)
	}
	if err = ledgerApp.Start(); err != nil {
		log.Fatalf("start app err:%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var idx *indexer.EventIndexer
	if cfg.Indexer.Enabled {
		idx, err = indexer.NewEventIndexer(logger, cfg.IndexerDBPath())
		if err != nil {
			log.Fatalf("new event indexer err %s", err.Error())
		}
		if err = idx.Start(ctx, ledgerApp.EventBus()); err != nil {
			log.Fatalf("start event indexer err %s", err.Error())
		}
	}

	srv := api.NewServer(cfg.API, ledgerApp, idx, logger)
	if err = srv.Start(); err != nil {
		log.Fatalf("start api server err %s", err.Error())
	}

	defer func() {
		log.Println("shut down...")
		done := make(chan struct{})
		go func() {
			defer close(done)
			sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer scancel()
			if err := srv.Stop(sctx); err != nil {
				logger.Error("stop api server fail", "err", err)
			}
			cancel()
			if idx != nil {
				idx.Wait()
				if err := idx.Close(); err != nil {
					logger.Error("close indexer fail", "err", err)
				}
			}
			ledgerApp.Stop()
		}()
		timer := time.NewTimer(time.Second * 10)
		select {
		case <-timer.C:
			os.Exit(1)
		case <-done:
			return
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
