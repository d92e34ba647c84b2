package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/giongion19/energyweb-marketplace/internal/infrastructure/ledger/bridge"
	"github.com/giongion19/energyweb-marketplace/internal/infrastructure/postgresql/matchlog"
	"github.com/giongion19/energyweb-marketplace/internal/usecase/aggregator"
	matchpublisher "github.com/giongion19/energyweb-marketplace/internal/usecase/match-publisher"
	"github.com/giongion19/energyweb-marketplace/pkg/config"
	"github.com/giongion19/energyweb-marketplace/pkg/logger"
	"github.com/giongion19/energyweb-marketplace/pkg/postgresql"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic(err)
	}

	log, err = logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		panic(err)
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	gateway := bridge.NewClient(bridge.Config{
		URL:                    cfg.Ledger.BridgeURL,
		IdentityManagerAddress: cfg.Ledger.IdentityManagerAddress,
		MarketplaceAddress:     cfg.Ledger.MarketplaceAddress,
		RequestTimeout:         cfg.Ledger.RequestTimeout,
	}, log)

	pg, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "connect_postgres",
		})
		return
	}
	defer pg.Close()

	proposals := matchlog.NewRepository(pg, log)
	publisher := matchpublisher.NewPublisher(cfg.MatchKafka, log)

	agg := aggregator.NewAggregator(cfg.Aggregator, gateway, proposals, publisher, log)
	agg.Start(ctx)

	log.Info("Aggregator started", logger.Field{
		Key:   "bridge",
		Value: cfg.Ledger.BridgeURL,
	})

	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	cancel()
	agg.Stop()

	if err := publisher.Close(); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "close_publisher",
		})
	}

	_ = log.Sync()
}
