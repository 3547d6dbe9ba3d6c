package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/viniapp/viniapp-node/internal/buildinfo"
	"github.com/viniapp/viniapp-node/internal/config"
	"github.com/viniapp/viniapp-node/internal/core/event"
	"github.com/viniapp/viniapp-node/internal/core/services"
	"github.com/viniapp/viniapp-node/internal/db"
	"github.com/viniapp/viniapp-node/internal/lease"
	"github.com/viniapp/viniapp-node/internal/log"
	"github.com/viniapp/viniapp-node/internal/process"
	"github.com/viniapp/viniapp-node/internal/pubsub"
	"github.com/viniapp/viniapp-node/internal/repositories"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Error(context.Background(), "cannot load config", "err", err)
		return
	}

	ctx, cancel := context.WithCancel(log.NewContext(context.Background(), cfg.Log.Level, cfg.Log.Mode, os.Stdout))
	defer cancel()
	log.Info(ctx, "pipeline worker starting", buildinfo.Read().LogArgs()...)

	if err := cfg.SanitizePipeline(); err != nil {
		log.Error(ctx, "there are errors in the configuration that prevent the worker to start", "err", err)
		return
	}
	if cfg.Cache.Provider == config.CacheProviderMemory {
		log.Error(ctx, "the pipeline worker needs a shared cache provider. With memory the api server runs the pipeline itself")
		return
	}
	cfg.LogMissing(ctx)

	storage, err := db.NewStorage(ctx, cfg.Database.URL)
	if err != nil {
		log.Error(ctx, "cannot connect to database", "err", err)
		return
	}
	defer func(storage *db.Storage) {
		if err := storage.Close(ctx); err != nil {
			log.Error(ctx, "closing database", "err", err)
		}
	}(storage)

	ps, err := pubsub.NewPubSub(ctx, *cfg)
	if err != nil {
		log.Error(ctx, "cannot initialize pubsub", "err", err)
		return
	}

	leases, err := lease.New(ctx, *cfg)
	if err != nil {
		log.Error(ctx, "cannot initialize pipeline leases", "err", err)
		return
	}

	pipeline := services.NewPipeline(
		repositories.NewViniapp(),
		storage.Pgx,
		leases,
		process.NewRunner(),
		services.NewPubSubScheduler(ps),
		cfg.Pipeline,
	)

	ps.Subscribe(ctx, event.PipelineStepEvent, pipeline.HandleStepEvent)
	log.Info(ctx, "pipeline worker started", "deploy_path", cfg.Pipeline.DeployPath)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	<-gracefulShutdown
	log.Info(ctx, "Shutting down")
	cancel()
	if err := ps.Close(); err != nil {
		log.Error(ctx, "closing pubsub", "err", err)
	}
}
