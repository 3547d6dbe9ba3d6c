package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/viniapp/viniapp-node/internal/api"
	"github.com/viniapp/viniapp-node/internal/buildinfo"
	"github.com/viniapp/viniapp-node/internal/cache"
	"github.com/viniapp/viniapp-node/internal/config"
	"github.com/viniapp/viniapp-node/internal/core/event"
	"github.com/viniapp/viniapp-node/internal/core/ports"
	"github.com/viniapp/viniapp-node/internal/core/services"
	"github.com/viniapp/viniapp-node/internal/db"
	"github.com/viniapp/viniapp-node/internal/gateways"
	"github.com/viniapp/viniapp-node/internal/health"
	"github.com/viniapp/viniapp-node/internal/kms"
	"github.com/viniapp/viniapp-node/internal/lease"
	"github.com/viniapp/viniapp-node/internal/log"
	"github.com/viniapp/viniapp-node/internal/process"
	"github.com/viniapp/viniapp-node/internal/pubsub"
	"github.com/viniapp/viniapp-node/internal/repositories"
	pkghttp "github.com/viniapp/viniapp-node/pkg/http"
	pkgpubsub "github.com/viniapp/viniapp-node/pkg/pubsub"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Error(context.Background(), "cannot load config", "err", err)
		return
	}

	ctx, cancel := context.WithCancel(log.NewContext(context.Background(), cfg.Log.Level, cfg.Log.Mode, os.Stdout))
	defer cancel()
	log.Info(ctx, "server starting", buildinfo.Read().LogArgs()...)

	if err := cfg.Sanitize(); err != nil {
		log.Error(ctx, "there are errors in the configuration that prevent server to start", "err", err)
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

	cachex, cachePinger, err := cache.NewCacheClient(ctx, *cfg)
	if err != nil {
		log.Error(ctx, "cannot initialize cache", "err", err)
		return
	}

	ps, err := pubsub.NewPubSub(ctx, *cfg)
	if err != nil {
		log.Error(ctx, "cannot initialize pubsub", "err", err)
		return
	}
	defer func(ps pkgpubsub.Client) {
		if err := ps.Close(); err != nil {
			log.Error(ctx, "closing pubsub", "err", err)
		}
	}(ps)

	chain, err := gateways.NewChainClient(ctx, cfg.Chain.RPCURL, cfg.Chain.RPCResponseTimeout)
	if err != nil {
		log.Error(ctx, "cannot connect to chain rpc", "err", err, "rpc", cfg.Chain.RPCURL)
		return
	}
	defer chain.Close()

	encryptionKey, err := cfg.Wallet.EncryptionKeyBytes()
	if err != nil {
		log.Error(ctx, "invalid wallet encryption key", "err", err)
		return
	}
	cipher, err := kms.NewSecretBox(encryptionKey)
	if err != nil {
		log.Error(ctx, "cannot initialize wallet key cipher", "err", err)
		return
	}

	// repositories initialization
	viniappRepository := repositories.NewViniapp()

	// services initialization
	scheduler := services.NewPubSubScheduler(ps)
	verifier := services.NewCachedVerifier(
		services.NewVerifier(chain, cfg.Chain.ContractAddress, cfg.Chain.Method),
		cachex,
		cfg.Chain.VerificationCacheTTL,
	)
	wallets := gateways.NewPrivy(cfg.Wallet, pkghttp.NewRetryableClient(cfg.Wallet.RetryMax))
	viniappService := services.NewViniapp(viniappRepository, storage.Pgx, verifier, wallets, cipher, scheduler)

	if cfg.Cache.Provider == config.CacheProviderMemory {
		if err := startInProcessPipeline(ctx, cfg, storage, viniappRepository, ps, scheduler); err != nil {
			log.Error(ctx, "cannot start in process pipeline worker", "err", err)
			return
		}
	}

	serverHealth := health.New(storage, cachePinger)

	mux := chi.NewRouter()
	mux.Use(
		chiMiddleware.RequestID,
		log.ChiMiddleware(ctx),
		chiMiddleware.Recoverer,
		cors.AllowAll().Handler,
		chiMiddleware.NoCache,
	)
	api.RegisterStatic(mux)
	api.HandlerWithOptions(
		api.NewStrictHandlerWithOptions(
			api.NewServer(viniappService, verifier, serverHealth),
			middlewares(ctx),
			api.StrictHTTPServerOptions{
				RequestErrorHandlerFunc:  api.RequestErrorHandlerFunc,
				ResponseErrorHandlerFunc: api.ResponseErrorHandlerFunc,
			}),
		api.ChiServerOptions{
			BaseRouter:       mux,
			ErrorHandlerFunc: api.ErrorHandlerFunc,
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info(ctx, "server started", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "starting http server", "err", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	log.Info(ctx, "Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "shutting down http server", "err", err)
	}
}

// startInProcessPipeline runs the pipeline worker inside the api server. Used with the
// memory cache provider, where events never leave the process.
func startInProcessPipeline(ctx context.Context, cfg *config.Configuration, storage *db.Storage, repo ports.ViniappRepository, ps pkgpubsub.Client, scheduler ports.PipelineScheduler) error {
	if err := cfg.SanitizePipeline(); err != nil {
		return err
	}
	leases, err := lease.New(ctx, *cfg)
	if err != nil {
		return err
	}
	pipeline := services.NewPipeline(repo, storage.Pgx, leases, process.NewRunner(), scheduler, cfg.Pipeline)
	ps.Subscribe(ctx, event.PipelineStepEvent, pipeline.HandleStepEvent)
	log.Info(ctx, "pipeline worker running in process")
	return nil
}

func middlewares(ctx context.Context) []api.StrictMiddlewareFunc {
	return []api.StrictMiddlewareFunc{
		api.LogMiddleware(ctx),
	}
}
