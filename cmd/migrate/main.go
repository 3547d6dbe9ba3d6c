package main

import (
	"context"
	"os"

	"github.com/viniapp/viniapp-node/internal/config"
	"github.com/viniapp/viniapp-node/internal/db/schema"
	"github.com/viniapp/viniapp-node/internal/log"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load("")
	if err != nil {
		log.Error(ctx, "cannot load config", "err", err)
		return
	}

	log.Config(cfg.Log.Level, cfg.Log.Mode, os.Stdout)
	if cfg.Database.URL == "" {
		log.Error(ctx, "VINI_DATABASE_URL must be set")
		return
	}

	version, err := schema.Migrate(ctx, cfg.Database.URL)
	if err != nil {
		log.Error(ctx, "error migrating database", "err", err)
		return
	}

	log.Info(ctx, "migration done!", "version", version)
}
