package tests

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/viniapp/viniapp-node/internal/config"
	"github.com/viniapp/viniapp-node/internal/db"
	"github.com/viniapp/viniapp-node/internal/db/schema"
)

const (
	setupTimeout = 40 * time.Second
	dbPrefix     = "viniapp_node_test_"
)

// NewTestStorage creates a throwaway database on the server pointed by cfg.Database.URL,
// migrates it and returns a storage connected to it. teardown closes the storage and
// drops the database.
func NewTestStorage(cfg *config.Configuration) (storage *db.Storage, teardown func(), err error) {
	teardown = func() {}
	if cfg.Database.URL == "" {
		return nil, teardown, errors.New("testdb: no connection string")
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	name := dbPrefix + time.Now().UTC().Format("20060102150405999999999")
	tempURL, err := databaseURL(cfg.Database.URL, name)
	if err != nil {
		return nil, teardown, err
	}

	admin, err := db.NewStorage(ctx, cfg.Database.URL)
	if err != nil {
		return nil, teardown, fmt.Errorf("testdb: connecting to server: %w", err)
	}
	if _, err := admin.Pgx.Exec(ctx, fmt.Sprintf(`CREATE DATABASE "%s"`, name)); err != nil {
		_ = admin.Close(ctx)
		return nil, teardown, fmt.Errorf("testdb: creating database %s: %w", name, err)
	}

	dropDatabase := func() {
		dropCtx, dropCancel := context.WithTimeout(context.Background(), setupTimeout)
		defer dropCancel()
		_, _ = admin.Pgx.Exec(dropCtx, fmt.Sprintf(`DROP DATABASE IF EXISTS "%s"`, name))
		_ = admin.Close(dropCtx)
	}

	if _, err := schema.Migrate(ctx, tempURL); err != nil {
		dropDatabase()
		return nil, teardown, fmt.Errorf("testdb: migrating %s: %w", name, err)
	}

	storage, err = db.NewStorage(ctx, tempURL)
	if err != nil {
		dropDatabase()
		return nil, teardown, fmt.Errorf("testdb: connecting to %s: %w", name, err)
	}

	teardown = func() {
		_ = storage.Close(context.Background())
		dropDatabase()
	}
	return storage, teardown, nil
}

// databaseURL replaces the database name of serverURL
func databaseURL(serverURL string, name string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("testdb: connection string is invalid: %w", err)
	}
	u.Path = "/" + name
	q := u.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "disable")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
