package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fjod/go_pos/internal/cart"
	"github.com/fjod/go_pos/internal/catalog"
	"github.com/fjod/go_pos/internal/checkout"
	"github.com/fjod/go_pos/internal/config"
	"github.com/fjod/go_pos/internal/ledger"
	"github.com/fjod/go_pos/internal/receipt"
	"github.com/fjod/go_pos/internal/store"
	"github.com/fjod/go_pos/internal/syncer"
	"github.com/redis/go-redis/v9"
)

// Terminal wires the configured store backend and every component of the
// offline flow for one command invocation.
type Terminal struct {
	Config   *config.Config
	Store    store.Store
	Ledger   *ledger.StockLedger
	Cart     *cart.Service
	Queue    *checkout.Queue
	Checkout *checkout.Service
	Catalog  *catalog.Catalog
	Receipt  *receipt.Formatter
}

func openTerminal(ctx context.Context, opts *RootOptions) (*Terminal, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	l := ledger.New(ctx, st)
	c := cart.New(ctx, st, l)
	q := checkout.NewQueue(ctx, st)

	return &Terminal{
		Config:   cfg,
		Store:    st,
		Ledger:   l,
		Cart:     c,
		Queue:    q,
		Checkout: checkout.NewService(ctx, st, c, l, q),
		Catalog:  catalog.New(catalog.NewHTTPSource(cfg.ServerURL)),
		Receipt:  receipt.NewFormatter(cfg.StoreName, cfg.ReceiptWidth),
	}, nil
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		st, err := store.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := st.RunMigrations(cfg.MigrationsDir); err != nil {
			st.Close()
			return nil, err
		}
		return st, nil
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return store.NewRedisStore(client, cfg.RedisPrefix), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func (t *Terminal) Close() {
	if err := t.Store.Close(); err != nil {
		log.Printf("error closing store: %v", err)
	}
}

// NewPoller builds the order syncer for this terminal's configuration.
func (t *Terminal) NewPoller() *syncer.Poller {
	submitter := syncer.NewHTTPSubmitter(t.Config.ServerURL + "/api/pos/orders")
	return syncer.NewPoller(t.Queue, submitter, time.Duration(t.Config.SyncInterval), t.Config.SyncMaxAttempts)
}
