package service

import (
	"context"
	"fmt"

	"blogly/app/repositories"
	"blogly/app/repositories/postgres"

	"github.com/rs/zerolog"
)

// OpenStore opens the store selected by cfg.Driver. A Postgres store has its
// schema applied before it is returned.
func OpenStore(ctx context.Context, cfg Config, log zerolog.Logger) (repositories.Store, error) {
	switch cfg.Driver {
	case "badger":
		return repositories.OpenBadgerStore(cfg.BadgerPath, badgerLogger{log: log.With().Str("component", "badger").Logger()})
	case "postgres":
		store, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}
