package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/api"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/memory"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/persistence"
	"github.com/iota-uz/legacy-migrate/pkg/configuration"
)

func loadConfig() (*configuration.Configuration, error) {
	cfg, err := configuration.Load(".env", ".env.local")
	if err != nil {
		return nil, withCode(exitValidation, err)
	}
	return cfg, nil
}

func connectLegacy(ctx context.Context, cfg *configuration.Configuration) (*sqlx.DB, error) {
	db, err := legacy.Open(ctx, cfg.LegacyDatabase.MySQLConfig())
	if err != nil {
		return nil, withCode(exitConnect, err)
	}
	return db, nil
}

func connectTarget(ctx context.Context, cfg *configuration.Configuration) (*sqlx.DB, error) {
	db, err := persistence.Open(ctx, cfg.Database.ConnectionString())
	if err != nil {
		return nil, withCode(exitConnect, err)
	}
	return db, nil
}

// openStrategy builds the configured persistence strategy and checks it is
// reachable. release closes its connection.
func openStrategy(ctx context.Context, cfg *configuration.Configuration) (s domain.Strategy, release func(), err error) {
	release = func() {}
	switch cfg.Import.Strategy {
	case configuration.StrategyMemory:
		return memory.New(), release, nil
	case configuration.StrategyAPI:
		c, err := api.NewClient(api.ClientOptions{
			BaseURL:         cfg.API.BaseURL,
			Token:           cfg.API.Token,
			Timeout:         cfg.API.Timeout,
			RateLimit:       cfg.API.RateLimit,
			RequestIDHeader: cfg.API.RequestIDHeader,
		})
		if err != nil {
			return nil, release, withCode(exitValidation, err)
		}
		s = api.NewStrategy(c)
	default:
		db, err := connectTarget(ctx, cfg)
		if err != nil {
			return nil, release, err
		}
		s = persistence.NewStrategy(db)
		release = func() { _ = db.Close() }
	}
	if p, ok := s.(domain.Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			release()
			return nil, func() {}, withCode(exitConnect, fmt.Errorf("target %s unreachable: %w", cfg.Import.Strategy, err))
		}
	}
	return s, release, nil
}
