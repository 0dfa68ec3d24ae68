package infra

import (
	"context"
	"database/sql"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/portyard/yardboard/internal/app/appconfig"
)

// Postgres opens the shared cloud database. It returns a nil *bun.DB when cloud sync is disabled.
func Postgres(conf *appconfig.Config) (*bun.DB, error) {
	if !conf.CloudSyncEnabled {
		log.Warn().Msg("infra: postgres: cloud sync is disabled, skipping database connection")
		return nil, nil
	}

	// Open a PostgreSQL database.
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(conf.PostgresDSN)))
	pgdb.SetMaxOpenConns(conf.PostgresMaxOpenConns)

	// Create a Bun db on top of it.
	db := bun.NewDB(pgdb, pgdialect.New())
	if conf.DevMode {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(conf.BunDebugVerbose),
		))
	}

	err := retry.Do(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return db.PingContext(ctx)
	}, retry.Attempts(3), retry.Delay(time.Second), retry.LastErrorOnly(true))
	if err != nil {
		log.Error().Err(err).Msg("infra: postgres: failed to ping database")
		return nil, err
	}

	return db, nil
}
