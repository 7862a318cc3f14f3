package database

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Connect opens the PostgreSQL pool behind the postgres directory source,
// keeping no idle connections so serverless hosts (Neon) can suspend.
func Connect(ctx context.Context, dsn string, log *zap.Logger) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}
	if log == nil {
		log = zap.NewNop()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		log.Warn("Database ping failed, proceeding carefully", zap.Error(err))
	}

	db.SetMaxIdleConns(0)
	db.SetMaxOpenConns(10)

	log.Info("Connected to PostgreSQL")
	return db, nil
}
