// Package database manages the PostgreSQL pool behind the directory
// and gates readiness on a startup ping.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/bizz/pkg/lifecycle"
)

const retryDelay = time.Second

// System owns the connection pool.
type System interface {
	Connection() *sql.DB
	// Ready reports whether a startup ping has succeeded and the pool
	// has not been closed.
	Ready() bool
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn        *sql.DB
	logger      *slog.Logger
	connTimeout time.Duration
	attempts    int
	ready       atomic.Bool
}

// New parses the connection settings and sizes the pool. No connection
// is made until the startup hook runs.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	pc, err := pgx.ParseConfig(cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	if cfg.ApplicationName != "" {
		pc.RuntimeParams["application_name"] = cfg.ApplicationName
	}
	if st := cfg.StatementTimeoutDuration(); st > 0 {
		pc.RuntimeParams["statement_timeout"] = strconv.FormatInt(st.Milliseconds(), 10)
	}
	if ct := cfg.ConnTimeoutDuration(); ct > 0 {
		pc.ConnectTimeout = ct
	}

	db := stdlib.OpenDB(*pc)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:        db,
		logger:      logger.With("system", "database"),
		connTimeout: cfg.ConnTimeoutDuration(),
		attempts:    max(cfg.ConnectAttempts, 1),
	}, nil
}

func (d *database) Connection() *sql.DB { return d.conn }

func (d *database) Ready() bool { return d.ready.Load() }

func (d *database) Start(lc *lifecycle.Coordinator) error {
	lc.Require("database", d)

	lc.OnStartup(func() {
		if err := d.ping(lc.Context()); err != nil {
			d.logger.Error("database unreachable", "attempts", d.attempts, "error", err)
			return
		}
		d.ready.Store(true)
		d.logger.Info("database connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.ready.Store(false)
		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database connection closed")
	})

	return nil
}

// ping retries until an attempt succeeds, attempts run out, or ctx ends.
func (d *database) ping(ctx context.Context) error {
	var err error
	for i := 1; i <= d.attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, d.connTimeout)
		err = d.conn.PingContext(pctx)
		cancel()
		if err == nil {
			return nil
		}
		if i == d.attempts {
			break
		}
		d.logger.Warn("database ping failed", "attempt", i, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay * time.Duration(i)):
		}
	}
	return err
}
