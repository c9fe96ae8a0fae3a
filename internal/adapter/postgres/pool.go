package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/heartmarshall/culops-pantry/internal/config"
)

// Pool wraps a pgxpool.Pool. Begin checks a connection out with a bounded
// wait and returns it to the pool when the transaction ends.
type Pool struct {
	pool        *pgxpool.Pool
	poolTimeout time.Duration
}

// NewPool creates a PostgreSQL connection pool configured from DatabaseConfig.
// PoolSize connections are kept open, MaxOverflow more may be opened under
// load. When echo is true every statement is logged at debug level.
// The database is pinged for fail-fast validation.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger, echo bool) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns()
	poolCfg.MinConns = cfg.PoolSize
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	if cfg.StatementTimeout > 0 {
		poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)
	}
	if echo {
		poolCfg.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   slogTraceLogger(logger),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{pool: pool, poolTimeout: cfg.PoolTimeout()}, nil
}

func slogTraceLogger(logger *slog.Logger) tracelog.LoggerFunc {
	log := logger.With("adapter", "postgres")
	return func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		attrs := make([]slog.Attr, 0, len(data))
		for k, v := range data {
			attrs = append(attrs, slog.Any(k, v))
		}
		lvl := slog.LevelDebug
		if level <= tracelog.LogLevelError && level != tracelog.LogLevelNone {
			lvl = slog.LevelError
		}
		log.LogAttrs(ctx, lvl, msg, attrs...)
	}
}

// acquire checks a connection out, waiting at most the pool timeout.
func (p *Pool) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	acquireCtx := ctx
	if p.poolTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, p.poolTimeout)
		defer cancel()
	}

	conn, err := p.pool.Acquire(acquireCtx)
	if err != nil {
		return nil, fmt.Errorf("checkout connection: %w", err)
	}
	return conn, nil
}

// Begin checks a connection out and starts a transaction on it. The
// connection is released by Commit or Rollback.
func (p *Pool) Begin(ctx context.Context) (pgx.Tx, error) {
	conn, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		conn.Release()
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	return &connTx{Tx: tx, conn: conn}, nil
}

// Exec runs sql on a checked-out connection.
func (p *Pool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	conn, err := p.acquire(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	defer conn.Release()

	return conn.Exec(ctx, sql, args...)
}

// Query runs sql on a checked-out connection. The connection goes back to
// the pool once the rows are closed or fully read.
func (p *Pool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	conn, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		conn.Release()
		return nil, err
	}
	return &connRows{Rows: rows, conn: conn}, nil
}

// QueryRow runs sql on a checked-out connection, released by Scan.
func (p *Pool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	conn, err := p.acquire(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return &connRow{row: conn.QueryRow(ctx, sql, args...), conn: conn}
}

// Ping checks database connectivity.
func (p *Pool) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes all connections.
func (p *Pool) Close() {
	p.pool.Close()
}

// connTx releases its connection exactly once when the transaction ends.
type connTx struct {
	pgx.Tx
	conn *pgxpool.Conn
	once sync.Once
}

func (t *connTx) Commit(ctx context.Context) error {
	defer t.release()
	return t.Tx.Commit(ctx)
}

func (t *connTx) Rollback(ctx context.Context) error {
	defer t.release()
	return t.Tx.Rollback(ctx)
}

func (t *connTx) release() {
	t.once.Do(t.conn.Release)
}

// connRows releases its connection once the rows are done.
type connRows struct {
	pgx.Rows
	conn *pgxpool.Conn
	once sync.Once
}

func (r *connRows) Next() bool {
	if r.Rows.Next() {
		return true
	}
	r.release()
	return false
}

func (r *connRows) Close() {
	r.Rows.Close()
	r.release()
}

func (r *connRows) release() {
	r.once.Do(r.conn.Release)
}

type connRow struct {
	row  pgx.Row
	conn *pgxpool.Conn
}

func (r *connRow) Scan(dest ...any) error {
	defer r.conn.Release()
	return r.row.Scan(dest...)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
