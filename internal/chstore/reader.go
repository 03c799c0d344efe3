package chstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/KI7MT/ki7mt-pv-lab/internal/common"
	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

// SessionInfo summarizes one stored session.
type SessionInfo struct {
	Session    string    `ch:"session"`
	Rows       uint64    `ch:"rows"`
	LastInsert time.Time `ch:"last_insert"`
}

// Reader loads stored sessions.
type Reader struct {
	conn   driver.Conn
	opts   Options
	logger *zap.Logger
}

// Open connects a Reader and pings the server.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (*Reader, error) {
	logger = common.Named(logger, "chstore")

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{opts.Addr},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("ClickHouse connection failed: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ClickHouse ping failed: %w", err)
	}

	return &Reader{conn: conn, opts: opts, logger: logger}, nil
}

// Load returns the records of session in row order.
func (r *Reader) Load(ctx context.Context, session string) ([]solar.Record, error) {
	records := []solar.Record{}
	if err := r.conn.Select(ctx, &records, SelectSessionSQL(r.opts.TableFQN()), session); err != nil {
		return nil, fmt.Errorf("load session %q: %w", session, err)
	}
	r.logger.Debug("loaded session", zap.String("session", session), zap.Int("rows", len(records)))
	return records, nil
}

// Sessions lists stored sessions, newest first.
func (r *Reader) Sessions(ctx context.Context) ([]SessionInfo, error) {
	var sessions []SessionInfo
	if err := r.conn.Select(ctx, &sessions, ListSessionsSQL(r.opts.TableFQN())); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// Close closes the connection.
func (r *Reader) Close() error {
	return r.conn.Close()
}
