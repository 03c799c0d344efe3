package chstore

import (
	"context"
	"fmt"

	"github.com/ClickHouse/ch-go"
	"go.uber.org/zap"

	"github.com/KI7MT/ki7mt-pv-lab/internal/common"
	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

// Writer inserts records over the native protocol.
type Writer struct {
	conn   *ch.Client
	opts   Options
	logger *zap.Logger
	batch  *MeasurementBatch
}

// Dial connects a Writer. The database need not exist yet.
func Dial(ctx context.Context, opts Options, logger *zap.Logger) (*Writer, error) {
	logger = common.Named(logger, "chstore")
	logger.Info("connecting to ClickHouse", zap.String("addr", opts.Addr), zap.String("table", opts.TableFQN()))

	conn, err := ch.Dial(ctx, ch.Options{
		Address:     opts.Addr,
		User:        opts.Username,
		Password:    opts.Password,
		Compression: ch.CompressionLZ4,
	})
	if err != nil {
		return nil, fmt.Errorf("ClickHouse connection failed: %w", err)
	}

	return &Writer{
		conn:   conn,
		opts:   opts,
		logger: logger,
		batch:  NewMeasurementBatch(),
	}, nil
}

// EnsureTable creates the database and measurement table if missing.
func (w *Writer) EnsureTable(ctx context.Context) error {
	if err := w.conn.Do(ctx, ch.Query{Body: CreateDatabaseSQL(w.opts.Database)}); err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	if err := w.conn.Do(ctx, ch.Query{Body: CreateTableSQL(w.opts.TableFQN())}); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// Truncate removes all rows from the measurement table.
func (w *Writer) Truncate(ctx context.Context) error {
	w.logger.Info("truncating table", zap.String("table", w.opts.TableFQN()))
	return w.conn.Do(ctx, ch.Query{Body: fmt.Sprintf("TRUNCATE TABLE %s", w.opts.TableFQN())})
}

// Insert writes records under session, numbering rows from 0.
// It returns the number of rows sent.
func (w *Writer) Insert(ctx context.Context, session string, records []solar.Record) (int, error) {
	sent := 0
	w.batch.Reset()
	for i := range records {
		w.batch.AddRecord(session, uint32(i), &records[i])
		if w.batch.Len() >= BatchSize {
			if err := w.flush(ctx); err != nil {
				return sent, err
			}
			sent += BatchSize
		}
	}

	n := w.batch.Len()
	if err := w.flush(ctx); err != nil {
		return sent, err
	}
	sent += n

	w.logger.Debug("inserted session", zap.String("session", session), zap.Int("rows", sent))
	return sent, nil
}

func (w *Writer) flush(ctx context.Context) error {
	if w.batch.Len() == 0 {
		return nil
	}
	err := w.conn.Do(ctx, ch.Query{
		Body:  InsertSQL(w.opts.TableFQN()),
		Input: w.batch.Input(),
	})
	w.batch.Reset()
	if err != nil {
		return fmt.Errorf("insert error: %w", err)
	}
	return nil
}

// Close closes the connection.
func (w *Writer) Close() error {
	return w.conn.Close()
}
