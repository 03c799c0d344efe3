package common

import (
	"time"

	"go.uber.org/zap"
)

// Stats holds counters for a single import operation.
type Stats struct {
	RowsRead       int64 // Data rows seen (header excluded)
	RowsImported   int64 // Rows that became records
	RowsDropped    int64 // Rows rejected (too few columns)
	BlankRows      int64 // Empty rows skipped
	DefaultedCells int64 // Cells replaced by 0.0 or "00:00"

	startTime time.Time
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{startTime: time.Now()}
}

// Merge adds the counters of other into s.
func (s *Stats) Merge(other *Stats) {
	if other == nil {
		return
	}
	s.RowsRead += other.RowsRead
	s.RowsImported += other.RowsImported
	s.RowsDropped += other.RowsDropped
	s.BlankRows += other.BlankRows
	s.DefaultedCells += other.DefaultedCells
}

// Elapsed returns time since the stats were created.
func (s *Stats) Elapsed() time.Duration {
	return time.Since(s.startTime)
}

// Reset resets all counters (useful for testing or restarting)
func (s *Stats) Reset() {
	*s = Stats{startTime: time.Now()}
}

// Log writes a one-line summary for source.
func (s *Stats) Log(logger *zap.Logger, source string) {
	if logger == nil {
		return
	}
	logger.Info("import summary",
		zap.String("source", source),
		zap.Int64("rows_read", s.RowsRead),
		zap.Int64("imported", s.RowsImported),
		zap.Int64("dropped", s.RowsDropped),
		zap.Int64("blank", s.BlankRows),
		zap.Int64("defaulted_cells", s.DefaultedCells),
		zap.Duration("elapsed", s.Elapsed().Round(time.Millisecond)),
	)
}
