package solar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrIndexOutOfRange is returned for row operations on a missing index.
var ErrIndexOutOfRange = errors.New("row index out of range")

// ErrNotEditable is returned when a cell edit targets a grouped column.
var ErrNotEditable = errors.New("column is not editable")

// Store is the ordered collection of records for one session.
// Insertion order is the display and plot order. Store is not safe for
// concurrent use; it has a single writer.
type Store struct {
	records []Record
}

// NewStore creates a store holding a copy of records.
func NewStore(records ...Record) *Store {
	s := &Store{}
	s.ReplaceAll(records)
	return s
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Get returns the record at i.
func (s *Store) Get(i int) (Record, error) {
	if i < 0 || i >= len(s.records) {
		return Record{}, fmt.Errorf("get row %d: %w", i, ErrIndexOutOfRange)
	}
	return s.records[i], nil
}

// Records returns a copy of all records in store order.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Add appends r and returns its index.
func (s *Store) Add(r Record) int {
	s.records = append(s.records, r)
	return len(s.records) - 1
}

// AddDefault appends a blank "00:00" row.
func (s *Store) AddDefault() int {
	return s.Add(NewRecord())
}

// Remove deletes the record at i, keeping the order of the rest.
func (s *Store) Remove(i int) error {
	if i < 0 || i >= len(s.records) {
		return fmt.Errorf("remove row %d: %w", i, ErrIndexOutOfRange)
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return nil
}

// Clear removes every record.
func (s *Store) Clear() {
	s.records = nil
}

// ReplaceAll swaps the contents for a copy of records (import semantics).
func (s *Store) ReplaceAll(records []Record) {
	s.records = make([]Record, len(records))
	copy(s.records, records)
}

// SetTime edits the time cell. Invalid times are stored as entered.
func (s *Store) SetTime(i int, value string) error {
	if i < 0 || i >= len(s.records) {
		return fmt.Errorf("set time row %d: %w", i, ErrIndexOutOfRange)
	}
	s.records[i].Time = value
	return nil
}

// SetValue edits a numeric cell.
func (s *Store) SetValue(i int, col Column, v float64) error {
	if i < 0 || i >= len(s.records) {
		return fmt.Errorf("set %s row %d: %w", col, i, ErrIndexOutOfRange)
	}
	d, ok := lookup(col)
	if !ok || d.set == nil {
		return fmt.Errorf("set %s: %w", col, ErrNotEditable)
	}
	d.set(&s.records[i], v)
	return nil
}

// SetCell applies editor text to a cell. Numeric text that is empty or
// does not parse becomes 0.
func (s *Store) SetCell(i int, col Column, text string) error {
	if col == Time {
		return s.SetTime(i, strings.TrimSpace(text))
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		v = 0
	}
	return s.SetValue(i, col, v)
}

// InvalidTimes returns the indexes of records whose time fails ValidTime.
func (s *Store) InvalidTimes() []int {
	var bad []int
	for i := range s.records {
		if !ValidTime(s.records[i].Time) {
			bad = append(bad, i)
		}
	}
	return bad
}
