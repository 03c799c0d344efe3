package plot

import (
	"errors"
	"fmt"

	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

var (
	ErrNoData      = errors.New("please add some data points before generating the graph")
	ErrInvalidTime = errors.New("please enter valid time format (HH:mm) for all data points")
	ErrNoXColumn   = errors.New("please select an X-axis column")
	ErrNoYColumn   = errors.New("please select at least one Y-axis column")
)

// Validate checks that a plot can be generated. The store is not modified.
func Validate(store *solar.Store, sel Selection) error {
	if store == nil || store.Len() == 0 {
		return ErrNoData
	}
	if bad := store.InvalidTimes(); len(bad) > 0 {
		r, _ := store.Get(bad[0])
		return fmt.Errorf("row %d time %q: %w", bad[0]+1, r.Time, ErrInvalidTime)
	}
	if sel.X == solar.ColumnUnknown {
		return ErrNoXColumn
	}
	if len(sel.Y) == 0 {
		return ErrNoYColumn
	}
	return nil
}
