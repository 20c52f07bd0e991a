package curve

import (
	"fmt"
	"time"

	"github.com/lawson/optlib/calendar"
)

// Point is one row of a curve table.
type Point struct {
	Tenor    string
	Date     time.Time
	Discount float64
	Zero     float64
}

// Table tabulates discount factors and zero rates at dates obtained by
// advancing the curve's reference date by each tenor.
func Table(ts TermStructure, cal calendar.CalendarID, tenors []string) ([]Point, error) {
	if ts == nil {
		return nil, fmt.Errorf("Table: %w", ErrNilCurve)
	}

	out := make([]Point, 0, len(tenors))
	for _, tenor := range tenors {
		d, err := calendar.AdvanceTenor(cal, ts.ReferenceDate(), tenor, calendar.ModifiedFollowing)
		if err != nil {
			return nil, fmt.Errorf("Table: %w", err)
		}
		df, err := ts.Discount(d)
		if err != nil {
			return nil, fmt.Errorf("Table: %s: %w", tenor, err)
		}
		zero, err := ts.ZeroRate(d)
		if err != nil {
			return nil, fmt.Errorf("Table: %s: %w", tenor, err)
		}
		out = append(out, Point{Tenor: tenor, Date: d, Discount: df, Zero: zero})
	}
	return out, nil
}
