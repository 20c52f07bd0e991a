package curve

import (
	"fmt"
	"math"
	"time"

	"github.com/lawson/optlib/utils"
)

// Flat is a term structure with one continuously compounded rate for all dates.
type Flat struct {
	reference time.Time
	rate      float64
	dayCount  string
}

// NewFlat builds a flat curve anchored at reference. The rate is a decimal
// (0.03 == 3%) and may be negative.
func NewFlat(reference time.Time, rate float64, dayCount string) (*Flat, error) {
	if reference.IsZero() {
		return nil, fmt.Errorf("NewFlat: reference date is required")
	}
	if err := utils.ValidateDayCount(dayCount); err != nil {
		return nil, fmt.Errorf("NewFlat: %w", err)
	}
	return &Flat{reference: reference, rate: rate, dayCount: dayCount}, nil
}

// Rate returns the curve's flat rate.
func (c *Flat) Rate() float64 { return c.rate }

// ReferenceDate returns the anchor date.
func (c *Flat) ReferenceDate() time.Time { return c.reference }

// DayCount returns the curve's day count convention.
func (c *Flat) DayCount() string { return c.dayCount }

func (c *Flat) Discount(d time.Time) (float64, error) {
	if d.Before(c.reference) {
		return 0, fmt.Errorf("Flat.Discount: %s: %w", d.Format("2006-01-02"), ErrBeforeReference)
	}
	t, err := utils.YearFraction(c.reference, d, c.dayCount)
	if err != nil {
		return 0, err
	}
	return math.Exp(-c.rate * t), nil
}

func (c *Flat) ZeroRate(d time.Time) (float64, error) {
	if d.Before(c.reference) {
		return 0, fmt.Errorf("Flat.ZeroRate: %s: %w", d.Format("2006-01-02"), ErrBeforeReference)
	}
	return c.rate, nil
}

func (c *Flat) ForwardRate(d1, d2 time.Time) (float64, error) {
	if d1.Before(c.reference) || d2.Before(d1) {
		return 0, fmt.Errorf("Flat.ForwardRate: [%s, %s]: %w",
			d1.Format("2006-01-02"), d2.Format("2006-01-02"), ErrBeforeReference)
	}
	return c.rate, nil
}
