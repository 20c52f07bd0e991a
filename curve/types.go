package curve

import (
	"errors"
	"time"
)

var (
	// ErrNilCurve is returned when a required curve argument is nil.
	ErrNilCurve = errors.New("nil curve")
	// ErrOutOfRange is returned for queries outside a bootstrapped curve's
	// pillar range when extrapolation was not enabled at construction.
	ErrOutOfRange = errors.New("date outside curve range and extrapolation disabled")
	// ErrBeforeReference is returned for queries strictly before the curve's reference date.
	ErrBeforeReference = errors.New("date before curve reference date")
)

// TermStructure is the query surface shared by all rate curves.
//
// Curves are immutable values once constructed; updating a curve means
// constructing a new one. Rates are continuously compounded decimals.
type TermStructure interface {
	ReferenceDate() time.Time
	// Discount returns the discount factor to d. Discount(ReferenceDate()) == 1.
	Discount(d time.Time) (float64, error)
	// ZeroRate returns the continuously compounded zero rate to d.
	ZeroRate(d time.Time) (float64, error)
	// ForwardRate returns the continuously compounded forward rate over [d1, d2].
	ForwardRate(d1, d2 time.Time) (float64, error)
}
