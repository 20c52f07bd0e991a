// Package vol provides Black volatility term structures: a flat volatility and
// a (tenor x strike) grid surface with bilinear interpolation.
//
// Term structures are immutable values. Replacing a flat vol means
// constructing a new one; nothing is relinked in place.
package vol

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNonPositiveVol is returned when a volatility is not strictly positive.
	ErrNonPositiveVol = errors.New("volatility must be positive")
	// ErrShapeMismatch is returned when surface grid dimensions are inconsistent.
	ErrShapeMismatch = errors.New("vol surface grid shape mismatch")
	// ErrOutOfRange is returned for queries outside the surface grid when
	// extrapolation was not enabled at construction.
	ErrOutOfRange = errors.New("query outside vol surface and extrapolation disabled")
)

// TermStructure is the query surface shared by all volatility structures.
type TermStructure interface {
	ReferenceDate() time.Time
	// Vol returns the Black volatility (decimal) for an expiry date and strike.
	Vol(expiry time.Time, strike float64) (float64, error)
}

// Flat is a single volatility valid for every expiry and strike.
type Flat struct {
	reference time.Time
	sigma     float64
}

// NewFlat builds a flat volatility anchored at reference. Sigma is a decimal
// (0.20 == 20%) and must be strictly positive.
func NewFlat(sigma float64, reference time.Time) (*Flat, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("NewFlat: sigma=%v: %w", sigma, ErrNonPositiveVol)
	}
	if reference.IsZero() {
		return nil, fmt.Errorf("NewFlat: reference date is required")
	}
	return &Flat{reference: reference, sigma: sigma}, nil
}

// Sigma returns the flat volatility level.
func (f *Flat) Sigma() float64 { return f.sigma }

// ReferenceDate returns the anchor date.
func (f *Flat) ReferenceDate() time.Time { return f.reference }

func (f *Flat) Vol(expiry time.Time, strike float64) (float64, error) {
	return f.sigma, nil
}
