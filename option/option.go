// Package option defines the economics of a vanilla option, independent of
// any market data or pricing model.
package option

import (
	"errors"
	"fmt"
	"time"
)

// Type is the option right.
type Type string

const (
	Call Type = "call"
	Put  Type = "put"
)

// Style is the exercise style. Only European exercise is supported by the
// analytic models in this library.
type Style string

const (
	European Style = "European"
)

var (
	// ErrInvalidStrike is returned when a strike is not strictly positive.
	ErrInvalidStrike = errors.New("strike must be positive")
	// ErrInvalidType is returned for option rights other than call or put.
	ErrInvalidType = errors.New("option type must be call or put")
	// ErrInvalidMaturity is returned when the maturity date is missing.
	ErrInvalidMaturity = errors.New("maturity date is required")
)

// Vanilla holds the economics of a single vanilla option. It is an immutable
// value; market data binding lives in the instrument package.
type Vanilla struct {
	Strike   float64
	Maturity time.Time
	Type     Type
	Style    Style
}

// NewVanilla builds European option economics and validates them.
func NewVanilla(strike float64, maturity time.Time, typ Type) (Vanilla, error) {
	v := Vanilla{Strike: strike, Maturity: maturity, Type: typ, Style: European}
	if err := v.Validate(); err != nil {
		return Vanilla{}, err
	}
	return v, nil
}

// Validate checks the static economics. Time-to-expiry against a valuation
// date is checked by the model at pricing time.
func (v Vanilla) Validate() error {
	if v.Strike <= 0 {
		return fmt.Errorf("option: strike=%v: %w", v.Strike, ErrInvalidStrike)
	}
	if v.Maturity.IsZero() {
		return fmt.Errorf("option: %w", ErrInvalidMaturity)
	}
	if v.Type != Call && v.Type != Put {
		return fmt.Errorf("option: type=%q: %w", v.Type, ErrInvalidType)
	}
	return nil
}
