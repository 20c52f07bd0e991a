// Package model implements the analytic pricing models: Black-Scholes-Merton
// for equity options and Garman-Kohlhagen for FX options, plus the
// Newton-Raphson implied volatility solver layered on top of them.
//
// A model is a bound snapshot of (spot, curves, vol) that can price any
// compatible option economics. Models are immutable once constructed; when an
// input changes, a new model is built.
package model

import (
	"errors"
	"time"

	"github.com/lawson/optlib/option"
)

var (
	// ErrUnsupportedStyle is returned when a non-European option is priced
	// with an analytic European engine.
	ErrUnsupportedStyle = errors.New("only European exercise is supported")
	// ErrDegenerateInput is returned for non-positive time to expiry,
	// non-positive volatility, or sigma*sqrt(T) of zero.
	ErrDegenerateInput = errors.New("degenerate pricing input")
	// ErrMissingInput is returned when a model is constructed without a
	// required market input.
	ErrMissingInput = errors.New("missing market input")
)

// Greeks are the partial derivatives of the option price with respect to the
// named market inputs. Vega is per unit of volatility (dPrice/dSigma with
// sigma expressed as a decimal).
type Greeks struct {
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64
}

// Map returns the greeks keyed by their conventional names.
func (g Greeks) Map() map[string]float64 {
	return map[string]float64{
		"delta": g.Delta,
		"gamma": g.Gamma,
		"vega":  g.Vega,
		"theta": g.Theta,
		"rho":   g.Rho,
	}
}

// Model is the fixed contract every pricing model implements. Adding a model
// variant does not touch instrument or solver code.
type Model interface {
	ReferenceDate() time.Time
	Price(opt option.Vanilla) (float64, error)
	Delta(opt option.Vanilla) (float64, error)
	Gamma(opt option.Vanilla) (float64, error)
	Vega(opt option.Vanilla) (float64, error)
	Theta(opt option.Vanilla) (float64, error)
	Rho(opt option.Vanilla) (float64, error)
	Greeks(opt option.Vanilla) (Greeks, error)
}

// VolRebinder is a model that can produce a copy of itself bound to a fresh
// flat volatility at the same reference date. The implied vol solver rebuilds
// the model through this interface on every iteration so no state carries
// over between iterations.
type VolRebinder interface {
	Model
	WithFlatVol(sigma float64) (Model, error)
}
