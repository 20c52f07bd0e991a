package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/lawson/optlib/option"
)

var (
	// ErrInvalidTarget is returned when the target market price is not positive.
	ErrInvalidTarget = errors.New("target price must be positive")
	// ErrInvalidExpiry is returned when the option expires on or before the
	// model's reference date.
	ErrInvalidExpiry = errors.New("option must expire after the reference date")
)

// LowVegaError reports a Newton step whose denominator is too small to trust,
// typically deep ITM/OTM options or near-zero time to expiry.
type LowVegaError struct {
	Sigma     float64
	Vega      float64
	Iteration int
}

func (e *LowVegaError) Error() string {
	return fmt.Sprintf("implied vol: |vega|=%g too small at sigma=%g (iteration %d)", e.Vega, e.Sigma, e.Iteration)
}

// NonConvergenceError reports an exhausted iteration cap.
type NonConvergenceError struct {
	Iterations int
	LastSigma  float64
	LastDiff   float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("implied vol: no convergence after %d iterations (sigma=%g, price diff=%g)",
		e.Iterations, e.LastSigma, e.LastDiff)
}

// SolverConfig controls the Newton-Raphson implied vol solve.
type SolverConfig struct {
	// InitialVol is the starting sigma estimate.
	InitialVol float64
	// Tolerance is the absolute price tolerance for convergence.
	Tolerance float64
	// MaxIterations caps the number of price/vega evaluations.
	MaxIterations int
}

// DefaultSolverConfig returns the standard solver settings.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{InitialVol: 0.20, Tolerance: 1e-6, MaxIterations: 100}
}

// sigmaFloor is the clamp applied when a Newton step would drive sigma
// non-positive. A transient negative step should not abort the search.
const sigmaFloor = 1e-6

// minVega is the smallest |vega| the Newton update will divide by.
const minVega = 1e-8

// ImpliedVol solves for the flat volatility that reprices opt at targetPrice.
//
// Each iteration rebuilds a fresh flat vol term structure and a fresh model
// via WithFlatVol, so no cached state leaks between iterations. The solver
// fails fast on a non-positive target or an already-expired option before the
// first iteration.
func ImpliedVol(m VolRebinder, opt option.Vanilla, targetPrice float64, cfg SolverConfig) (float64, error) {
	if m == nil {
		return 0, fmt.Errorf("ImpliedVol: model: %w", ErrMissingInput)
	}
	if targetPrice <= 0 {
		return 0, fmt.Errorf("ImpliedVol: target=%v: %w", targetPrice, ErrInvalidTarget)
	}
	if !opt.Maturity.After(m.ReferenceDate()) {
		return 0, fmt.Errorf("ImpliedVol: maturity %s, reference %s: %w",
			opt.Maturity.Format("2006-01-02"), m.ReferenceDate().Format("2006-01-02"), ErrInvalidExpiry)
	}

	if cfg.InitialVol <= 0 {
		cfg.InitialVol = DefaultSolverConfig().InitialVol
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultSolverConfig().Tolerance
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultSolverConfig().MaxIterations
	}

	sigma := cfg.InitialVol
	lastDiff := math.NaN()

	for i := 0; i < cfg.MaxIterations; i++ {
		trial, err := m.WithFlatVol(sigma)
		if err != nil {
			return 0, fmt.Errorf("ImpliedVol: %w", err)
		}

		price, err := trial.Price(opt)
		if err != nil {
			return 0, fmt.Errorf("ImpliedVol: %w", err)
		}
		diff := price - targetPrice
		lastDiff = diff
		if math.Abs(diff) < cfg.Tolerance {
			return sigma, nil
		}

		vega, err := trial.Vega(opt)
		if err != nil {
			return 0, fmt.Errorf("ImpliedVol: %w", err)
		}
		if math.Abs(vega) < minVega {
			return 0, &LowVegaError{Sigma: sigma, Vega: vega, Iteration: i}
		}

		sigma -= diff / vega
		if sigma <= 0 {
			sigma = sigmaFloor
		}
	}

	return 0, &NonConvergenceError{
		Iterations: cfg.MaxIterations,
		LastSigma:  sigma,
		LastDiff:   lastDiff,
	}
}
