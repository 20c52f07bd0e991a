package model

import (
	"fmt"
	"math"

	"github.com/lawson/optlib/option"
)

// normCDF is the standard normal CDF via the error function identity.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}

// normPDF is the standard normal density.
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2.0*math.Pi)
}

// bsInputs are the fully resolved scalar inputs of a Black-Scholes evaluation.
// The carry rate q is the dividend yield for equity and the foreign rate for FX.
type bsInputs struct {
	s      float64
	k      float64
	t      float64
	r      float64
	q      float64
	sigma  float64
	isCall bool
}

func (in bsInputs) check() error {
	for _, f := range []struct {
		name string
		val  float64
	}{
		{"spot", in.s}, {"strike", in.k}, {"time to expiry", in.t},
		{"rate", in.r}, {"carry rate", in.q}, {"sigma", in.sigma},
	} {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return fmt.Errorf("model: %s is not finite: %w", f.name, ErrDegenerateInput)
		}
	}
	if in.t <= 0 {
		return fmt.Errorf("model: time to expiry %v must be positive: %w", in.t, ErrDegenerateInput)
	}
	if in.sigma <= 0 {
		return fmt.Errorf("model: sigma %v must be positive: %w", in.sigma, ErrDegenerateInput)
	}
	if in.sigma*math.Sqrt(in.t) <= 0 {
		return fmt.Errorf("model: sigma*sqrt(T) must be positive: %w", ErrDegenerateInput)
	}
	return nil
}

func (in bsInputs) d1d2() (float64, float64) {
	st := in.sigma * math.Sqrt(in.t)
	d1 := (math.Log(in.s/in.k) + (in.r-in.q+0.5*in.sigma*in.sigma)*in.t) / st
	return d1, d1 - st
}

func bsPrice(in bsInputs) float64 {
	d1, d2 := in.d1d2()
	dfR := math.Exp(-in.r * in.t)
	dfQ := math.Exp(-in.q * in.t)
	if in.isCall {
		return in.s*dfQ*normCDF(d1) - in.k*dfR*normCDF(d2)
	}
	return in.k*dfR*normCDF(-d2) - in.s*dfQ*normCDF(-d1)
}

// bsDelta is the spot delta, not premium-adjusted.
func bsDelta(in bsInputs) float64 {
	d1, _ := in.d1d2()
	dfQ := math.Exp(-in.q * in.t)
	if in.isCall {
		return dfQ * normCDF(d1)
	}
	return dfQ * (normCDF(d1) - 1.0)
}

func bsGamma(in bsInputs) float64 {
	d1, _ := in.d1d2()
	dfQ := math.Exp(-in.q * in.t)
	return dfQ * normPDF(d1) / (in.s * in.sigma * math.Sqrt(in.t))
}

// bsVega is per unit of volatility: dPrice/dSigma with sigma as a decimal.
func bsVega(in bsInputs) float64 {
	d1, _ := in.d1d2()
	dfQ := math.Exp(-in.q * in.t)
	return in.s * dfQ * normPDF(d1) * math.Sqrt(in.t)
}

func bsTheta(in bsInputs) float64 {
	d1, d2 := in.d1d2()
	dfR := math.Exp(-in.r * in.t)
	dfQ := math.Exp(-in.q * in.t)
	decay := -(in.s * dfQ * normPDF(d1) * in.sigma) / (2.0 * math.Sqrt(in.t))
	if in.isCall {
		return decay + in.q*in.s*dfQ*normCDF(d1) - in.r*in.k*dfR*normCDF(d2)
	}
	return decay - in.q*in.s*dfQ*normCDF(-d1) + in.r*in.k*dfR*normCDF(-d2)
}

// bsRho is the sensitivity to the domestic/risk-free rate.
func bsRho(in bsInputs) float64 {
	_, d2 := in.d1d2()
	dfR := math.Exp(-in.r * in.t)
	if in.isCall {
		return in.k * in.t * dfR * normCDF(d2)
	}
	return -in.k * in.t * dfR * normCDF(-d2)
}

func bsGreeks(in bsInputs) Greeks {
	return Greeks{
		Delta: bsDelta(in),
		Gamma: bsGamma(in),
		Vega:  bsVega(in),
		Theta: bsTheta(in),
		Rho:   bsRho(in),
	}
}

func checkStyle(opt option.Vanilla) error {
	if opt.Style != option.European {
		return fmt.Errorf("model: style=%q: %w", opt.Style, ErrUnsupportedStyle)
	}
	return nil
}
