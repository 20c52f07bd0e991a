package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/lawson/optlib/curve"
	"github.com/lawson/optlib/option"
	"github.com/lawson/optlib/utils"
	"github.com/lawson/optlib/vol"
)

// FXAnalytic is the closed-form Garman-Kohlhagen model for European FX
// options. The structure matches Black-Scholes-Merton with the foreign rate
// taking the place of the dividend yield. Spot delta is not premium-adjusted
// and vega is per unit of volatility.
type FXAnalytic struct {
	spot      float64
	domestic  curve.TermStructure
	foreign   curve.TermStructure
	vol       vol.TermStructure
	reference time.Time
	dayCount  string
}

// NewFXAnalytic binds a snapshot of market inputs. Every input is required;
// the error names each missing one.
func NewFXAnalytic(spot float64, domestic, foreign curve.TermStructure, v vol.TermStructure, reference time.Time, dayCount string) (*FXAnalytic, error) {
	var missing []string
	if spot <= 0 {
		missing = append(missing, "spot")
	}
	if domestic == nil {
		missing = append(missing, "domestic curve")
	}
	if foreign == nil {
		missing = append(missing, "foreign curve")
	}
	if v == nil {
		missing = append(missing, "vol")
	}
	if reference.IsZero() {
		missing = append(missing, "reference date")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("NewFXAnalytic: %s: %w", strings.Join(missing, ", "), ErrMissingInput)
	}
	if err := utils.ValidateDayCount(dayCount); err != nil {
		return nil, fmt.Errorf("NewFXAnalytic: %w", err)
	}
	return &FXAnalytic{
		spot:      spot,
		domestic:  domestic,
		foreign:   foreign,
		vol:       v,
		reference: reference,
		dayCount:  dayCount,
	}, nil
}

// ReferenceDate returns the valuation date the model is anchored to.
func (m *FXAnalytic) ReferenceDate() time.Time { return m.reference }

// Spot returns the bound spot level.
func (m *FXAnalytic) Spot() float64 { return m.spot }

// WithFlatVol returns a copy of the model bound to a fresh flat volatility at
// the model's reference date.
func (m *FXAnalytic) WithFlatVol(sigma float64) (Model, error) {
	fv, err := vol.NewFlat(sigma, m.reference)
	if err != nil {
		return nil, fmt.Errorf("FXAnalytic.WithFlatVol: %w", err)
	}
	clone := *m
	clone.vol = fv
	return &clone, nil
}

func (m *FXAnalytic) inputs(opt option.Vanilla) (bsInputs, error) {
	if err := checkStyle(opt); err != nil {
		return bsInputs{}, err
	}
	if err := opt.Validate(); err != nil {
		return bsInputs{}, err
	}

	t, err := utils.YearFraction(m.reference, opt.Maturity, m.dayCount)
	if err != nil {
		return bsInputs{}, err
	}
	if t <= 0 {
		return bsInputs{}, fmt.Errorf("FXAnalytic: maturity %s on or before reference %s: %w",
			opt.Maturity.Format("2006-01-02"), m.reference.Format("2006-01-02"), ErrDegenerateInput)
	}

	rd, err := m.domestic.ZeroRate(opt.Maturity)
	if err != nil {
		return bsInputs{}, fmt.Errorf("FXAnalytic: domestic curve: %w", err)
	}
	rf, err := m.foreign.ZeroRate(opt.Maturity)
	if err != nil {
		return bsInputs{}, fmt.Errorf("FXAnalytic: foreign curve: %w", err)
	}
	sigma, err := m.vol.Vol(opt.Maturity, opt.Strike)
	if err != nil {
		return bsInputs{}, fmt.Errorf("FXAnalytic: vol: %w", err)
	}

	in := bsInputs{
		s:      m.spot,
		k:      opt.Strike,
		t:      t,
		r:      rd,
		q:      rf,
		sigma:  sigma,
		isCall: opt.Type == option.Call,
	}
	if err := in.check(); err != nil {
		return bsInputs{}, err
	}
	return in, nil
}

func (m *FXAnalytic) Price(opt option.Vanilla) (float64, error) {
	in, err := m.inputs(opt)
	if err != nil {
		return 0, err
	}
	return bsPrice(in), nil
}

func (m *FXAnalytic) Delta(opt option.Vanilla) (float64, error) {
	in, err := m.inputs(opt)
	if err != nil {
		return 0, err
	}
	return bsDelta(in), nil
}

func (m *FXAnalytic) Gamma(opt option.Vanilla) (float64, error) {
	in, err := m.inputs(opt)
	if err != nil {
		return 0, err
	}
	return bsGamma(in), nil
}

func (m *FXAnalytic) Vega(opt option.Vanilla) (float64, error) {
	in, err := m.inputs(opt)
	if err != nil {
		return 0, err
	}
	return bsVega(in), nil
}

func (m *FXAnalytic) Theta(opt option.Vanilla) (float64, error) {
	in, err := m.inputs(opt)
	if err != nil {
		return 0, err
	}
	return bsTheta(in), nil
}

func (m *FXAnalytic) Rho(opt option.Vanilla) (float64, error) {
	in, err := m.inputs(opt)
	if err != nil {
		return 0, err
	}
	return bsRho(in), nil
}

func (m *FXAnalytic) Greeks(opt option.Vanilla) (Greeks, error) {
	in, err := m.inputs(opt)
	if err != nil {
		return Greeks{}, err
	}
	return bsGreeks(in), nil
}
