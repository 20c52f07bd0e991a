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

// EquityAnalytic is the closed-form Black-Scholes-Merton model for European
// equity options with a continuous dividend yield.
type EquityAnalytic struct {
	spot      float64
	discount  curve.TermStructure
	dividend  curve.TermStructure
	vol       vol.TermStructure
	reference time.Time
	dayCount  string
}

// NewEquityAnalytic binds a snapshot of market inputs. Every input is
// required; the error names each missing one.
func NewEquityAnalytic(spot float64, discount, dividend curve.TermStructure, v vol.TermStructure, reference time.Time, dayCount string) (*EquityAnalytic, error) {
	var missing []string
	if spot <= 0 {
		missing = append(missing, "spot")
	}
	if discount == nil {
		missing = append(missing, "discount curve")
	}
	if dividend == nil {
		missing = append(missing, "dividend curve")
	}
	if v == nil {
		missing = append(missing, "vol")
	}
	if reference.IsZero() {
		missing = append(missing, "reference date")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("NewEquityAnalytic: %s: %w", strings.Join(missing, ", "), ErrMissingInput)
	}
	if err := utils.ValidateDayCount(dayCount); err != nil {
		return nil, fmt.Errorf("NewEquityAnalytic: %w", err)
	}
	return &EquityAnalytic{
		spot:      spot,
		discount:  discount,
		dividend:  dividend,
		vol:       v,
		reference: reference,
		dayCount:  dayCount,
	}, nil
}

// ReferenceDate returns the valuation date the model is anchored to.
func (m *EquityAnalytic) ReferenceDate() time.Time { return m.reference }

// Spot returns the bound spot level.
func (m *EquityAnalytic) Spot() float64 { return m.spot }

// WithFlatVol returns a copy of the model bound to a fresh flat volatility at
// the model's reference date.
func (m *EquityAnalytic) WithFlatVol(sigma float64) (Model, error) {
	fv, err := vol.NewFlat(sigma, m.reference)
	if err != nil {
		return nil, fmt.Errorf("EquityAnalytic.WithFlatVol: %w", err)
	}
	clone := *m
	clone.vol = fv
	return &clone, nil
}

func (m *EquityAnalytic) inputs(opt option.Vanilla) (bsInputs, error) {
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
		return bsInputs{}, fmt.Errorf("EquityAnalytic: maturity %s on or before reference %s: %w",
			opt.Maturity.Format("2006-01-02"), m.reference.Format("2006-01-02"), ErrDegenerateInput)
	}

	r, err := m.discount.ZeroRate(opt.Maturity)
	if err != nil {
		return bsInputs{}, fmt.Errorf("EquityAnalytic: discount curve: %w", err)
	}
	q, err := m.dividend.ZeroRate(opt.Maturity)
	if err != nil {
		return bsInputs{}, fmt.Errorf("EquityAnalytic: dividend curve: %w", err)
	}
	sigma, err := m.vol.Vol(opt.Maturity, opt.Strike)
	if err != nil {
		return bsInputs{}, fmt.Errorf("EquityAnalytic: vol: %w", err)
	}

	in := bsInputs{
		s:      m.spot,
		k:      opt.Strike,
		t:      t,
		r:      r,
		q:      q,
		sigma:  sigma,
		isCall: opt.Type == option.Call,
	}
	if err := in.check(); err != nil {
		return bsInputs{}, err
	}
	return in, nil
}

func (m *EquityAnalytic) Price(opt option.Vanilla) (float64, error) {
	in, err := m.inputs(opt)
	if err != nil {
		return 0, err
	}
	return bsPrice(in), nil
}

func (m *EquityAnalytic) Delta(opt option.Vanilla) (float64, error) {
	in, err := m.inputs(opt)
	if err != nil {
		return 0, err
	}
	return bsDelta(in), nil
}

func (m *EquityAnalytic) Gamma(opt option.Vanilla) (float64, error) {
	in, err := m.inputs(opt)
	if err != nil {
		return 0, err
	}
	return bsGamma(in), nil
}

func (m *EquityAnalytic) Vega(opt option.Vanilla) (float64, error) {
	in, err := m.inputs(opt)
	if err != nil {
		return 0, err
	}
	return bsVega(in), nil
}

func (m *EquityAnalytic) Theta(opt option.Vanilla) (float64, error) {
	in, err := m.inputs(opt)
	if err != nil {
		return 0, err
	}
	return bsTheta(in), nil
}

func (m *EquityAnalytic) Rho(opt option.Vanilla) (float64, error) {
	in, err := m.inputs(opt)
	if err != nil {
		return 0, err
	}
	return bsRho(in), nil
}

func (m *EquityAnalytic) Greeks(opt option.Vanilla) (Greeks, error) {
	in, err := m.inputs(opt)
	if err != nil {
		return Greeks{}, err
	}
	return bsGreeks(in), nil
}
