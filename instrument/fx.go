package instrument

import (
	"fmt"
	"time"

	"github.com/lawson/optlib/curve"
	"github.com/lawson/optlib/model"
	"github.com/lawson/optlib/option"
	"github.com/lawson/optlib/utils"
	"github.com/lawson/optlib/vol"
)

// FXMarket is the set of market inputs an FX option prices against.
type FXMarket struct {
	Spot      float64
	Domestic  curve.TermStructure
	Foreign   curve.TermStructure
	Vol       vol.TermStructure
	Reference time.Time
	// DayCount defaults to ACT/365F when empty.
	DayCount string
}

// FXOption is option economics plus FX market references. The strike and spot
// are quoted in domestic units per foreign unit.
type FXOption struct {
	Economics option.Vanilla

	market FXMarket
	bound  model.Model
}

// NewFXOption wraps validated economics with no market bound yet.
func NewFXOption(econ option.Vanilla) (*FXOption, error) {
	if err := econ.Validate(); err != nil {
		return nil, err
	}
	return &FXOption{Economics: econ}, nil
}

// SetMarket replaces the market inputs and invalidates any bound model.
func (o *FXOption) SetMarket(m FXMarket) {
	o.market = m
	o.bound = nil
}

// BindModel pins an explicit model for subsequent calls.
func (o *FXOption) BindModel(m model.Model) {
	o.bound = m
}

func (o *FXOption) resolve(explicit ...model.Model) (model.Model, error) {
	if len(explicit) > 0 && explicit[0] != nil {
		return explicit[0], nil
	}
	if o.bound != nil {
		return o.bound, nil
	}

	var missing []string
	if o.market.Spot <= 0 {
		missing = append(missing, "spot")
	}
	if o.market.Domestic == nil {
		missing = append(missing, "domestic curve")
	}
	if o.market.Foreign == nil {
		missing = append(missing, "foreign curve")
	}
	if o.market.Vol == nil {
		missing = append(missing, "vol")
	}
	if o.market.Reference.IsZero() {
		missing = append(missing, "reference date")
	}
	if len(missing) > 0 {
		return nil, &MissingModelError{Missing: missing}
	}

	dc := o.market.DayCount
	if dc == "" {
		dc = utils.Act365F
	}
	m, err := model.NewFXAnalytic(o.market.Spot, o.market.Domestic, o.market.Foreign, o.market.Vol, o.market.Reference, dc)
	if err != nil {
		return nil, err
	}
	o.bound = m
	return m, nil
}

// Price values the option, optionally with an explicitly supplied model.
func (o *FXOption) Price(m ...model.Model) (float64, error) {
	resolved, err := o.resolve(m...)
	if err != nil {
		return 0, err
	}
	return resolved.Price(o.Economics)
}

// Delta returns the spot delta (not premium-adjusted).
func (o *FXOption) Delta(m ...model.Model) (float64, error) {
	resolved, err := o.resolve(m...)
	if err != nil {
		return 0, err
	}
	return resolved.Delta(o.Economics)
}

// Gamma returns the spot gamma.
func (o *FXOption) Gamma(m ...model.Model) (float64, error) {
	resolved, err := o.resolve(m...)
	if err != nil {
		return 0, err
	}
	return resolved.Gamma(o.Economics)
}

// Vega returns dPrice/dSigma with sigma as a decimal.
func (o *FXOption) Vega(m ...model.Model) (float64, error) {
	resolved, err := o.resolve(m...)
	if err != nil {
		return 0, err
	}
	return resolved.Vega(o.Economics)
}

// Greeks returns all greeks in one evaluation.
func (o *FXOption) Greeks(m ...model.Model) (model.Greeks, error) {
	resolved, err := o.resolve(m...)
	if err != nil {
		return model.Greeks{}, err
	}
	return resolved.Greeks(o.Economics)
}

// ImpliedVol solves for the flat volatility matching targetPrice.
func (o *FXOption) ImpliedVol(targetPrice float64, cfg model.SolverConfig) (float64, error) {
	resolved, err := o.resolve()
	if err != nil {
		return 0, err
	}
	rebinder, ok := resolved.(model.VolRebinder)
	if !ok {
		return 0, fmt.Errorf("FXOption.ImpliedVol: model %T cannot rebind volatility", resolved)
	}
	return model.ImpliedVol(rebinder, o.Economics, targetPrice, cfg)
}
