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

// EquityMarket is the set of market inputs an equity option prices against.
type EquityMarket struct {
	Spot      float64
	Discount  curve.TermStructure
	Dividend  curve.TermStructure
	Vol       vol.TermStructure
	Reference time.Time
	// DayCount defaults to ACT/365F when empty.
	DayCount string
}

// EquityOption is option economics plus equity market references.
type EquityOption struct {
	Economics option.Vanilla

	market EquityMarket
	bound  model.Model
}

// NewEquityOption wraps validated economics with no market bound yet.
func NewEquityOption(econ option.Vanilla) (*EquityOption, error) {
	if err := econ.Validate(); err != nil {
		return nil, err
	}
	return &EquityOption{Economics: econ}, nil
}

// SetMarket replaces the market inputs and invalidates any bound model, so
// the next pricing call rebuilds from the new inputs.
func (o *EquityOption) SetMarket(m EquityMarket) {
	o.market = m
	o.bound = nil
}

// BindModel pins an explicit model for subsequent calls.
func (o *EquityOption) BindModel(m model.Model) {
	o.bound = m
}

// resolve picks a model: explicit argument, then bound, then a default built
// from the current market inputs. The default model is bound for reuse.
func (o *EquityOption) resolve(explicit ...model.Model) (model.Model, error) {
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
	if o.market.Discount == nil {
		missing = append(missing, "discount curve")
	}
	if o.market.Dividend == nil {
		missing = append(missing, "dividend curve")
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
	m, err := model.NewEquityAnalytic(o.market.Spot, o.market.Discount, o.market.Dividend, o.market.Vol, o.market.Reference, dc)
	if err != nil {
		return nil, err
	}
	o.bound = m
	return m, nil
}

// Price values the option, optionally with an explicitly supplied model.
func (o *EquityOption) Price(m ...model.Model) (float64, error) {
	resolved, err := o.resolve(m...)
	if err != nil {
		return 0, err
	}
	return resolved.Price(o.Economics)
}

// Delta returns the spot delta.
func (o *EquityOption) Delta(m ...model.Model) (float64, error) {
	resolved, err := o.resolve(m...)
	if err != nil {
		return 0, err
	}
	return resolved.Delta(o.Economics)
}

// Gamma returns the spot gamma.
func (o *EquityOption) Gamma(m ...model.Model) (float64, error) {
	resolved, err := o.resolve(m...)
	if err != nil {
		return 0, err
	}
	return resolved.Gamma(o.Economics)
}

// Vega returns dPrice/dSigma with sigma as a decimal.
func (o *EquityOption) Vega(m ...model.Model) (float64, error) {
	resolved, err := o.resolve(m...)
	if err != nil {
		return 0, err
	}
	return resolved.Vega(o.Economics)
}

// Greeks returns all greeks in one evaluation.
func (o *EquityOption) Greeks(m ...model.Model) (model.Greeks, error) {
	resolved, err := o.resolve(m...)
	if err != nil {
		return model.Greeks{}, err
	}
	return resolved.Greeks(o.Economics)
}

// ImpliedVol solves for the flat volatility matching targetPrice using the
// resolved model as the per-iteration rebuild seed.
func (o *EquityOption) ImpliedVol(targetPrice float64, cfg model.SolverConfig) (float64, error) {
	resolved, err := o.resolve()
	if err != nil {
		return 0, err
	}
	rebinder, ok := resolved.(model.VolRebinder)
	if !ok {
		return 0, fmt.Errorf("EquityOption.ImpliedVol: model %T cannot rebind volatility", resolved)
	}
	return model.ImpliedVol(rebinder, o.Economics, targetPrice, cfg)
}
