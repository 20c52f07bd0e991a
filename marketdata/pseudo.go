package marketdata

import (
	"fmt"
	"time"

	"github.com/lawson/optlib/chain"
	"github.com/lawson/optlib/curve"
	"github.com/lawson/optlib/model"
	"github.com/lawson/optlib/option"
	"github.com/lawson/optlib/utils"
	"github.com/lawson/optlib/vol"
)

// PseudoSource synthesizes chain snapshots by repricing a fixed strike and
// expiry grid on each requested date. Spot follows the supplied path, so
// backtests can replay a deterministic history without a database.
type PseudoSource struct {
	Symbol string
	// SpotOn returns the underlying level on a date.
	SpotOn func(time.Time) float64
	Grid   chain.Chain
	// Sigma prices every quote; Rate and DividendYield feed flat curves.
	Sigma         float64
	Rate          float64
	DividendYield float64
	// DayCount defaults to ACT/365F when empty.
	DayCount string
}

// NewPseudoSource reprices the bundled fixture grid at a constant spot.
func NewPseudoSource(sigma, rate, dividendYield float64) *PseudoSource {
	return &PseudoSource{
		Symbol:        "OPT",
		SpotOn:        func(time.Time) float64 { return fixtureSpot },
		Grid:          FixtureChain(),
		Sigma:         sigma,
		Rate:          rate,
		DividendYield: dividendYield,
	}
}

// ChainAsOf reprices the grid as of the given date. Expired grid entries are
// dropped. The symbols filter matches against the source's symbol.
func (p *PseudoSource) ChainAsOf(symbols []string, asOf time.Time) (chain.Chain, error) {
	if len(symbols) > 0 {
		found := false
		for _, s := range symbols {
			if s == p.Symbol {
				found = true
				break
			}
		}
		if !found {
			return nil, chain.ErrNoQuotes
		}
	}
	dayCount := p.DayCount
	if dayCount == "" {
		dayCount = utils.Act365F
	}
	spot := p.SpotOn(asOf)
	discount, err := curve.NewFlat(asOf, p.Rate, dayCount)
	if err != nil {
		return nil, fmt.Errorf("pseudo chain: %w", err)
	}
	dividend, err := curve.NewFlat(asOf, p.DividendYield, dayCount)
	if err != nil {
		return nil, fmt.Errorf("pseudo chain: %w", err)
	}
	flatVol, err := vol.NewFlat(p.Sigma, asOf)
	if err != nil {
		return nil, fmt.Errorf("pseudo chain: %w", err)
	}
	m, err := model.NewEquityAnalytic(spot, discount, dividend, flatVol, asOf, dayCount)
	if err != nil {
		return nil, fmt.Errorf("pseudo chain: %w", err)
	}

	var out chain.Chain
	for _, g := range p.Grid {
		if !g.Expiry.After(asOf) {
			continue
		}
		ttm, err := utils.YearFraction(asOf, g.Expiry, dayCount)
		if err != nil {
			return nil, fmt.Errorf("pseudo chain: %w", err)
		}
		econ, err := option.NewVanilla(g.Strike, g.Expiry, g.Right)
		if err != nil {
			return nil, fmt.Errorf("pseudo chain: %w", err)
		}
		mid, err := m.Price(econ)
		if err != nil {
			return nil, fmt.Errorf("pseudo chain %s %.2f: %w", g.Right, g.Strike, err)
		}
		out = append(out, chain.Quote{
			Symbol:    p.Symbol,
			Right:     g.Right,
			Strike:    g.Strike,
			Mid:       mid,
			TTM:       ttm,
			Moneyness: g.Strike / spot,
			Expiry:    g.Expiry,
		})
	}
	if len(out) == 0 {
		return nil, chain.ErrNoQuotes
	}
	return out, nil
}
