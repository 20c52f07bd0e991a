// Package portfolio values structures and aggregates risk across legs.
// Money amounts are carried as decimals so leg costs sum exactly.
package portfolio

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lawson/optlib/model"
	"github.com/lawson/optlib/structure"
)

// ErrMissingPrice is returned when a leg has no entry in the price map.
var ErrMissingPrice = errors.New("missing leg price")

// legKey identifies a leg in a price map: right, strike and expiry date.
func legKey(l structure.Leg) string {
	return fmt.Sprintf("%s|%.4f|%s", l.Economics.Type, l.Economics.Strike, l.Economics.Maturity.Format("2006-01-02"))
}

// Key returns the price-map key for a leg.
func Key(l structure.Leg) string { return legKey(l) }

// Value marks the structure to the given per-leg prices and returns the
// signed value. Positive means the position is an asset.
func Value(s structure.Structure, prices map[string]decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, l := range s.Legs {
		px, ok := prices[legKey(l)]
		if !ok {
			return decimal.Zero, fmt.Errorf("leg %d key %q: %w", i, legKey(l), ErrMissingPrice)
		}
		qty := decimal.NewFromFloat(l.Signed())
		total = total.Add(px.Mul(qty))
	}
	return total, nil
}

// CostMid returns the entry cost of the structure at quoted mids as a
// decimal. Positive means a net debit.
func CostMid(s structure.Structure) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, l := range s.Legs {
		if l.Mid <= 0 {
			return decimal.Zero, fmt.Errorf("leg %d: %w", i, structure.ErrNoMid)
		}
		total = total.Add(decimal.NewFromFloat(l.Mid).Mul(decimal.NewFromFloat(l.Signed())))
	}
	return total, nil
}

// NetGreeks prices every leg on the given model and returns the
// quantity-weighted sums.
func NetGreeks(s structure.Structure, m model.Model) (model.Greeks, error) {
	var net model.Greeks
	for i, l := range s.Legs {
		g, err := m.Greeks(l.Economics)
		if err != nil {
			return model.Greeks{}, fmt.Errorf("leg %d: %w", i, err)
		}
		w := l.Signed()
		net.Delta += w * g.Delta
		net.Gamma += w * g.Gamma
		net.Vega += w * g.Vega
		net.Theta += w * g.Theta
		net.Rho += w * g.Rho
	}
	return net, nil
}

// ValueOnModel prices every leg on the model and returns the signed total,
// a convenience over building a price map by hand.
func ValueOnModel(s structure.Structure, m model.Model) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, l := range s.Legs {
		px, err := m.Price(l.Economics)
		if err != nil {
			return decimal.Zero, fmt.Errorf("leg %d: %w", i, err)
		}
		total = total.Add(decimal.NewFromFloat(px).Mul(decimal.NewFromFloat(l.Signed())))
	}
	return total, nil
}
