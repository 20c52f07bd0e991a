// Package research builds historical value and risk series for option
// structures from a replayable price source.
package research

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/lawson/optlib/chain"
	"github.com/lawson/optlib/curve"
	"github.com/lawson/optlib/model"
	"github.com/lawson/optlib/portfolio"
	"github.com/lawson/optlib/structure"
	"github.com/lawson/optlib/utils"
	"github.com/lawson/optlib/vol"
)

// PriceSource replays option chains as of a historical date.
type PriceSource interface {
	ChainAsOf(symbols []string, asOf time.Time) (chain.Chain, error)
}

// FallbackVol prices legs whose quotes never produced an implied vol.
const FallbackVol = 0.20

// ValuePoint is one date of a mark-to-mid value series.
type ValuePoint struct {
	Date  time.Time
	Value decimal.Decimal
}

// RiskPoint is one date of a net greeks series.
type RiskPoint struct {
	Date   time.Time
	Greeks model.Greeks
}

// FlatMarket holds the flat curve assumptions a risk series is rebuilt with
// on every date.
type FlatMarket struct {
	Rate          float64
	DividendYield float64
	// DayCount defaults to ACT/365F when empty.
	DayCount string
}

// BuildValueSeries marks the structure to chain mids on each date. Dates
// where a leg's quote cannot be found are logged and skipped, so the series
// may be shorter than the date list.
func BuildValueSeries(src PriceSource, s structure.Structure, symbols []string, dates []time.Time, log *logrus.Logger) ([]ValuePoint, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	var series []ValuePoint
	for _, date := range dates {
		ch, err := src.ChainAsOf(symbols, date)
		if err != nil {
			return nil, fmt.Errorf("BuildValueSeries: chain as of %s: %w", date.Format("2006-01-02"), err)
		}
		prices := make(map[string]decimal.Decimal, len(s.Legs))
		ok := true
		for _, l := range s.Legs {
			q, err := ch.ForExpiry(l.Economics.Maturity).PickByStrike(l.Economics.Type, l.Economics.Strike)
			if err != nil || q.Strike != l.Economics.Strike {
				log.WithFields(logrus.Fields{
					"date":   date.Format("2006-01-02"),
					"right":  string(l.Economics.Type),
					"strike": l.Economics.Strike,
				}).Warn("no quote for leg, skipping date")
				ok = false
				break
			}
			prices[portfolio.Key(l)] = decimal.NewFromFloat(q.Mid)
		}
		if !ok {
			continue
		}
		v, err := portfolio.Value(s, prices)
		if err != nil {
			return nil, fmt.Errorf("BuildValueSeries: %s: %w", date.Format("2006-01-02"), err)
		}
		series = append(series, ValuePoint{Date: date, Value: v})
	}
	return series, nil
}

// BuildRiskSeries rebuilds a flat market on each date and sums the legs'
// greeks. Each leg is priced at its own implied vol when one is attached,
// else at FallbackVol. Dates past a leg's expiry are logged and skipped.
func BuildRiskSeries(src PriceSource, s structure.Structure, symbols []string, dates []time.Time, fm FlatMarket, log *logrus.Logger) ([]RiskPoint, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	dayCount := fm.DayCount
	if dayCount == "" {
		dayCount = utils.Act365F
	}
	var series []RiskPoint
	for _, date := range dates {
		ch, err := src.ChainAsOf(symbols, date)
		if err != nil {
			return nil, fmt.Errorf("BuildRiskSeries: chain as of %s: %w", date.Format("2006-01-02"), err)
		}
		spot, err := spotFromChain(ch)
		if err != nil {
			log.WithField("date", date.Format("2006-01-02")).WithError(err).Warn("no usable quote to infer spot, skipping date")
			continue
		}
		discount, err := curve.NewFlat(date, fm.Rate, dayCount)
		if err != nil {
			return nil, fmt.Errorf("BuildRiskSeries: %w", err)
		}
		dividend, err := curve.NewFlat(date, fm.DividendYield, dayCount)
		if err != nil {
			return nil, fmt.Errorf("BuildRiskSeries: %w", err)
		}

		var net model.Greeks
		ok := true
		for _, l := range s.Legs {
			if !l.Economics.Maturity.After(date) {
				log.WithFields(logrus.Fields{
					"date":   date.Format("2006-01-02"),
					"expiry": l.Economics.Maturity.Format("2006-01-02"),
				}).Warn("leg expired, skipping date")
				ok = false
				break
			}
			sigma := l.IV
			if sigma <= 0 {
				sigma = FallbackVol
			}
			flatVol, err := vol.NewFlat(sigma, date)
			if err != nil {
				return nil, fmt.Errorf("BuildRiskSeries: %w", err)
			}
			m, err := model.NewEquityAnalytic(spot, discount, dividend, flatVol, date, dayCount)
			if err != nil {
				return nil, fmt.Errorf("BuildRiskSeries: %w", err)
			}
			g, err := m.Greeks(l.Economics)
			if err != nil {
				return nil, fmt.Errorf("BuildRiskSeries: %s strike %.2f: %w", date.Format("2006-01-02"), l.Economics.Strike, err)
			}
			w := l.Signed()
			net.Delta += w * g.Delta
			net.Gamma += w * g.Gamma
			net.Vega += w * g.Vega
			net.Theta += w * g.Theta
			net.Rho += w * g.Rho
		}
		if !ok {
			continue
		}
		series = append(series, RiskPoint{Date: date, Greeks: net})
	}
	return series, nil
}

// spotFromChain backs the spot out of the first usable quote's moneyness.
func spotFromChain(c chain.Chain) (float64, error) {
	usable := c.Usable()
	if len(usable) == 0 {
		return 0, chain.ErrNoQuotes
	}
	return usable[0].Strike / usable[0].Moneyness, nil
}
