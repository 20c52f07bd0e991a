// Package analytics turns raw chain quotes into implied-vol surface points.
package analytics

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lawson/optlib/chain"
	"github.com/lawson/optlib/curve"
	"github.com/lawson/optlib/model"
	"github.com/lawson/optlib/option"
	"github.com/lawson/optlib/utils"
	"github.com/lawson/optlib/vol"
)

// MarketInputs is the static market snapshot the IV solves run against.
type MarketInputs struct {
	Spot      float64
	Discount  curve.TermStructure
	Dividend  curve.TermStructure
	Reference time.Time
	// DayCount defaults to ACT/365F when empty.
	DayCount string
}

// SurfacePoint is one solved point of the implied-vol surface.
type SurfacePoint struct {
	Symbol    string
	Right     option.Type
	Expiry    time.Time
	TTM       float64
	Strike    float64
	Moneyness float64
	Mid       float64
	IV        float64
}

// SurfaceInitialVol seeds the Newton solve for chain quotes. Listed mids
// away from the money imply vols well above the generic 20 percent start,
// so the seed is richer here.
const SurfaceInitialVol = 0.30

// BuildSurfacePoints solves an implied vol for up to perExpiry near-the-money
// quotes at each expiry in the chain. Quotes whose solve fails are logged
// and skipped rather than failing the whole build.
func BuildSurfacePoints(c chain.Chain, mkt MarketInputs, perExpiry int, log *logrus.Logger) ([]SurfacePoint, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	dayCount := mkt.DayCount
	if dayCount == "" {
		dayCount = utils.Act365F
	}
	seed, err := vol.NewFlat(SurfaceInitialVol, mkt.Reference)
	if err != nil {
		return nil, fmt.Errorf("BuildSurfacePoints: %w", err)
	}
	m, err := model.NewEquityAnalytic(mkt.Spot, mkt.Discount, mkt.Dividend, seed, mkt.Reference, dayCount)
	if err != nil {
		return nil, fmt.Errorf("BuildSurfacePoints: %w", err)
	}

	cfg := model.DefaultSolverConfig()
	cfg.InitialVol = SurfaceInitialVol

	var points []SurfacePoint
	for _, expiry := range c.Expiries() {
		slice := c.ForExpiry(expiry).ATMSlice(perExpiry)
		for _, q := range slice {
			econ, err := option.NewVanilla(q.Strike, q.Expiry, q.Right)
			if err != nil {
				log.WithFields(logrus.Fields{
					"symbol": q.Symbol,
					"strike": q.Strike,
					"expiry": q.Expiry.Format("2006-01-02"),
				}).WithError(err).Warn("skipping quote with bad economics")
				continue
			}
			iv, err := model.ImpliedVol(m, econ, q.Mid, cfg)
			if err != nil {
				log.WithFields(logrus.Fields{
					"symbol": q.Symbol,
					"right":  string(q.Right),
					"strike": q.Strike,
					"mid":    q.Mid,
					"expiry": q.Expiry.Format("2006-01-02"),
				}).WithError(err).Warn("implied vol solve failed, skipping quote")
				continue
			}
			points = append(points, SurfacePoint{
				Symbol:    q.Symbol,
				Right:     q.Right,
				Expiry:    q.Expiry,
				TTM:       q.TTM,
				Strike:    q.Strike,
				Moneyness: q.Moneyness,
				Mid:       q.Mid,
				IV:        iv,
			})
		}
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("BuildSurfacePoints: %w", chain.ErrNoQuotes)
	}
	return points, nil
}
