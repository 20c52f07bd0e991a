// Package chain models a normalized option quote chain and the selection
// helpers the structure builders anchor on.
package chain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lawson/optlib/option"
)

// ErrNoQuotes is returned when a selection finds no usable quote.
var ErrNoQuotes = errors.New("no usable quotes")

// Quote is one normalized market quote from an options chain.
type Quote struct {
	Symbol string
	Right  option.Type
	Strike float64
	// Mid is the quoted mid price.
	Mid float64
	// TTM is time to maturity in years.
	TTM float64
	// Moneyness is strike divided by spot.
	Moneyness float64
	Expiry    time.Time
}

// Usable reports whether the quote passes the basic sanity filters applied
// before any solve or structure build.
func (q Quote) Usable() bool {
	return q.Strike > 0 && q.Mid > 0 && q.TTM > 0 && q.Moneyness > 0
}

// Chain is a set of quotes, typically one expiry's slice of the full chain.
type Chain []Quote

// Usable returns the quotes passing sanity filters.
func (c Chain) Usable() Chain {
	out := make(Chain, 0, len(c))
	for _, q := range c {
		if q.Usable() {
			out = append(out, q)
		}
	}
	return out
}

// ByRight returns the usable quotes with the given right.
func (c Chain) ByRight(right option.Type) Chain {
	out := make(Chain, 0, len(c))
	for _, q := range c.Usable() {
		if q.Right == right {
			out = append(out, q)
		}
	}
	return out
}

// Expiries returns the distinct expiry dates in ascending order.
func (c Chain) Expiries() []time.Time {
	seen := make(map[time.Time]struct{})
	var out []time.Time
	for _, q := range c {
		if _, ok := seen[q.Expiry]; !ok {
			seen[q.Expiry] = struct{}{}
			out = append(out, q.Expiry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// ForExpiry returns the quotes maturing on the given date.
func (c Chain) ForExpiry(expiry time.Time) Chain {
	out := make(Chain, 0, len(c))
	for _, q := range c {
		if q.Expiry.Equal(expiry) {
			out = append(out, q)
		}
	}
	return out
}

// PickByMoneyness returns the usable quote of the given right closest to the
// target moneyness.
func (c Chain) PickByMoneyness(right option.Type, target float64) (Quote, error) {
	candidates := c.ByRight(right)
	if len(candidates) == 0 {
		return Quote{}, fmt.Errorf("PickByMoneyness: right=%s: %w", right, ErrNoQuotes)
	}
	best := candidates[0]
	for _, q := range candidates[1:] {
		if math.Abs(q.Moneyness-target) < math.Abs(best.Moneyness-target) {
			best = q
		}
	}
	return best, nil
}

// PickByStrike returns the usable quote of the given right closest to strike.
func (c Chain) PickByStrike(right option.Type, strike float64) (Quote, error) {
	candidates := c.ByRight(right)
	if len(candidates) == 0 {
		return Quote{}, fmt.Errorf("PickByStrike: right=%s: %w", right, ErrNoQuotes)
	}
	best := candidates[0]
	for _, q := range candidates[1:] {
		if math.Abs(q.Strike-strike) < math.Abs(best.Strike-strike) {
			best = q
		}
	}
	return best, nil
}

// ATMStrike picks the strike whose moneyness is closest to target across the
// whole chain, both rights included.
func (c Chain) ATMStrike(target float64) (float64, error) {
	usable := c.Usable()
	if len(usable) == 0 {
		return 0, fmt.Errorf("ATMStrike: %w", ErrNoQuotes)
	}
	best := usable[0]
	for _, q := range usable[1:] {
		if math.Abs(q.Moneyness-target) < math.Abs(best.Moneyness-target) {
			best = q
		}
	}
	return best.Strike, nil
}

// ATMSlice returns up to n usable quotes ordered by distance from moneyness
// 1.0. Newton IV solves are most stable near the money where vega is not
// tiny, so surface builds start from this slice.
func (c Chain) ATMSlice(n int) Chain {
	usable := c.Usable()
	sort.SliceStable(usable, func(i, j int) bool {
		return math.Abs(usable[i].Moneyness-1.0) < math.Abs(usable[j].Moneyness-1.0)
	})
	if n > 0 && len(usable) > n {
		usable = usable[:n]
	}
	return usable
}
