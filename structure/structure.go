// Package structure assembles multi-leg option positions from chain quotes.
package structure

import (
	"errors"
	"fmt"

	"github.com/lawson/optlib/chain"
	"github.com/lawson/optlib/option"
)

// Side is the sign of a leg.
type Side int

const (
	Long  Side = 1
	Short Side = -1
)

// Direction orients a directional structure.
type Direction string

const (
	Bullish Direction = "bullish"
	Bearish Direction = "bearish"
)

var (
	ErrUnknownDirection = errors.New("unknown direction")
	// ErrNoMid is returned when a cost is requested but a leg carries no
	// quoted mid.
	ErrNoMid = errors.New("leg has no mid price")
)

// Leg is one option position inside a structure.
type Leg struct {
	Side      Side
	Quantity  float64
	Economics option.Vanilla
	// Mid is the quoted mid price per unit, zero when unknown.
	Mid float64
	// IV is the implied vol solved from Mid, zero when not solved.
	IV float64
	Symbol string
}

// Signed returns Side times Quantity.
func (l Leg) Signed() float64 {
	return float64(l.Side) * l.Quantity
}

// Structure is a named set of legs.
type Structure struct {
	Name string
	Legs []Leg
}

// CostMid returns the signed cost of entering the structure at quoted mids.
// Positive means a net debit.
func (s Structure) CostMid() (float64, error) {
	var cost float64
	for i, l := range s.Legs {
		if l.Mid <= 0 {
			return 0, fmt.Errorf("leg %d (%s %.2f): %w", i, l.Economics.Type, l.Economics.Strike, ErrNoMid)
		}
		cost += l.Signed() * l.Mid
	}
	return cost, nil
}

func legFromQuote(q chain.Quote, side Side, qty float64) (Leg, error) {
	econ, err := option.NewVanilla(q.Strike, q.Expiry, q.Right)
	if err != nil {
		return Leg{}, err
	}
	return Leg{Side: side, Quantity: qty, Economics: econ, Mid: q.Mid, Symbol: q.Symbol}, nil
}

// Straddle builds a long call plus long put at the strike closest to the
// given moneyness.
func Straddle(c chain.Chain, moneyness float64) (Structure, error) {
	call, err := c.PickByMoneyness(option.Call, moneyness)
	if err != nil {
		return Structure{}, fmt.Errorf("straddle call: %w", err)
	}
	put, err := c.PickByStrike(option.Put, call.Strike)
	if err != nil {
		return Structure{}, fmt.Errorf("straddle put: %w", err)
	}
	callLeg, err := legFromQuote(call, Long, 1)
	if err != nil {
		return Structure{}, err
	}
	putLeg, err := legFromQuote(put, Long, 1)
	if err != nil {
		return Structure{}, err
	}
	return Structure{Name: "straddle", Legs: []Leg{callLeg, putLeg}}, nil
}

// VerticalSpread builds a two-leg spread in a single right. Bullish buys the
// lower moneyness and sells the higher one with calls; bearish does the same
// with puts, buying the higher strike.
func VerticalSpread(c chain.Chain, dir Direction, nearMoneyness, farMoneyness float64) (Structure, error) {
	var right option.Type
	switch dir {
	case Bullish:
		right = option.Call
	case Bearish:
		right = option.Put
	default:
		return Structure{}, fmt.Errorf("vertical spread: %q: %w", dir, ErrUnknownDirection)
	}
	near, err := c.PickByMoneyness(right, nearMoneyness)
	if err != nil {
		return Structure{}, fmt.Errorf("vertical spread near leg: %w", err)
	}
	far, err := c.PickByMoneyness(right, farMoneyness)
	if err != nil {
		return Structure{}, fmt.Errorf("vertical spread far leg: %w", err)
	}
	if near.Strike == far.Strike {
		return Structure{}, fmt.Errorf("vertical spread: legs collapse to strike %.2f: %w", near.Strike, chain.ErrNoQuotes)
	}
	longLeg, err := legFromQuote(near, Long, 1)
	if err != nil {
		return Structure{}, err
	}
	shortLeg, err := legFromQuote(far, Short, 1)
	if err != nil {
		return Structure{}, err
	}
	return Structure{Name: string(dir) + " vertical", Legs: []Leg{longLeg, shortLeg}}, nil
}

// Collar buys a put below the money and sells a call above it, the classic
// hedge around a long underlying position.
func Collar(c chain.Chain, putMoneyness, callMoneyness float64) (Structure, error) {
	put, err := c.PickByMoneyness(option.Put, putMoneyness)
	if err != nil {
		return Structure{}, fmt.Errorf("collar put: %w", err)
	}
	call, err := c.PickByMoneyness(option.Call, callMoneyness)
	if err != nil {
		return Structure{}, fmt.Errorf("collar call: %w", err)
	}
	putLeg, err := legFromQuote(put, Long, 1)
	if err != nil {
		return Structure{}, err
	}
	callLeg, err := legFromQuote(call, Short, 1)
	if err != nil {
		return Structure{}, err
	}
	return Structure{Name: "collar", Legs: []Leg{putLeg, callLeg}}, nil
}

// RiskReversal trades an out of the money call against an out of the money
// put. Bullish is long the call and short the put; bearish flips both sides.
func RiskReversal(c chain.Chain, dir Direction, putMoneyness, callMoneyness float64) (Structure, error) {
	callSide, putSide := Long, Short
	switch dir {
	case Bullish:
	case Bearish:
		callSide, putSide = Short, Long
	default:
		return Structure{}, fmt.Errorf("risk reversal: %q: %w", dir, ErrUnknownDirection)
	}
	call, err := c.PickByMoneyness(option.Call, callMoneyness)
	if err != nil {
		return Structure{}, fmt.Errorf("risk reversal call: %w", err)
	}
	put, err := c.PickByMoneyness(option.Put, putMoneyness)
	if err != nil {
		return Structure{}, fmt.Errorf("risk reversal put: %w", err)
	}
	callLeg, err := legFromQuote(call, callSide, 1)
	if err != nil {
		return Structure{}, err
	}
	putLeg, err := legFromQuote(put, putSide, 1)
	if err != nil {
		return Structure{}, err
	}
	return Structure{Name: string(dir) + " risk reversal", Legs: []Leg{callLeg, putLeg}}, nil
}
