// Package rates provides fiat currency conversion over point-in-time rate
// snapshots.
package rates

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Pair identifies a directed currency pair.
type Pair struct {
	From string
	To   string
}

// Snapshot is an immutable set of exchange rates taken at one instant.
// Conversion over a snapshot is deterministic.
type Snapshot struct {
	Rates   map[Pair]decimal.Decimal
	TakenAt time.Time
}

// Convert re-expresses amount from one currency code into another using this
// snapshot. Identity when the codes match. Falls back to the inverse rate
// when only the reverse pair is present.
func (s Snapshot) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	if rate, ok := s.Rates[Pair{From: from, To: to}]; ok {
		return amount.Mul(rate), nil
	}
	if rate, ok := s.Rates[Pair{From: to, To: from}]; ok && !rate.IsZero() {
		return amount.Div(rate), nil
	}
	return decimal.Zero, fmt.Errorf("rates: no rate for %s/%s", from, to)
}

// Source supplies fresh rate snapshots. Implementations pull from an
// external rate service.
type Source interface {
	Fetch() (Snapshot, error)
}

// StaticSource returns a fixed snapshot. Used in tests and as a bootstrap
// before the first refresh completes.
type StaticSource struct {
	Snap Snapshot
}

// Fetch implements Source.
func (s StaticSource) Fetch() (Snapshot, error) {
	return s.Snap, nil
}
