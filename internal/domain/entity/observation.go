package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Observation represents a single published exchange rate: the value of one
// unit of the base currency in the quote currency on a given trading day.
type Observation struct {
	Date time.Time       `json:"d"`
	Rate decimal.Decimal `json:"v"`
}

// ByDateAsc reports whether a is ordered before b. Observations are ordered
// by date only; the rate never participates in ordering.
func ByDateAsc(a, b Observation) bool {
	return a.Date.Before(b.Date)
}

// SortByDate sorts observations ascending by date, in place.
func SortByDate(observations []Observation) {
	sort.SliceStable(observations, func(i, j int) bool {
		return ByDateAsc(observations[i], observations[j])
	})
}
