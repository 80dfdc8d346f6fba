// Package service internal/application/service/selection.go
package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/jessicarod7/boc-usd-cad/internal/domain/entity"
)

// SelectObservations windows a fetched list of observations to the requested
// date or date range. The result always starts at the observation with the
// latest date at or before startDate, which realizes the "fall back to the
// preceding business day" rule when the requested date was not published.
//
// In single-date mode (endDate nil) the result is exactly that one
// observation. In range mode the result runs from it through the end of the
// input; the right bound is trusted to the fetch, which already requested
// data only up to endDate.
//
// The input may arrive in any order and is never mutated.
func SelectObservations(observations []entity.Observation, startDate time.Time, endDate *time.Time) ([]entity.Observation, error) {
	if len(observations) == 0 {
		return nil, entity.ErrNoObservations
	}

	sorted := make([]entity.Observation, len(observations))
	copy(sorted, observations)
	entity.SortByDate(sorted)

	// Predecessor search: sorted[i] is the first observation after startDate,
	// so sorted[i-1] is the latest one at or before it.
	i := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Date.After(startDate)
	})
	if i == 0 {
		return nil, fmt.Errorf("%w: earliest fetched observation is %s, start date is %s",
			entity.ErrNoPriorObservation,
			entity.FormatDate(sorted[0].Date), entity.FormatDate(startDate))
	}
	rangeStart := i - 1

	if endDate == nil {
		return sorted[rangeStart : rangeStart+1], nil
	}
	return sorted[rangeStart:], nil
}
