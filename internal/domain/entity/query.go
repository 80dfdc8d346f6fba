package entity

import (
	"fmt"
	"time"
)

// Series identifies a Bank of Canada Valet observation series.
type Series string

const (
	// SeriesUSDCAD is the value of 1 USD in CAD.
	SeriesUSDCAD Series = "FXUSDCAD"
	// SeriesCADUSD is the value of 1 CAD in USD.
	SeriesCADUSD Series = "FXCADUSD"
)

// Query describes a single rate lookup: a start date, an optional end date
// (present for range mode), and whether the caller wants the reciprocal
// CAD-to-USD rate.
type Query struct {
	StartDate time.Time
	EndDate   *time.Time
	Reverse   bool
}

// Validate ensures the query is well-formed before any fetch is attempted
func (q *Query) Validate() error {
	if q.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}

	if q.EndDate != nil && q.EndDate.Before(q.StartDate) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidDateRange, FormatDate(*q.EndDate), FormatDate(q.StartDate))
	}

	return nil
}

// IsRange reports whether the query asks for a date range rather than a
// single resolved observation.
func (q *Query) IsRange() bool {
	return q.EndDate != nil
}
