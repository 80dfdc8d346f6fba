package service

import (
	"context"
	"time"

	"github.com/jessicarod7/boc-usd-cad/internal/domain/entity"
)

// ValetAPI defines the interface for interacting with the Bank of Canada
// Valet API.
type ValetAPI interface {
	// FetchObservations retrieves all published observations for a series
	// from startDate through endDate (or through the latest published
	// observation when endDate is nil).
	FetchObservations(ctx context.Context, series entity.Series, startDate time.Time, endDate *time.Time) ([]entity.Observation, error)
}
