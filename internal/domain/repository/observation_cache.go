// Package repository internal/domain/repository/observation_cache.go
package repository

import (
	"context"
	"time"

	"github.com/jessicarod7/boc-usd-cad/internal/domain/entity"
)

// ObservationCache defines the interface for a local cache of fetched
// observation windows. A window is identified by the series and the exact
// bounds that were requested from the data source.
type ObservationCache interface {
	// Get returns the cached observations for a window, and whether the
	// window was present and unexpired.
	Get(ctx context.Context, series entity.Series, start time.Time, end *time.Time) ([]entity.Observation, bool, error)

	// Put stores the observations fetched for a window.
	Put(ctx context.Context, series entity.Series, start time.Time, end *time.Time, observations []entity.Observation) error
}
