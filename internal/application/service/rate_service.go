// Package service internal/application/service/rate_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/jessicarod7/boc-usd-cad/internal/domain/entity"
	"github.com/jessicarod7/boc-usd-cad/internal/domain/repository"
	domainsvc "github.com/jessicarod7/boc-usd-cad/internal/domain/service"
)

const (
	// defaultLookbackDays is how many extra calendar days before the start
	// date are fetched, so a published observation exists at or before it
	// even across long weekends and holiday clusters.
	defaultLookbackDays = 10

	// reverseRateScale is the number of decimal places the reciprocal rate
	// is rounded to, matching the precision the Bank of Canada publishes
	// for the pair.
	reverseRateScale = 4
)

var one = decimal.New(1, 0)

// RateService answers rate queries end to end: fetch a window of
// observations, select the rows the query asks for, and apply the reciprocal
// transform in reverse mode.
type RateService struct {
	api          domainsvc.ValetAPI
	cache        repository.ObservationCache
	logger       logrus.FieldLogger
	lookbackDays int
}

// NewRateService creates a new rate service. The cache may be nil, in which
// case every query fetches from the Valet API.
func NewRateService(api domainsvc.ValetAPI, cache repository.ObservationCache, logger logrus.FieldLogger, lookbackDays int) *RateService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if lookbackDays <= 0 {
		lookbackDays = defaultLookbackDays
	}

	return &RateService{
		api:          api,
		cache:        cache,
		logger:       logger,
		lookbackDays: lookbackDays,
	}
}

// GetRates resolves a query into the ordered observations that answer it.
func (s *RateService) GetRates(ctx context.Context, query entity.Query) ([]entity.Observation, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	fetchStart := query.StartDate.AddDate(0, 0, -s.lookbackDays)

	log := s.logger.WithFields(logrus.Fields{
		"series":      entity.SeriesUSDCAD,
		"start_date":  entity.FormatDate(query.StartDate),
		"fetch_start": entity.FormatDate(fetchStart),
		"range":       query.IsRange(),
	})

	observations, err := s.fetchWindow(ctx, fetchStart, query.EndDate, log)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve observations: %w", err)
	}
	log.WithField("count", len(observations)).Debug("Retrieved observations")

	selected, err := SelectObservations(observations, query.StartDate, query.EndDate)
	if err != nil {
		return nil, err
	}

	if query.Reverse {
		selected = invert(selected)
	}

	log.WithFields(logrus.Fields{
		"selected":   len(selected),
		"first_date": entity.FormatDate(selected[0].Date),
		"reverse":    query.Reverse,
	}).Info("Query resolved")

	return selected, nil
}

// fetchWindow returns the observations for a fetch window, preferring the
// local cache when one is configured. Cache failures degrade to a plain
// fetch; only the fetch itself can fail the query.
func (s *RateService) fetchWindow(ctx context.Context, start time.Time, end *time.Time, log logrus.FieldLogger) ([]entity.Observation, error) {
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, entity.SeriesUSDCAD, start, end)
		if err != nil {
			log.WithError(err).Warn("Observation cache read failed")
		} else if found {
			log.Debug("Observation window served from cache")
			return cached, nil
		}
	}

	observations, err := s.api.FetchObservations(ctx, entity.SeriesUSDCAD, start, end)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, entity.SeriesUSDCAD, start, end, observations); err != nil {
			log.WithError(err).Warn("Observation cache write failed")
		}
	}

	return observations, nil
}

// invert applies the reciprocal transform for reverse mode, turning the
// canonical USD-in-CAD rates into CAD-in-USD. Rounded to 4 decimal places,
// half away from zero.
func invert(observations []entity.Observation) []entity.Observation {
	inverted := make([]entity.Observation, len(observations))
	for i, obs := range observations {
		inverted[i] = entity.Observation{
			Date: obs.Date,
			Rate: one.DivRound(obs.Rate, reverseRateScale),
		}
	}
	return inverted
}
