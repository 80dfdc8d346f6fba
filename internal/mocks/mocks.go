// internal/mocks/mocks.go
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jessicarod7/boc-usd-cad/internal/domain/entity"
)

// MockValetAPI mocks the ValetAPI interface
type MockValetAPI struct {
	mock.Mock
}

func (m *MockValetAPI) FetchObservations(ctx context.Context, series entity.Series, startDate time.Time, endDate *time.Time) ([]entity.Observation, error) {
	args := m.Called(ctx, series, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Observation), args.Error(1)
}

// MockObservationCache mocks the ObservationCache interface
type MockObservationCache struct {
	mock.Mock
}

func (m *MockObservationCache) Get(ctx context.Context, series entity.Series, start time.Time, end *time.Time) ([]entity.Observation, bool, error) {
	args := m.Called(ctx, series, start, end)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]entity.Observation), args.Bool(1), args.Error(2)
}

func (m *MockObservationCache) Put(ctx context.Context, series entity.Series, start time.Time, end *time.Time, observations []entity.Observation) error {
	args := m.Called(ctx, series, start, end, observations)
	return args.Error(0)
}

// MockRateQuerier mocks the CLI's RateQuerier interface
type MockRateQuerier struct {
	mock.Mock
}

func (m *MockRateQuerier) GetRates(ctx context.Context, query entity.Query) ([]entity.Observation, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Observation), args.Error(1)
}
