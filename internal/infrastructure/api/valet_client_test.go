// internal/infrastructure/api/valet_client_test.go
package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/jessicarod7/boc-usd-cad/internal/domain/entity"
)

func newTestLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestFetchObservations(t *testing.T) {
	ctx := context.Background()
	startDate := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("Successful fetch of the canonical series", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/observations/FXUSDCAD/json", r.URL.Path)
			assert.Equal(t, "2025-01-05", r.URL.Query().Get("start_date"))
			assert.Empty(t, r.URL.Query().Get("end_date"))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"observations": [
					{"d": "2025-01-15", "FXUSDCAD": {"v": "1.4338"}},
					{"d": "2025-01-16", "FXUSDCAD": {"v": "1.4351"}}
				]
			}`))
		}))
		defer mockServer.Close()

		client := NewValetClient(nil, newTestLogger())
		client.SetBaseURL(mockServer.URL)

		observations, err := client.FetchObservations(ctx, entity.SeriesUSDCAD, startDate, nil)

		assert.NoError(t, err)
		assert.Len(t, observations, 2)
		assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), observations[0].Date)
		assert.True(t, observations[0].Rate.Equal(decimal.RequireFromString("1.4338")))
		assert.True(t, observations[1].Rate.Equal(decimal.RequireFromString("1.4351")))
	})

	t.Run("End date is sent for range fetches", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2025-01-17", r.URL.Query().Get("end_date"))

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"observations": []}`))
		}))
		defer mockServer.Close()

		client := NewValetClient(nil, newTestLogger())
		client.SetBaseURL(mockServer.URL)

		end := time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)
		observations, err := client.FetchObservations(ctx, entity.SeriesUSDCAD, startDate, &end)

		assert.NoError(t, err)
		assert.Empty(t, observations)
	})

	t.Run("Reversed series selects its own rate key", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/observations/FXCADUSD/json", r.URL.Path)

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"observations": [{"d": "2025-01-15", "FXCADUSD": {"v": "0.6974"}}]}`))
		}))
		defer mockServer.Close()

		client := NewValetClient(nil, newTestLogger())
		client.SetBaseURL(mockServer.URL)

		observations, err := client.FetchObservations(ctx, entity.SeriesCADUSD, startDate, nil)

		assert.NoError(t, err)
		assert.Len(t, observations, 1)
		assert.True(t, observations[0].Rate.Equal(decimal.RequireFromString("0.6974")))
	})

	t.Run("Numeric rate values are accepted", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"observations": [{"d": "2025-01-15", "FXUSDCAD": {"v": 1.4338}}]}`))
		}))
		defer mockServer.Close()

		client := NewValetClient(nil, newTestLogger())
		client.SetBaseURL(mockServer.URL)

		observations, err := client.FetchObservations(ctx, entity.SeriesUSDCAD, startDate, nil)

		assert.NoError(t, err)
		assert.True(t, observations[0].Rate.Equal(decimal.RequireFromString("1.4338")))
	})

	t.Run("Non-success status echoes the body pretty-printed", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Series FXUSDCAD not found.", "docs": "https://www.bankofcanada.ca/valet/docs"}`))
		}))
		defer mockServer.Close()

		client := NewValetClient(nil, newTestLogger())
		client.SetBaseURL(mockServer.URL)

		observations, err := client.FetchObservations(ctx, entity.SeriesUSDCAD, startDate, nil)

		assert.Error(t, err)
		assert.Nil(t, observations)
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), `"message": "Series FXUSDCAD not found."`)
	})

	t.Run("Non-JSON error body is still reported", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream unavailable"))
		}))
		defer mockServer.Close()

		client := NewValetClient(nil, newTestLogger())
		client.SetBaseURL(mockServer.URL)

		_, err := client.FetchObservations(ctx, entity.SeriesUSDCAD, startDate, nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "502")
		assert.Contains(t, err.Error(), "upstream unavailable")
	})

	t.Run("Missing series key is a parse error", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"observations": [{"d": "2025-01-15", "FXCADUSD": {"v": "0.6974"}}]}`))
		}))
		defer mockServer.Close()

		client := NewValetClient(nil, newTestLogger())
		client.SetBaseURL(mockServer.URL)

		_, err := client.FetchObservations(ctx, entity.SeriesUSDCAD, startDate, nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "missing the FXUSDCAD rate")
	})

	t.Run("Malformed success body is a parse error", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"observations": "not-a-list"}`))
		}))
		defer mockServer.Close()

		client := NewValetClient(nil, newTestLogger())
		client.SetBaseURL(mockServer.URL)

		_, err := client.FetchObservations(ctx, entity.SeriesUSDCAD, startDate, nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode response")
	})
}
