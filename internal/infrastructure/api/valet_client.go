// Package api internal/infrastructure/api/valet_client.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/jessicarod7/boc-usd-cad/internal/domain/entity"
)

const (
	// DefaultBaseURL is the public Bank of Canada Valet endpoint.
	DefaultBaseURL = "https://www.bankofcanada.ca/valet"

	defaultTimeout = 10 * time.Second
)

// ValetClient retrieves exchange rate observations from the Bank of Canada
// Valet API.
type ValetClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

// NewValetClient creates a new Valet API client. Both arguments may be nil,
// in which case a 10-second-timeout client and the standard logger are used.
func NewValetClient(httpClient *http.Client, logger logrus.FieldLogger) *ValetClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultTimeout,
		}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &ValetClient{
		baseURL:    DefaultBaseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// SetBaseURL overrides the Valet endpoint, for configuration and tests.
func (c *ValetClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// valetResponse represents the success response structure from the Valet
// observations endpoint. The rate sits under a series-specific key.
type valetResponse struct {
	Observations []struct {
		Date     string     `json:"d"`
		FXUSDCAD *valetRate `json:"FXUSDCAD"`
		FXCADUSD *valetRate `json:"FXCADUSD"`
	} `json:"observations"`
}

type valetRate struct {
	// Valet encodes rates as decimal strings; decimal.Decimal also accepts
	// bare JSON numbers without going through a float.
	Value decimal.Decimal `json:"v"`
}

// FetchObservations retrieves all published observations for a series in the
// requested window. There is no retry: the tool runs one query and exits, so
// every failure is terminal.
func (c *ValetClient) FetchObservations(ctx context.Context, series entity.Series, startDate time.Time, endDate *time.Time) ([]entity.Observation, error) {
	params := url.Values{}
	params.Set("start_date", entity.FormatDate(startDate))
	if endDate != nil {
		params.Set("end_date", entity.FormatDate(*endDate))
	}

	reqURL := fmt.Sprintf("%s/observations/%s/json?%s", c.baseURL, series, params.Encode())

	c.logger.WithFields(logrus.Fields{
		"series": series,
		"url":    reqURL,
	}).Debug("Fetching observations")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WithError(closeErr).Warn("Error closing response body")
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, protocolError(resp.StatusCode, bodyBytes)
	}

	var valetResp valetResponse
	if err := json.Unmarshal(bodyBytes, &valetResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	observations := make([]entity.Observation, 0, len(valetResp.Observations))
	for _, raw := range valetResp.Observations {
		date, err := entity.ParseDate(raw.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse observation date %q: %w", raw.Date, err)
		}

		var rate *valetRate
		switch series {
		case entity.SeriesUSDCAD:
			rate = raw.FXUSDCAD
		case entity.SeriesCADUSD:
			rate = raw.FXCADUSD
		}
		if rate == nil {
			return nil, fmt.Errorf("observation %s is missing the %s rate", raw.Date, series)
		}

		observations = append(observations, entity.Observation{
			Date: date,
			Rate: rate.Value,
		})
	}

	c.logger.WithFields(logrus.Fields{
		"series": series,
		"count":  len(observations),
	}).Debug("Fetched observations")

	return observations, nil
}

// protocolError turns a non-success Valet response into an error carrying the
// body as pretty-printed JSON for diagnosis, rather than parsing it as
// observation data.
func protocolError(status int, body []byte) error {
	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("API returned non-JSON error status %d: %s", status, body)
	}

	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("API returned error status %d: %s", status, body)
	}
	return fmt.Errorf("API returned error status %d:\n%s", status, pretty)
}
