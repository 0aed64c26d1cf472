// Package exporter polls a running counter service and republishes its
// counters as Prometheus gauges.
package exporter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/turtacn/metricsvc/internal/domain/models"
	"github.com/turtacn/metricsvc/pkg/constants"
	"github.com/turtacn/metricsvc/pkg/errors"
)

// Client fetches counter snapshots from the service's /metrics route.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a Client for the service at baseURL. A non-positive
// timeout falls back to the default scrape timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = constants.DefaultScrapeTimeout
	}
	return &Client{
		url:        strings.TrimRight(baseURL, "/") + constants.PathMetrics,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// URL returns the endpoint being scraped.
func (c *Client) URL() string {
	return c.url
}

// Fetch retrieves one snapshot.
func (c *Client) Fetch(ctx context.Context) (models.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return models.Snapshot{}, errors.ErrScrapeRequest.WithMessage("failed to create GET request").WithError(err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return models.Snapshot{}, errors.ErrScrapeRequest.WithError(err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return models.Snapshot{}, errors.ErrScrapeStatus.WithMessage("invalid response status code %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return models.Snapshot{}, errors.ErrScrapeRequest.WithMessage("failed to read response body").WithError(err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return models.Snapshot{}, errors.ErrScrapeDecode.WithError(err)
	}
	return snap, nil
}
