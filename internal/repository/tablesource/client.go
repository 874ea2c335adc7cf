// Package tablesource fetches record collections from the remote
// table-based REST source.
package tablesource

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/reqscribe/requisition-api/internal/model"
	"github.com/reqscribe/requisition-api/pkg/errors"
)

// Collection names served by the table source.
const (
	TableDoctors   = "doctors_registration"
	TablePatients  = "patients_registration"
	TablePathology = "patients_pathology"
)

// Client retrieves named tables over HTTP. The table URL is the base URL
// with the table name appended, matching the upstream's routing.
type Client struct {
	baseURL       string
	http          *http.Client
	fetchDuration *prometheus.HistogramVec
}

type Option func(*Client)

// WithFetchMetrics records per-table fetch latency.
func WithFetchMetrics(hist *prometheus.HistogramVec) Option {
	return func(c *Client) {
		c.fetchDuration = hist
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchTables retrieves every named table sequentially. Any failure aborts
// the whole fetch; callers never see a partially populated result.
func (c *Client) FetchTables(ctx context.Context, names []string) (model.Tables, error) {
	tables := make(model.Tables, len(names))
	for _, name := range names {
		table, err := c.fetchTable(ctx, name)
		if err != nil {
			return nil, err
		}
		tables[name] = table
	}
	return tables, nil
}

func (c *Client) fetchTable(ctx context.Context, name string) (model.Table, error) {
	tableURL, err := url.JoinPath(c.baseURL, name)
	if err != nil {
		return nil, errors.Transport(fmt.Sprintf("invalid table source URL for %s", name), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tableURL, nil)
	if err != nil {
		return nil, errors.Transport(fmt.Sprintf("invalid table source URL for %s", name), err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if c.fetchDuration != nil {
		c.fetchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if isTimeout(err) {
			return nil, errors.Timeout(fmt.Sprintf("fetching table %s timed out", name), err)
		}
		return nil, errors.Transport(fmt.Sprintf("failed to fetch table %s", name), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Transport(
			fmt.Sprintf("table source returned %d for %s", resp.StatusCode, name), nil)
	}

	var table model.Table
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		return nil, errors.Payload(fmt.Sprintf("malformed payload for table %s", name), err)
	}
	return table, nil
}

// Ping checks that the table source answers at all; used by readiness.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return errors.Transport("invalid table source URL", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Transport("table source unreachable", err)
	}
	resp.Body.Close()
	return nil
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}
