package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/metrics"
	"golang.org/x/oauth2"
)

const (
	ResourceLogs  = "logs"
	ResourceTasks = "tasks"
)

type Config struct {
	LogsURL  string
	TasksURL string
	APIToken string
	Timeout  time.Duration
}

// Client talks to the spreadsheet-backed REST API. Every call is one
// independent round trip with no retry.
type Client struct {
	http    *http.Client
	logs    resource
	tasks   resource
	metrics *metrics.Metrics
}

type resource struct {
	name string
	url  string
}

// NewClient builds the API client. A non-empty APIToken is sent as a bearer token.
func NewClient(ctx context.Context, cfg Config, m *metrics.Metrics) *Client {
	var httpClient *http.Client
	if cfg.APIToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIToken, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = cfg.Timeout

	return &Client{
		http:    httpClient,
		logs:    resource{name: ResourceLogs, url: strings.TrimRight(cfg.LogsURL, "/")},
		tasks:   resource{name: ResourceTasks, url: strings.TrimRight(cfg.TasksURL, "/")},
		metrics: m,
	}
}

// list fetches every row of a resource.
func (c *Client) list(ctx context.Context, res resource) (rows []record.Row, err error) {
	started := time.Now()
	defer func() { c.observe(res, http.MethodGet, started, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, res.url, nil)
	if err != nil {
		return nil, &record.StoreError{Resource: res.name, Op: http.MethodGet, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &record.StoreError{Resource: res.name, Op: http.MethodGet, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &record.StoreError{Resource: res.name, Op: http.MethodGet, StatusCode: resp.StatusCode}
	}

	var objects []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&objects); err != nil {
		return nil, &record.StoreError{Resource: res.name, Op: http.MethodGet, Err: fmt.Errorf("decode rows: %w", err)}
	}

	rows = make([]record.Row, 0, len(objects))
	for _, obj := range objects {
		rows = append(rows, record.RowFromAny(obj))
	}
	return rows, nil
}

// post appends one row using the {"data": row} envelope.
func (c *Client) post(ctx context.Context, res resource, row record.Row) (err error) {
	started := time.Now()
	defer func() { c.observe(res, http.MethodPost, started, err) }()

	return c.send(ctx, res, http.MethodPost, res.url, map[string]interface{}{"data": row})
}

// patch updates the rows whose column equals value.
func (c *Client) patch(ctx context.Context, res resource, column, value string, row record.Row) (err error) {
	started := time.Now()
	defer func() { c.observe(res, http.MethodPatch, started, err) }()

	target := res.url + "/" + url.PathEscape(column) + "/" + url.PathEscape(value)
	return c.send(ctx, res, http.MethodPatch, target, row)
}

func (c *Client) send(ctx context.Context, res resource, method, target string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &record.StoreError{Resource: res.name, Op: method, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return &record.StoreError{Resource: res.name, Op: method, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &record.StoreError{Resource: res.name, Op: method, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &record.StoreError{Resource: res.name, Op: method, StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) observe(res resource, op string, started time.Time, err error) {
	c.metrics.ObserveStore(res.name, op, started, err)
	if err != nil {
		slog.Error("record store call failed", "resource", res.name, "op", op, "error", err)
	}
}
