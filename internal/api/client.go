// Package api is the REST client for the SyncFlow backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/syncflow/dashboard/internal/logging"
	"github.com/syncflow/dashboard/internal/model"
)

const maxBodyBytes = 16 << 20

// Client talks to the backend rooted at BaseURL. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Entry
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for baseURL. timeout bounds every request; zero
// falls back to model.DefaultRequestTimeout.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: base url %q must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = model.DefaultRequestTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logging.NewLogger("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// get performs a GET on path and returns the raw body of a 2xx response.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("api: GET %s: read body: %w", path, err)
	}

	c.log.WithFields(logrus.Fields{
		"path":    path,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start),
	}).Trace("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Path: path, StatusCode: resp.StatusCode}
	}
	return body, nil
}

// getList fetches path and decodes a top-level JSON array. Anything else,
// including null, is a shape error.
func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[T](path, body)
}

func decodeList[T any](path string, body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ShapeError{Path: path, Detail: "expected a JSON array"}
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &ShapeError{Path: path, Detail: err.Error()}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func decodeNetworkLogs(path string, body []byte) ([]model.NetworkLog, error) {
	logs, err := decodeList[model.NetworkLog](path, body)
	if err != nil {
		return nil, err
	}
	for i, l := range logs {
		if !l.Type.Valid() {
			return nil, &ShapeError{Path: path, Detail: fmt.Sprintf("record %d: invalid direction %q", i, l.Type)}
		}
	}
	return logs, nil
}

// Roster returns the employee roster.
func (c *Client) Roster(ctx context.Context) ([]model.Employee, error) {
	return getList[model.Employee](ctx, c, "/logs")
}

// IntruderLogs returns the intruder network-log stream.
func (c *Client) IntruderLogs(ctx context.Context) ([]model.NetworkLog, error) {
	return c.networkLogs(ctx, "/logs/intruder")
}

// Managers returns managers with their reports.
func (c *Client) Managers(ctx context.Context) ([]model.Manager, error) {
	return getList[model.Manager](ctx, c, "/managers")
}

// CheckoutIPs returns the IP inventory.
func (c *Client) CheckoutIPs(ctx context.Context) ([]string, error) {
	return getList[string](ctx, c, "/checkout/ips")
}

// CheckoutLogs returns the network logs recorded for ip.
func (c *Client) CheckoutLogs(ctx context.Context, ip string) ([]model.NetworkLog, error) {
	return c.networkLogs(ctx, "/checkout/ips/"+url.PathEscape(ip))
}

// Ports returns the open ports observed for ip.
func (c *Client) Ports(ctx context.Context, ip string) ([]string, error) {
	return getList[string](ctx, c, "/checkout/ips/"+url.PathEscape(ip)+"/ports")
}

// Policies returns the policies that apply to ip.
func (c *Client) Policies(ctx context.Context, ip string) ([]model.Policy, error) {
	return getList[model.Policy](ctx, c, "/policies/"+url.PathEscape(ip))
}

// SysInfo returns the backend host summary.
func (c *Client) SysInfo(ctx context.Context) (model.SysInfo, error) {
	const path = "/sysinfo"
	var info model.SysInfo
	body, err := c.get(ctx, path)
	if err != nil {
		return info, err
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return info, &ShapeError{Path: path, Detail: "expected a JSON object"}
	}
	if err := json.Unmarshal(trimmed, &info); err != nil {
		return info, &ShapeError{Path: path, Detail: err.Error()}
	}
	return info, nil
}

// Checkout fetches logs, ports and policies for ip concurrently. The first
// failure cancels the other requests.
func (c *Client) Checkout(ctx context.Context, ip string) (model.CheckoutDetail, error) {
	detail := model.CheckoutDetail{IP: ip}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logs, err := c.CheckoutLogs(gctx, ip)
		detail.Logs = logs
		return err
	})
	g.Go(func() error {
		ports, err := c.Ports(gctx, ip)
		detail.Ports = ports
		return err
	})
	g.Go(func() error {
		policies, err := c.Policies(gctx, ip)
		detail.Policies = policies
		return err
	})
	if err := g.Wait(); err != nil {
		return model.CheckoutDetail{IP: ip}, err
	}
	return detail, nil
}

func (c *Client) networkLogs(ctx context.Context, path string) ([]model.NetworkLog, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeNetworkLogs(path, body)
}
