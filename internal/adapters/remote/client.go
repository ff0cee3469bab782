// Package remote fetches published collective results from the results bucket.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
)

const (
	// Attempts is the number of requests made for each document before giving up.
	Attempts = 3
	// RetryInterval is the fixed pause between attempts.
	RetryInterval = 2 * time.Second
	// RequestTimeout bounds a single request of the default HTTP client.
	RequestTimeout = 30 * time.Second

	latestDocument = "latest"
	resultDocument = "result.json"
	maxBodySize    = 32 << 20
)

// Client implements ports.RemoteResults over HTTP.
type Client struct {
	http     *http.Client
	interval time.Duration
}

// NewClient creates a Client. A nil httpClient uses a client timing out after RequestTimeout.
func NewClient(httpClient *http.Client, interval time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: RequestTimeout}
	}
	return &Client{http: httpClient, interval: interval}
}

// Latest resolves the latest published version and fetches its collective result.
func (c *Client) Latest(ctx context.Context, baseURL string) (string, domain.CollectiveResult, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")

	body, err := c.fetch(ctx, baseURL+"/"+latestDocument)
	if err != nil {
		return "", nil, err
	}
	version := strings.TrimSpace(string(body))
	if version == "" {
		return "", nil, zerr.With(domain.ErrRemoteParseFailed, "url", baseURL+"/"+latestDocument)
	}

	resultURL := fmt.Sprintf("%s/%s/%s", baseURL, version, resultDocument)
	body, err = c.fetch(ctx, resultURL)
	if err != nil {
		return version, nil, err
	}

	collective := domain.CollectiveResult{}
	if err := json.Unmarshal(body, &collective); err != nil {
		return version, nil, zerr.With(zerr.Wrap(err, domain.ErrRemoteParseFailed.Error()), "url", resultURL)
	}
	return version, collective, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	op := func() error {
		data, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		body = data
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.interval), Attempts-1),
		ctx,
	)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRemoteRequestFailed.Error()), "url", url)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, zerr.With(zerr.New("server error"), "status", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(zerr.With(zerr.New("unexpected status"), "status", resp.StatusCode))
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}
