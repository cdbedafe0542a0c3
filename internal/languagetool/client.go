// Package languagetool talks to a LanguageTool-compatible grammar-checking
// endpoint. One POST per chunk, bounded timeout, typed decode of the
// "matches" list. Callers treat every error as per-chunk and recoverable.
package languagetool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"spellfix/internal/egress"
)

const maxErrorBodyBytes = 2048

var (
	ErrUnavailable = errors.New("grammar service unavailable")
	ErrRateLimited = errors.New("grammar service rate limited")
)

// Client posts chunk text to a fixed endpoint over one reused connection.
type Client struct {
	endpoint string
	language string
	client   *http.Client
	logger   *slog.Logger
}

// NewClient validates the endpoint URL and pins the HTTP transport to its
// host.
func NewClient(endpoint, language string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("endpoint scheme %q not supported", parsed.Scheme)
	}
	if parsed.Hostname() == "" {
		return nil, fmt.Errorf("endpoint %q has no host", endpoint)
	}
	if logger == nil {
		logger = slog.Default()
	}
	transport := egress.NewHostRoundTripper(http.DefaultTransport, parsed.Hostname())
	return &Client{
		endpoint: endpoint,
		language: language,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: logger.With("component", "languagetool"),
	}, nil
}

// Check submits one chunk and returns the service's match list.
func (c *Client) Check(ctx context.Context, text string) ([]Match, error) {
	form := url.Values{
		"language": {c.language},
		"text":     {text},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	start := time.Now()
	c.logger.Debug("languagetool.check", "request_id", requestID, "chars", utf8.RuneCountInString(text))

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, egress.ErrBlocked) {
			return nil, egress.ErrBlocked
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode >= 500 {
		return nil, ErrUnavailable
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("languagetool error: %s - %s", resp.Status, strings.TrimSpace(string(errorBody)))
	}

	var decoded checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	c.logger.Debug("languagetool.check_done",
		"request_id", requestID,
		"matches", len(decoded.Matches),
		"elapsed", time.Since(start))
	return decoded.Matches, nil
}
