package reputation

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://api.abuseipdb.com"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "AIPDBQuery/1.0"
	maxBodyBytes     = 1 << 20
)

// Config fixes the client behavior for the process lifetime. Zero values
// fall back to working defaults; only Key has no default.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Key       string
}

// Client queries the AbuseIPDB v2 check endpoint. One client and its
// underlying transport serve every lookup in a session.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient normalizes cfg and builds the long-lived HTTP client. The
// transport pins TLS to versions 1.2 and 1.3.
func NewClient(cfg Config) *Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   cfg.Timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   cfg.Timeout,
				ExpectContinueTimeout: cfg.Timeout,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
					MaxVersion: tls.VersionTLS13,
				},
			},
		},
	}
}

// QueryAddress looks up one address and folds every possible result, 2xx or
// not, into an Outcome. It never returns an error: the caller treats all
// failures as render-and-continue.
func (c *Client) QueryAddress(address string) Outcome {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), c.client.Timeout)
	defer cancel()

	// The address was validated before we got here and is inserted
	// verbatim; the API expects it unencoded.
	endpoint := fmt.Sprintf("%s/api/v2/check?maxAgeInDays=1&ipAddress=%s", c.cfg.BaseURL, address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Outcome{Reason: fmt.Sprintf("build request: %v", err), Elapsed: time.Since(start)}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Key", c.cfg.Key)

	resp, err := c.client.Do(req)
	if err != nil {
		return Outcome{Reason: c.describeTransportError(err), Elapsed: time.Since(start)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		return Outcome{Reason: "HTTP " + resp.Status, Elapsed: time.Since(start)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Outcome{Reason: fmt.Sprintf("read response: %v", err), Elapsed: time.Since(start)}
	}

	text := string(body)
	var rec Record
	rec.Score, rec.HasScore = ExtractInteger(text, "abuseConfidenceScore")
	rec.ISP, rec.HasISP = ExtractString(text, "isp")
	rec.UsageType, rec.HasUsageType = ExtractString(text, "usageType")
	rec.CountryCode, rec.HasCountryCode = ExtractString(text, "countryCode")

	return Outcome{
		OK:      true,
		Record:  rec,
		Bytes:   int64(len(body)),
		Elapsed: time.Since(start),
	}
}

// describeTransportError turns the layered errors out of net/http into the
// single line shown at the prompt.
func (c *Client) describeTransportError(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Sprintf("request timed out after %s", c.client.Timeout)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return err.Error()
}
