package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// APIError represents an error status from the Kalshi API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kalshi api error %d: %s", e.StatusCode, e.Message)
}

// doRequest performs a single HTTP request. There are no retries: a failed
// request fails the caller.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("kalshi request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start),
	)

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}

// get performs a GET request and decodes the JSON body into result.
// Numbers are kept as json.Number so integer cents survive decoding exactly.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, query)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
