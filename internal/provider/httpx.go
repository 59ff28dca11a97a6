package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseBytes bounds how much of a provider response is read.
const maxResponseBytes = 4 << 20

// httpFetcher executes provider requests with a bounded retry policy:
// network errors, timeouts and 5xx responses are retried with backoff,
// 401/403 fail permanently with ErrAuth.
type httpFetcher struct {
	client  *http.Client
	retries int
	backoff time.Duration
}

func newHTTPFetcher(timeout time.Duration, retries int, backoff time.Duration) *httpFetcher {
	return &httpFetcher{
		client:  &http.Client{Timeout: timeout},
		retries: retries,
		backoff: backoff,
	}
}

// do builds and executes the request, returning the response body. The
// request is rebuilt for every attempt so bodies can be re-sent.
func (f *httpFetcher) do(ctx context.Context, build func(ctx context.Context) (*http.Request, error)) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, f.backoff*time.Duration(attempt)); err != nil {
				return nil, err
			}
		}

		req, err := build(ctx)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrTransport, err)
			continue
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, fmt.Errorf("%w: http %d", ErrAuth, resp.StatusCode)
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("%w: http %d", ErrTransport, resp.StatusCode)
			continue
		case resp.StatusCode != http.StatusOK:
			return nil, fmt.Errorf("%w: http %d", ErrTransport, resp.StatusCode)
		case readErr != nil:
			lastErr = fmt.Errorf("%w: %v", ErrTransport, readErr)
			continue
		}

		return body, nil
	}
	return nil, lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
