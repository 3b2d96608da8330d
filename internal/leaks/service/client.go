// Package service implements the breach lookup providers. Each provider answers
// found or not found, and any error means the provider is unavailable.
package service

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	apperrors "github.com/zkvault/zkvault/internal/errors"
)

const maxResponseBytes = 2 << 20

var (
	errRequestTimeout = apperrors.New("provider request timed out")
	errRequestFailed  = apperrors.New("provider request failed")
)

// httpClient performs bounded GET requests against a provider. Errors never
// carry the request URL since it contains the queried identifier.
type httpClient struct {
	client  *retryablehttp.Client
	timeout time.Duration
}

func newHTTPClient(timeout time.Duration) *httpClient {
	client := retryablehttp.NewClient()
	client.RetryMax = 1
	client.RetryWaitMin = 50 * time.Millisecond
	client.RetryWaitMax = 250 * time.Millisecond
	// The default logger prints request URLs.
	client.Logger = nil

	return &httpClient{client: client, timeout: timeout}
}

// get returns the status code and the body of the response.
func (h *httpClient) get(ctx context.Context, rawURL string, header http.Header) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, apperrors.Wrap(errRequestFailed, "invalid provider URL")
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, errRequestTimeout
		}
		return 0, nil, errRequestFailed
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, errRequestTimeout
		}
		return 0, nil, apperrors.Wrap(errRequestFailed, "failed to read response body")
	}

	return resp.StatusCode, body, nil
}

func unexpectedStatus(status int) error {
	return apperrors.Wrapf(errRequestFailed, "unexpected status %d", status)
}
