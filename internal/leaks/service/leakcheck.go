package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/zkvault/zkvault/internal/errors"
)

// LeakCheck checks an email address against the LeakCheck public API.
type LeakCheck struct {
	apiURL string
	client *httpClient
}

// NewLeakCheck creates a LeakCheck provider. Every call is bounded by timeout.
func NewLeakCheck(apiURL string, timeout time.Duration) *LeakCheck {
	return &LeakCheck{
		apiURL: apiURL,
		client: newHTTPClient(timeout),
	}
}

// Name returns the provider name used in logs.
func (l *LeakCheck) Name() string {
	return "leakcheck"
}

// Check reports whether the email appears in any leak. success=false is the
// API's answer for addresses it has no record of.
func (l *LeakCheck) Check(ctx context.Context, email string) (bool, error) {
	endpoint, err := url.Parse(l.apiURL)
	if err != nil {
		return false, apperrors.Wrap(errRequestFailed, "invalid leakcheck URL")
	}
	query := endpoint.Query()
	query.Set("check", email)
	endpoint.RawQuery = query.Encode()

	status, body, err := l.client.get(ctx, endpoint.String(), nil)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		return false, unexpectedStatus(status)
	}

	var payload struct {
		Success bool `json:"success"`
		Found   int  `json:"found"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return false, apperrors.Wrap(errRequestFailed, "malformed leakcheck response")
	}

	if !payload.Success {
		return false, nil
	}
	return payload.Found > 0, nil
}
