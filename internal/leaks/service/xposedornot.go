package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/zkvault/zkvault/internal/errors"
)

// XposedOrNot checks an email address against the XposedOrNot breach API.
type XposedOrNot struct {
	baseURL string
	client  *httpClient
}

// NewXposedOrNot creates an XposedOrNot provider. Every call is bounded by timeout.
func NewXposedOrNot(baseURL string, timeout time.Duration) *XposedOrNot {
	return &XposedOrNot{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(timeout),
	}
}

// Name returns the provider name used in logs.
func (x *XposedOrNot) Name() string {
	return "xposedornot"
}

// Check reports whether the email appears in any breach. The API answers
// {"Error":"Not found"} for unknown addresses, sometimes with a 404 status.
func (x *XposedOrNot) Check(ctx context.Context, email string) (bool, error) {
	status, body, err := x.client.get(ctx, x.baseURL+"/check-email/"+url.PathEscape(email), nil)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK && status != http.StatusNotFound {
		return false, unexpectedStatus(status)
	}

	var payload struct {
		Error    string            `json:"Error"`
		Breaches []json.RawMessage `json:"breaches"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return false, apperrors.Wrap(errRequestFailed, "malformed xposedornot response")
	}

	if payload.Error == "Not found" {
		return false, nil
	}
	if status == http.StatusNotFound {
		return false, unexpectedStatus(status)
	}
	return len(payload.Breaches) > 0, nil
}
