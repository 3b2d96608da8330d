package service

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/zkvault/zkvault/internal/errors"
)

const rangePrefixLength = 5

// PwnedPasswords checks a SHA-1 password digest against the Pwned Passwords
// range API. Only the first five hex characters leave the process.
type PwnedPasswords struct {
	baseURL   string
	userAgent string
	client    *httpClient
}

// NewPwnedPasswords creates a Pwned Passwords provider. Every call is bounded by timeout.
func NewPwnedPasswords(baseURL, userAgent string, timeout time.Duration) *PwnedPasswords {
	return &PwnedPasswords{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    newHTTPClient(timeout),
	}
}

// Name returns the provider name used in logs.
func (p *PwnedPasswords) Name() string {
	return "pwnedpasswords"
}

// Check reports whether the digest appears in the corpus. Padding entries
// carry a zero count and never match.
func (p *PwnedPasswords) Check(ctx context.Context, sha1Hex string) (bool, error) {
	digest := strings.ToUpper(sha1Hex)
	if len(digest) <= rangePrefixLength {
		return false, apperrors.Wrap(apperrors.ErrInvalidInput, "sha1 digest is too short")
	}
	prefix, suffix := digest[:rangePrefixLength], digest[rangePrefixLength:]

	header := http.Header{}
	header.Set("User-Agent", p.userAgent)
	header.Set("Add-Padding", "true")

	status, body, err := p.client.get(ctx, p.baseURL+"/range/"+prefix, header)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		return false, unexpectedStatus(status)
	}

	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		candidate, rawCount, ok := strings.Cut(strings.TrimSpace(scanner.Text()), ":")
		if !ok || !strings.EqualFold(candidate, suffix) {
			continue
		}
		count, err := strconv.Atoi(rawCount)
		if err != nil {
			return false, apperrors.Wrap(errRequestFailed, "malformed pwned passwords response")
		}
		return count > 0, nil
	}
	if err := scanner.Err(); err != nil {
		return false, apperrors.Wrap(errRequestFailed, "malformed pwned passwords response")
	}
	return false, nil
}
