package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zkvault/zkvault/internal/errors"
)

// SHA-1 of "password".
const passwordDigest = "5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8"

func TestPwnedPasswords_Check(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		body      string
		wantFound bool
	}{
		{
			name:      "found",
			body:      "003D68EB55068C33ACE09247EE4C639306B:3\r\n1E4C9B93F3F0682250B6CF8331B7EE68FD8:9659365\r\n",
			wantFound: true,
		},
		{
			name: "padding entry",
			body: "1E4C9B93F3F0682250B6CF8331B7EE68FD8:0\r\n",
		},
		{
			name: "absent",
			body: "003D68EB55068C33ACE09247EE4C639306B:3\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/range/5BAA6", r.URL.Path)
				assert.Equal(t, "zkvault-test", r.Header.Get("User-Agent"))
				assert.Equal(t, "true", r.Header.Get("Add-Padding"))
				_, _ = w.Write([]byte(tt.body))
			})
			provider := NewPwnedPasswords(server.URL, "zkvault-test", time.Second)

			found, err := provider.Check(ctx, passwordDigest)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestPwnedPasswords_Check_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("short digest", func(t *testing.T) {
		provider := NewPwnedPasswords("http://127.0.0.1:0", "zkvault-test", time.Second)

		_, err := provider.Check(ctx, "5baa6")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("bad count", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("1E4C9B93F3F0682250B6CF8331B7EE68FD8:many\r\n"))
		})
		provider := NewPwnedPasswords(server.URL, "zkvault-test", time.Second)

		_, err := provider.Check(ctx, passwordDigest)
		assert.ErrorIs(t, err, errRequestFailed)
	})

	t.Run("forbidden", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		provider := NewPwnedPasswords(server.URL, "", time.Second)

		_, err := provider.Check(ctx, passwordDigest)
		assert.ErrorIs(t, err, errRequestFailed)
	})
}
