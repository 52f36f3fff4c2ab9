package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/question-api/internal/api/shared"
	"github.com/stretchr/testify/require"
)

const (
	testUserID  = "507f1f77bcf86cd799439011"
	testPaperID = "65a1b2c3d4e5f60718293a4b"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRequest builds a request with an optional JSON body, path id and identity.
func newRequest(t *testing.T, method, target string, body interface{}, id, userID string) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	ctx := req.Context()
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	if userID != "" {
		ctx = shared.WithUserID(ctx, userID)
	}
	return req.WithContext(ctx)
}

type testEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body"`
}

// decodeEnvelope checks that the response carries exactly code, message and
// body, and that code matches the HTTP status.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) testEnvelope {
	t.Helper()

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &keys))
	require.Len(t, keys, 3, "envelope keys: %v", keys)
	for _, k := range []string{"code", "message", "body"} {
		require.Contains(t, keys, k)
	}

	var env testEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, rr.Code, env.Code)
	return env
}

func strPtr(s string) *string {
	return &s
}
