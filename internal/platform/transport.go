package platform

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/alumni/internal/log"
)

// RequestIDHeader carries a per-request UUID so client and server logs can be joined
const RequestIDHeader = "X-Request-ID"

// authTransport attaches the stored bearer token to every request and reports
// every 401 response, whichever call made the request.
type authTransport struct {
	base           http.RoundTripper
	tokens         TokenSource
	onUnauthorized func(*http.Request)
	userAgent      string
	logger         *log.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := uuid.NewString()
	ctx := log.WithRequestID(req.Context(), id)

	// A RoundTripper must not modify the caller's request.
	req = req.Clone(ctx)
	req.Header.Set(RequestIDHeader, id)
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	if req.Header.Get("Authorization") == "" && t.tokens != nil {
		token, err := t.tokens.Token()
		if err != nil {
			t.logger.WithError(err).WarnContext(ctx, "could not read stored token, sending request without credentials")
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	t.logger.DebugContext(ctx, "request", "method", req.Method, "path", req.URL.Path,
		"authenticated", req.Header.Get("Authorization") != "")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.DebugContext(ctx, "request failed", "method", req.Method, "path", req.URL.Path, "error", err.Error())
		return nil, err
	}

	t.logger.DebugContext(ctx, "response", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized && t.onUnauthorized != nil {
		t.logger.InfoContext(ctx, "authorization denied, invalidating session", "path", req.URL.Path)
		t.onUnauthorized(req)
	}

	return resp, nil
}
