package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/cinecore/catalog/internal/middleware"
)

// envelope mirrors Response with the payload kept raw for per-test decoding.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Payload json.RawMessage `json:"payload"`
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

// perform runs a single handler against a synthetic request. mods adjust the
// context before the call (path params, identity).
func perform(t *testing.T, h echo.HandlerFunc, method, path, body string, mods ...func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := newTestEcho().NewContext(req, rec)
	for _, m := range mods {
		m(c)
	}
	require.NoError(t, h(c))
	return rec
}

// withParams sets path parameters from name/value pairs.
func withParams(pairs ...string) func(echo.Context) {
	return func(c echo.Context) {
		names := make([]string, 0, len(pairs)/2)
		values := make([]string, 0, len(pairs)/2)
		for i := 0; i+1 < len(pairs); i += 2 {
			names = append(names, pairs[i])
			values = append(values, pairs[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
}

// asUser injects the identity normally set by the JWT middleware.
func asUser(id uint64, role string) func(echo.Context) {
	return func(c echo.Context) {
		c.Set(middleware.CtxUserID, id)
		c.Set(middleware.CtxRole, role)
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// payloadInto decodes the envelope payload into dst.
func payloadInto(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Payload, dst))
}
