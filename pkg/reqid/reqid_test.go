package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/sudoku/pkg/reqid"
)

func run(header string) (ctxID, respID string) {
	h := reqid.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctxID = reqid.FromCtx(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(reqid.Header, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return ctxID, rec.Header().Get(reqid.Header)
}

func TestMiddlewareGeneratesID(t *testing.T) {
	ctxID, respID := run("")
	assert.Equal(t, ctxID, respID)
	parsed, err := uuid.Parse(ctxID)
	assert.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestMiddlewareHonoursUpstreamID(t *testing.T) {
	ctxID, respID := run("gateway-123")
	assert.Equal(t, "gateway-123", ctxID)
	assert.Equal(t, "gateway-123", respID)
}

func TestMiddlewareReplacesUnsafeID(t *testing.T) {
	for _, bad := range []string{"a b", "evil\"quote", strings.Repeat("x", 65)} {
		ctxID, _ := run(bad)
		assert.NotEqual(t, bad, ctxID)
		assert.Len(t, ctxID, 36)
	}
}
