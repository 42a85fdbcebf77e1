package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/audit-api/internal/audit"
	"github.com/sells-group/audit-api/internal/model"
	"github.com/sells-group/audit-api/internal/ratelimit"
)

type fakeRunner struct {
	report *model.AuditReport
	err    error
	calls  int
	lastIn audit.Input
}

func (f *fakeRunner) Run(_ context.Context, in audit.Input) (*model.AuditReport, error) {
	f.calls++
	f.lastIn = in
	return f.report, f.err
}

func successRunner() *fakeRunner {
	return &fakeRunner{report: &model.AuditReport{
		OverallScore: 72,
		Summary:      "Solid presence with gaps.",
		Categories:   []model.CategoryResult{{Category: "Website & SEO", Score: 70}},
	}}
}

func newTestServer(runner AuditRunner) *Server {
	return New(runner, ratelimit.New(10, time.Hour), nil)
}

const validBody = `{
	"businessName": "Joe's Pizza",
	"city": "Austin, TX",
	"businessType": "Restaurant / Cafe"
}`

func postAudit(t *testing.T, srv *Server, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/audit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(successRunner())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleAudit_Success(t *testing.T) {
	runner := successRunner()
	srv := newTestServer(runner)

	rec := postAudit(t, srv, validBody, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "9", rec.Header().Get("X-RateLimit-Remaining"))

	var report model.AuditReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 72, report.OverallScore)

	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, "Joe's Pizza", runner.lastIn.Request.BusinessName)
	assert.Equal(t, "unknown", runner.lastIn.IP)
}

func TestHandleAudit_ForwardedIdentity(t *testing.T) {
	runner := successRunner()
	srv := newTestServer(runner)

	rec := postAudit(t, srv, validBody, map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.1",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "203.0.113.7", runner.lastIn.IP)
}

func TestHandleAudit_RealIPFallback(t *testing.T) {
	runner := successRunner()
	srv := newTestServer(runner)

	rec := postAudit(t, srv, validBody, map[string]string{"X-Real-IP": "198.51.100.4"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "198.51.100.4", runner.lastIn.IP)
}

func TestHandleAudit_MalformedBody(t *testing.T) {
	runner := successRunner()
	srv := newTestServer(runner)

	rec := postAudit(t, srv, "{not json", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeError(t, rec))
	assert.Equal(t, 0, runner.calls)
}

func TestHandleAudit_ValidationFailure(t *testing.T) {
	runner := successRunner()
	srv := newTestServer(runner)

	rec := postAudit(t, srv, `{"businessName": "", "city": "Austin", "businessType": "Restaurant / Cafe"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "businessName")
	assert.Equal(t, 0, runner.calls)
}

func TestHandleAudit_InvalidBusinessType(t *testing.T) {
	srv := newTestServer(successRunner())

	rec := postAudit(t, srv, `{"businessName": "Joe's", "city": "Austin", "businessType": "Spaceport"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "businessType")
}

func TestHandleAudit_RateLimited(t *testing.T) {
	runner := successRunner()
	srv := New(runner, ratelimit.New(2, time.Hour), nil)

	postAudit(t, srv, validBody, nil)
	postAudit(t, srv, validBody, nil)
	rec := postAudit(t, srv, validBody, nil)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	// The denied request never reaches the pipeline.
	assert.Equal(t, 2, runner.calls)
}

func TestHandleAudit_RateLimitPerIdentity(t *testing.T) {
	runner := successRunner()
	srv := New(runner, ratelimit.New(1, time.Hour), nil)

	first := postAudit(t, srv, validBody, map[string]string{"X-Real-IP": "198.51.100.4"})
	assert.Equal(t, http.StatusOK, first.Code)

	other := postAudit(t, srv, validBody, map[string]string{"X-Real-IP": "198.51.100.5"})
	assert.Equal(t, http.StatusOK, other.Code)

	repeat := postAudit(t, srv, validBody, map[string]string{"X-Real-IP": "198.51.100.4"})
	assert.Equal(t, http.StatusTooManyRequests, repeat.Code)
}

func TestHandleAudit_PipelineErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"timeout", audit.ErrModelTimeout, http.StatusGatewayTimeout, "The analysis took too long. Please try again."},
		{"not configured", audit.ErrNotConfigured, http.StatusInternalServerError, "Service is not configured. Please try again later."},
		{"model failure", audit.ErrModelFailed, http.StatusInternalServerError, "Failed to generate the audit. Please try again."},
		{"bad report", audit.ErrBadReport, http.StatusInternalServerError, "Failed to generate the audit. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&fakeRunner{err: tt.err})
			rec := postAudit(t, srv, validBody, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rec))
		})
	}
}
