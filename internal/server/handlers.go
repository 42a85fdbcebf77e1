package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/audit-api/internal/audit"
	"github.com/sells-group/audit-api/internal/model"
)

// AuditRunner runs the audit pipeline for one validated request.
type AuditRunner interface {
	Run(ctx context.Context, in audit.Input) (*model.AuditReport, error)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAudit is the audit entry point. Rate-limit denials and request
// validation failures return before the pipeline starts and record no
// lead; everything past this point is the service's responsibility.
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	id := clientIdentifier(r)

	rl := s.limiter.Check(id)
	if !rl.Allowed {
		w.Header().Set("X-RateLimit-Remaining", "0")
		writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.")
		return
	}

	var req model.AuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, eris.Cause(err).Error())
		return
	}

	report, err := s.svc.Run(r.Context(), audit.Input{Request: req, IP: id})
	if err != nil {
		status, msg := mapPipelineError(err)
		writeError(w, status, msg)
		return
	}

	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(rl.Remaining))
	writeJSON(w, http.StatusOK, report)
}

// mapPipelineError converts pipeline sentinels into caller-safe statuses.
// Upstream detail never reaches the client.
func mapPipelineError(err error) (int, string) {
	switch {
	case eris.Is(err, audit.ErrModelTimeout):
		return http.StatusGatewayTimeout, "The analysis took too long. Please try again."
	case eris.Is(err, audit.ErrNotConfigured):
		return http.StatusInternalServerError, "Service is not configured. Please try again later."
	default:
		return http.StatusInternalServerError, "Failed to generate the audit. Please try again."
	}
}

// clientIdentifier extracts the caller identity from proxy headers,
// defaulting to "unknown".
func clientIdentifier(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, found := strings.Cut(fwd, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return strings.TrimSpace(real)
	}
	return "unknown"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
