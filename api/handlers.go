/*
handlers.go - HTTP API handlers for the report engine

PURPOSE:
  Exposes report generation and retrieval via REST API. Handles HTTP
  request/response, JSON serialization and validation, and delegates to
  report.Engine.

ENDPOINTS:
  Reports:
    POST   /api/students/{id}/reports/lesson  Generate (upsert) a lesson report
    POST   /api/students/{id}/reports/month   Generate (upsert) a month report
    POST   /api/students/{id}/reports/course  Generate (upsert) a course report
    GET    /api/students/{id}/reports         Stored report records of a student
    GET    /api/reports/{id}                  Rematerialized report summary

  Scenarios:
    GET    /api/scenarios                     List demo scenarios
    GET    /api/scenarios/current             Currently loaded scenario
    POST   /api/scenarios/load                Reset + load a demo scenario
    POST   /api/scenarios/reset               Clear all data

  Health:
    GET    /healthz

REQUEST FLOW:
  1. Parse path parameters and JSON body
  2. Validate body (go-playground/validator)
  3. Call report.Engine
  4. Convert the summary to a DTO
  5. Map errors to status codes

ERROR HANDLING:
  Errors are returned as {"error": ..., "details": ...} with:
  - 400: Validation errors, kind mismatch, malformed JSON
  - 404: Student, parent, lesson, scope or report not found
  - 500: Everything else (logged)

SECURITY NOTE:
  No authentication or authorization. requested_by is recorded as given.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/warp/academy-engine/academy"
	"github.com/warp/academy-engine/factory"
	"github.com/warp/academy-engine/report"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine   *report.Engine
	Store    academy.Store
	Fixtures *factory.FixtureFactory

	log      *zap.Logger
	validate *validator.Validate

	// Track currently loaded scenario
	mu              sync.RWMutex
	currentScenario string
}

// NewHandler creates a handler over engine and the store it reads from.
// The store's Seeder side is only used by the scenario endpoints.
func NewHandler(engine *report.Engine, store academy.Store, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}

	v := validator.New()
	// Report json names, not Go field names, in validation errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		Engine:   engine,
		Store:    store,
		Fixtures: factory.NewFixtureFactory(),
		log:      log,
		validate: v,
	}
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GenerateLessonReport generates or replaces a student's lesson report.
func (h *Handler) GenerateLessonReport(w http.ResponseWriter, r *http.Request) {
	studentID := academy.StudentID(chi.URLParam(r, "id"))

	var req LessonReportRequest
	if err := h.decode(r, &req); err != nil {
		h.writeDomainError(w, r, "Invalid request body", err)
		return
	}

	summary, err := h.Engine.GenerateLessonReport(r.Context(), studentID, academy.LessonID(req.LessonID), req.Notes, req.RequestedBy)
	if err != nil {
		h.writeDomainError(w, r, "Failed to generate lesson report", err)
		return
	}

	writeJSON(w, http.StatusOK, toReportDTO(summary))
}

// GenerateMonthReport generates or replaces a student's month report.
func (h *Handler) GenerateMonthReport(w http.ResponseWriter, r *http.Request) {
	h.generateScoped(w, r, academy.ReportMonth)
}

// GenerateCourseReport generates or replaces a student's course report.
func (h *Handler) GenerateCourseReport(w http.ResponseWriter, r *http.Request) {
	h.generateScoped(w, r, academy.ReportCourse)
}

func (h *Handler) generateScoped(w http.ResponseWriter, r *http.Request, kind academy.ReportKind) {
	studentID := academy.StudentID(chi.URLParam(r, "id"))

	var req ScopeReportRequest
	if err := h.decode(r, &req); err != nil {
		h.writeDomainError(w, r, "Invalid request body", err)
		return
	}

	summary, err := h.Engine.Generate(r.Context(), report.GenerateRequest{
		Kind:        kind,
		StudentID:   studentID,
		ScopeRef:    req.ScopeID,
		Notes:       req.Notes,
		RequestedBy: req.RequestedBy,
	})
	if err != nil {
		h.writeDomainError(w, r, "Failed to generate "+string(kind)+" report", err)
		return
	}

	writeJSON(w, http.StatusOK, toReportDTO(summary))
}

// ListStudentReports returns the stored report records of a student.
func (h *Handler) ListStudentReports(w http.ResponseWriter, r *http.Request) {
	studentID := academy.StudentID(chi.URLParam(r, "id"))

	records, err := h.Engine.GetStudentReports(r.Context(), studentID)
	if err != nil {
		h.writeDomainError(w, r, "Failed to list reports", err)
		return
	}

	dtos := make([]ReportRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = toReportRecordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetReport returns a stored report with its summary recomputed.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := academy.ReportID(chi.URLParam(r, "id"))

	summary, err := h.Engine.GetReportByID(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, "Failed to get report", err)
		return
	}

	writeJSON(w, http.StatusOK, toReportDTO(summary))
}

// =============================================================================
// HEALTH
// =============================================================================

type pinger interface {
	Ping(ctx context.Context) error
}

// Health reports whether the store is reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.Store.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "Database unreachable", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

// decode reads a JSON body into dst and validates it.
func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &academy.ValidationError{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := h.validate.Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return &academy.ValidationError{Field: ve[0].Field(), Message: ve[0].Tag()}
		}
		return &academy.ValidationError{Field: "body", Message: err.Error()}
	}
	return nil
}

// writeDomainError maps engine errors to HTTP status codes.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case academy.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case academy.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.log.Error(message,
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
