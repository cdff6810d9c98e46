/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the store with realistic
	data for demos. Each scenario is a factory fixture document describing
	a family, lessons, scopes and attendance; after loading, reports can be
	generated against it through the report endpoints.

AVAILABLE SCENARIOS:

	october-month:   Month scope with an explicit [L1, L2] list, total 50
	course-term:     Course scope resolved by back-reference, Jan + Feb buckets
	missing-lesson:  Month scope whose second lesson was deleted after attendance

HOW SCENARIOS WORK:
 1. Reset store (clear all data, reports included)
 2. Parse the preset fixture via factory.FixtureFactory
 3. Apply it through the store's Seeder

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "october-month"}

	POST /api/students/student-1/reports/month
	{"scope_id": "Oct-2024", "notes": "Great month"}

ADDING NEW SCENARIOS:
 1. Add a preset document to factory/presets.go
 2. Add an entry to 'scenarios' pointing at it

NOTE:

	Scenarios reset the store. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Report handlers
  - factory/presets.go: Fixture documents
*/
package api

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/warp/academy-engine/factory"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type scenario struct {
	ScenarioDTO
	fixture func() string
}

var scenarios = []scenario{
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "october-month",
			Name:        "October Month",
			Description: "Month scope Oct-2024 with lessons L1 and L2; student paid 20 and 30",
		},
		fixture: factory.OctoberMonthJSON,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "course-term",
			Name:        "Course Term",
			Description: "Course scope Term-1 with implicit membership spanning January and February",
		},
		fixture: factory.CourseTermJSON,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "missing-lesson",
			Name:        "Missing Lesson",
			Description: "Month scope Nov-2024 referencing a lesson deleted after it was attended",
		},
		fixture: factory.MissingLessonJSON,
	},
}

func findScenario(id string) (scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return scenario{}, false
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = s.ScenarioDTO
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	current := h.currentScenario
	h.mu.RUnlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	s, _ := findScenario(current)
	writeJSON(w, http.StatusOK, s.ScenarioDTO)
}

// LoadScenario resets the store and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := h.decode(r, &req); err != nil {
		h.writeDomainError(w, r, "Invalid request body", err)
		return
	}

	s, ok := findScenario(req.ScenarioID)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario", fmt.Errorf("no scenario %q", req.ScenarioID))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	h.currentScenario = ""
	if err := h.Store.Reset(ctx); err != nil {
		h.writeDomainError(w, r, "Failed to reset database", err)
		return
	}
	if _, err := h.Fixtures.Load(ctx, h.Store, s.fixture()); err != nil {
		h.writeDomainError(w, r, "Failed to load scenario", err)
		return
	}
	h.currentScenario = s.ID

	h.log.Info("scenario loaded", zap.String("scenario", s.ID))
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": s.ID})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Store.Reset(r.Context()); err != nil {
		h.writeDomainError(w, r, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
