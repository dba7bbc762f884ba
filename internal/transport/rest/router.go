package rest

import (
	"net/http"

	"github.com/mindflowhq/mindflow-backend/internal/transport/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health  *HealthHandler
	Catalog *CatalogHandler
	Journal *JournalHandler
	Planner *PlannerHandler
	Insight *InsightHandler
}

// NewRouter mounts all routes. Health endpoints are public; everything under
// /api/v1 goes through the auth middleware.
func NewRouter(h Handlers, auth middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	api := http.NewServeMux()

	api.HandleFunc("GET /api/v1/challenges", h.Catalog.ListChallenges)
	api.HandleFunc("POST /api/v1/challenges", h.Catalog.CreateChallenge)
	api.HandleFunc("PATCH /api/v1/challenges/{id}", h.Catalog.UpdateChallenge)
	api.HandleFunc("DELETE /api/v1/challenges/{id}", h.Catalog.DeleteChallenge)

	api.HandleFunc("GET /api/v1/wisdom", h.Catalog.ListWisdom)
	api.HandleFunc("POST /api/v1/wisdom", h.Catalog.CreateWisdom)
	api.HandleFunc("PATCH /api/v1/wisdom/{id}", h.Catalog.UpdateWisdom)
	api.HandleFunc("DELETE /api/v1/wisdom/{id}", h.Catalog.DeleteWisdom)

	api.HandleFunc("GET /api/v1/schedule", h.Planner.Week)
	api.HandleFunc("PUT /api/v1/schedule", h.Planner.SaveWeek)
	api.HandleFunc("PUT /api/v1/schedule/{day}", h.Planner.SetDay)
	api.HandleFunc("POST /api/v1/focus-areas", h.Planner.AddFocusArea)
	api.HandleFunc("DELETE /api/v1/focus-areas/{name}", h.Planner.RemoveFocusArea)

	api.HandleFunc("GET /api/v1/journal/today", h.Journal.Today)
	api.HandleFunc("GET /api/v1/journal/week", h.Journal.Week)
	api.HandleFunc("GET /api/v1/journal/{date}", h.Journal.Get)
	api.HandleFunc("PATCH /api/v1/journal/{date}", h.Journal.Update)
	api.HandleFunc("DELETE /api/v1/journal/{date}", h.Journal.Reset)
	api.HandleFunc("POST /api/v1/journal/{date}/phases/complete", h.Journal.CompletePhase)
	api.HandleFunc("POST /api/v1/journal/{date}/phases/reopen", h.Journal.ReopenPhase)
	api.HandleFunc("POST /api/v1/journal/{date}/action-items/toggle", h.Journal.ToggleActionItem)

	api.HandleFunc("POST /api/v1/journal/{date}/insight", h.Insight.Generate)
	api.HandleFunc("POST /api/v1/journal/{date}/follow-up", h.Insight.FollowUp)

	mux.Handle("/api/v1/", auth(api))

	return mux
}
