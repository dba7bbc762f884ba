package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/internal/service/insight"
)

// insightService defines the minimal interface needed by InsightHandler.
type insightService interface {
	Generate(ctx context.Context, input insight.GenerateInput) (*insight.GenerateResult, error)
	FollowUp(ctx context.Context, input insight.FollowUpInput) (*insight.FollowUpResult, error)
}

// InsightHandler serves insight generation and follow-up chat endpoints.
type InsightHandler struct {
	svc insightService
	log *slog.Logger
}

// NewInsightHandler creates an InsightHandler.
func NewInsightHandler(svc insightService, logger *slog.Logger) *InsightHandler {
	return &InsightHandler{svc: svc, log: logger.With("handler", "insight")}
}

type generateRequest struct {
	Phase            string `json:"phase"`
	MiddayReflection string `json:"middayReflection"`
}

type generateResponse struct {
	Insight json.RawMessage  `json:"insight"`
	Log     dailyLogResponse `json:"log"`
}

type followUpRequest struct {
	Phase    string `json:"phase"`
	Question string `json:"question"`
}

type followUpResponse struct {
	Reply      string                   `json:"reply"`
	Transcript []domain.FollowUpMessage `json:"transcript"`
}

// Generate handles POST /journal/{date}/insight.
func (h *InsightHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Generate(r.Context(), insight.GenerateInput{
		Date:             r.PathValue("date"),
		Phase:            domain.Phase(req.Phase),
		MiddayReflection: req.MiddayReflection,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Insight: result.Raw,
		Log:     toDailyLogResponse(result.Log),
	})
}

// FollowUp handles POST /journal/{date}/follow-up.
func (h *InsightHandler) FollowUp(w http.ResponseWriter, r *http.Request) {
	var req followUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.FollowUp(r.Context(), insight.FollowUpInput{
		Date:     r.PathValue("date"),
		Phase:    domain.Phase(req.Phase),
		Question: req.Question,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, followUpResponse{
		Reply:      result.Reply,
		Transcript: result.Transcript,
	})
}
