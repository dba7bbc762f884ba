package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/internal/service/journal"
)

// journalService defines the minimal interface needed by JournalHandler.
type journalService interface {
	Today(ctx context.Context) (journal.DayView, error)
	Get(ctx context.Context, date string) (journal.DayView, error)
	UpdateEntry(ctx context.Context, input journal.UpdateEntryInput) (journal.DayView, error)
	Week(ctx context.Context, date string) ([]domain.DailyLog, error)
	ResetDay(ctx context.Context, date string) (journal.DayView, error)
	CompletePhase(ctx context.Context, input journal.PhaseInput) (journal.DayView, error)
	ReopenPhase(ctx context.Context, input journal.PhaseInput) (journal.DayView, error)
	ToggleActionItem(ctx context.Context, input journal.ToggleActionItemInput) (journal.DayView, error)
}

// JournalHandler serves daily-log endpoints.
type JournalHandler struct {
	svc journalService
	log *slog.Logger
}

// NewJournalHandler creates a JournalHandler.
func NewJournalHandler(svc journalService, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{svc: svc, log: logger.With("handler", "journal")}
}

type updateEntryRequest struct {
	Situation        *string `json:"situation"`
	MiddayAdjustment *string `json:"middayAdjustment"`
	Win              *string `json:"win"`
	Weakness         *string `json:"weakness"`
	TomorrowsPrep    *string `json:"tomorrowsPrep"`
	WorkMode         *string `json:"workMode"`
	EnergyLevel      *string `json:"energyLevel"`
}

type phaseRequest struct {
	Phase string `json:"phase"`
}

type toggleActionItemRequest struct {
	Phase string `json:"phase"`
	Index int    `json:"index"`
}

type dayViewResponse struct {
	Log    dailyLogResponse   `json:"log"`
	Phases domain.PhaseStates `json:"phases"`
}

type dailyLogResponse struct {
	ID                   string                      `json:"id"`
	Date                 string                      `json:"date"`
	Situation            string                      `json:"situation"`
	MorningInsight       json.RawMessage             `json:"morningInsight,omitempty"`
	MorningFollowUp      []domain.FollowUpMessage    `json:"morningFollowUp"`
	MiddayInsight        json.RawMessage             `json:"middayInsight,omitempty"`
	MiddayAdjustment     string                      `json:"middayAdjustment"`
	MiddayFollowUp       []domain.FollowUpMessage    `json:"middayFollowUp"`
	EveningInsight       json.RawMessage             `json:"eveningInsight,omitempty"`
	EveningFollowUp      []domain.FollowUpMessage    `json:"eveningFollowUp"`
	MorningComplete      bool                        `json:"morningComplete"`
	MiddayComplete       bool                        `json:"middayComplete"`
	EveningComplete      bool                        `json:"eveningComplete"`
	Win                  string                      `json:"win"`
	Weakness             string                      `json:"weakness"`
	TomorrowsPrep        string                      `json:"tomorrowsPrep"`
	CompletedActionItems domain.CompletedActionItems `json:"completedActionItems"`
	WorkMode             string                      `json:"workMode"`
	EnergyLevel          string                      `json:"energyLevel"`
}

// Today handles GET /journal/today.
func (h *JournalHandler) Today(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Today(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDayViewResponse(view))
}

// Get handles GET /journal/{date}.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Get(r.Context(), r.PathValue("date"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDayViewResponse(view))
}

// Week handles GET /journal/week. An optional ?date= query anchors the week;
// it defaults to the current week.
func (h *JournalHandler) Week(w http.ResponseWriter, r *http.Request) {
	logs, err := h.svc.Week(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]dailyLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, toDailyLogResponse(&logs[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Update handles PATCH /journal/{date}.
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.svc.UpdateEntry(r.Context(), journal.UpdateEntryInput{
		Date:             r.PathValue("date"),
		Situation:        req.Situation,
		MiddayAdjustment: req.MiddayAdjustment,
		Win:              req.Win,
		Weakness:         req.Weakness,
		TomorrowsPrep:    req.TomorrowsPrep,
		WorkMode:         req.WorkMode,
		EnergyLevel:      req.EnergyLevel,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDayViewResponse(view))
}

// Reset handles DELETE /journal/{date}. The row survives with all journal
// content cleared.
func (h *JournalHandler) Reset(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.ResetDay(r.Context(), r.PathValue("date"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDayViewResponse(view))
}

// CompletePhase handles POST /journal/{date}/phases/complete.
func (h *JournalHandler) CompletePhase(w http.ResponseWriter, r *http.Request) {
	var req phaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.svc.CompletePhase(r.Context(), journal.PhaseInput{
		Date:  r.PathValue("date"),
		Phase: domain.Phase(req.Phase),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDayViewResponse(view))
}

// ReopenPhase handles POST /journal/{date}/phases/reopen.
func (h *JournalHandler) ReopenPhase(w http.ResponseWriter, r *http.Request) {
	var req phaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.svc.ReopenPhase(r.Context(), journal.PhaseInput{
		Date:  r.PathValue("date"),
		Phase: domain.Phase(req.Phase),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDayViewResponse(view))
}

// ToggleActionItem handles POST /journal/{date}/action-items/toggle.
func (h *JournalHandler) ToggleActionItem(w http.ResponseWriter, r *http.Request) {
	var req toggleActionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.svc.ToggleActionItem(r.Context(), journal.ToggleActionItemInput{
		Date:  r.PathValue("date"),
		Phase: domain.Phase(req.Phase),
		Index: req.Index,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDayViewResponse(view))
}

func toDayViewResponse(view journal.DayView) dayViewResponse {
	return dayViewResponse{
		Log:    toDailyLogResponse(view.Log),
		Phases: view.Phases,
	}
}

func toDailyLogResponse(log *domain.DailyLog) dailyLogResponse {
	resp := dailyLogResponse{
		ID:                   log.ID.String(),
		Date:                 log.Date,
		Situation:            log.Situation,
		MorningInsight:       log.MorningInsight,
		MorningFollowUp:      log.MorningFollowUp,
		MiddayInsight:        log.MiddayInsight,
		MiddayAdjustment:     log.MiddayAdjustment,
		MiddayFollowUp:       log.MiddayFollowUp,
		EveningInsight:       log.EveningInsight,
		EveningFollowUp:      log.EveningFollowUp,
		MorningComplete:      log.MorningComplete,
		MiddayComplete:       log.MiddayComplete,
		EveningComplete:      log.EveningComplete,
		Win:                  log.Win,
		Weakness:             log.Weakness,
		TomorrowsPrep:        log.TomorrowsPrep,
		CompletedActionItems: log.CompletedActionItems,
		WorkMode:             log.WorkMode,
		EnergyLevel:          log.EnergyLevel,
	}

	// Transcripts serialize as [] rather than null.
	if resp.MorningFollowUp == nil {
		resp.MorningFollowUp = []domain.FollowUpMessage{}
	}
	if resp.MiddayFollowUp == nil {
		resp.MiddayFollowUp = []domain.FollowUpMessage{}
	}
	if resp.EveningFollowUp == nil {
		resp.EveningFollowUp = []domain.FollowUpMessage{}
	}
	return resp
}
