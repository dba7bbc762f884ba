package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/internal/service/planner"
)

// plannerService defines the minimal interface needed by PlannerHandler.
type plannerService interface {
	Week(ctx context.Context) (planner.WeekPlan, error)
	SaveWeek(ctx context.Context, input planner.SaveWeekInput) (planner.WeekPlan, error)
	SetDay(ctx context.Context, input planner.SetDayInput) (*domain.DaySchedule, error)
	AddFocusArea(ctx context.Context, name string) ([]string, error)
	RemoveFocusArea(ctx context.Context, name string) ([]string, error)
}

// PlannerHandler serves weekly-schedule and focus-area endpoints.
type PlannerHandler struct {
	svc plannerService
	log *slog.Logger
}

// NewPlannerHandler creates a PlannerHandler.
func NewPlannerHandler(svc plannerService, logger *slog.Logger) *PlannerHandler {
	return &PlannerHandler{svc: svc, log: logger.With("handler", "planner")}
}

type dayScheduleRequest struct {
	DayOfWeek  string   `json:"dayOfWeek"`
	WorkMode   string   `json:"workMode"`
	FocusAreas []string `json:"focusAreas"`
}

type saveWeekRequest struct {
	Days []dayScheduleRequest `json:"days"`
}

type focusAreaRequest struct {
	Name string `json:"name"`
}

type dayScheduleResponse struct {
	DayOfWeek  string   `json:"dayOfWeek"`
	WorkMode   string   `json:"workMode"`
	FocusAreas []string `json:"focusAreas"`
}

type weekPlanResponse struct {
	Days       []dayScheduleResponse `json:"days"`
	FocusAreas []string              `json:"focusAreas"`
}

// Week handles GET /schedule.
func (h *PlannerHandler) Week(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.Week(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toWeekPlanResponse(plan))
}

// SaveWeek handles PUT /schedule. The whole weekly schedule is replaced.
func (h *PlannerHandler) SaveWeek(w http.ResponseWriter, r *http.Request) {
	var req saveWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	days := make([]domain.DaySchedule, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, toDaySchedule(d))
	}

	plan, err := h.svc.SaveWeek(r.Context(), planner.SaveWeekInput{Days: days})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toWeekPlanResponse(plan))
}

// SetDay handles PUT /schedule/{day}.
func (h *PlannerHandler) SetDay(w http.ResponseWriter, r *http.Request) {
	var req dayScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	day, err := h.svc.SetDay(r.Context(), planner.SetDayInput{
		DayOfWeek:  r.PathValue("day"),
		WorkMode:   domain.WorkMode(req.WorkMode),
		FocusAreas: req.FocusAreas,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDayScheduleResponse(*day))
}

// AddFocusArea handles POST /focus-areas.
func (h *PlannerHandler) AddFocusArea(w http.ResponseWriter, r *http.Request) {
	var req focusAreaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	areas, err := h.svc.AddFocusArea(r.Context(), req.Name)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string][]string{"focusAreas": areas})
}

// RemoveFocusArea handles DELETE /focus-areas/{name}.
func (h *PlannerHandler) RemoveFocusArea(w http.ResponseWriter, r *http.Request) {
	areas, err := h.svc.RemoveFocusArea(r.Context(), r.PathValue("name"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"focusAreas": areas})
}

func toDaySchedule(req dayScheduleRequest) domain.DaySchedule {
	return domain.DaySchedule{
		DayOfWeek:  req.DayOfWeek,
		WorkMode:   domain.WorkMode(req.WorkMode),
		FocusAreas: req.FocusAreas,
	}
}

func toDayScheduleResponse(day domain.DaySchedule) dayScheduleResponse {
	resp := dayScheduleResponse{
		DayOfWeek:  day.DayOfWeek,
		WorkMode:   string(day.WorkMode),
		FocusAreas: day.FocusAreas,
	}
	if resp.FocusAreas == nil {
		resp.FocusAreas = []string{}
	}
	return resp
}

func toWeekPlanResponse(plan planner.WeekPlan) weekPlanResponse {
	days := make([]dayScheduleResponse, 0, len(plan.Days))
	for _, day := range plan.Days {
		days = append(days, toDayScheduleResponse(day))
	}

	areas := plan.FocusAreas
	if areas == nil {
		areas = []string{}
	}
	return weekPlanResponse{Days: days, FocusAreas: areas}
}
