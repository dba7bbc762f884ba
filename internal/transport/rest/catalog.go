package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/internal/service/catalog"
)

// catalogService defines the minimal interface needed by CatalogHandler.
type catalogService interface {
	ListChallenges(ctx context.Context) ([]domain.Challenge, error)
	CreateChallenge(ctx context.Context, input catalog.CreateChallengeInput) (*domain.Challenge, error)
	UpdateChallenge(ctx context.Context, input catalog.UpdateChallengeInput) (*domain.Challenge, error)
	DeleteChallenge(ctx context.Context, input catalog.DeleteChallengeInput) error
	ListWisdom(ctx context.Context) ([]domain.WisdomSource, error)
	CreateWisdom(ctx context.Context, input catalog.CreateWisdomInput) (*domain.WisdomSource, error)
	UpdateWisdom(ctx context.Context, input catalog.UpdateWisdomInput) (*domain.WisdomSource, error)
	DeleteWisdom(ctx context.Context, input catalog.DeleteWisdomInput) error
}

// CatalogHandler serves challenge and wisdom-library endpoints.
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger.With("handler", "catalog")}
}

type challengeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type challengeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type wisdomRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Tag         *string `json:"tag"`
	IsActive    *bool   `json:"isActive"`
}

type wisdomResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListChallenges handles GET /challenges.
func (h *CatalogHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListChallenges(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]challengeResponse, 0, len(list))
	for i := range list {
		out = append(out, toChallengeResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateChallenge handles POST /challenges.
func (h *CatalogHandler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.CreateChallenge(r.Context(), catalog.CreateChallengeInput{
		Name:        stringValue(req.Name),
		Description: stringValue(req.Description),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toChallengeResponse(c))
}

// UpdateChallenge handles PATCH /challenges/{id}.
func (h *CatalogHandler) UpdateChallenge(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.UpdateChallenge(r.Context(), catalog.UpdateChallengeInput{
		ChallengeID: id,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toChallengeResponse(c))
}

// DeleteChallenge handles DELETE /challenges/{id}.
func (h *CatalogHandler) DeleteChallenge(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteChallenge(r.Context(), catalog.DeleteChallengeInput{ChallengeID: id}); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListWisdom handles GET /wisdom.
func (h *CatalogHandler) ListWisdom(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListWisdom(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]wisdomResponse, 0, len(list))
	for i := range list {
		out = append(out, toWisdomResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateWisdom handles POST /wisdom.
func (h *CatalogHandler) CreateWisdom(w http.ResponseWriter, r *http.Request) {
	var req wisdomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws, err := h.svc.CreateWisdom(r.Context(), catalog.CreateWisdomInput{
		Name:        stringValue(req.Name),
		Description: stringValue(req.Description),
		Tag:         stringValue(req.Tag),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWisdomResponse(ws))
}

// UpdateWisdom handles PATCH /wisdom/{id}.
func (h *CatalogHandler) UpdateWisdom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req wisdomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws, err := h.svc.UpdateWisdom(r.Context(), catalog.UpdateWisdomInput{
		WisdomID:    id,
		Name:        req.Name,
		Description: req.Description,
		Tag:         req.Tag,
		IsActive:    req.IsActive,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toWisdomResponse(ws))
}

// DeleteWisdom handles DELETE /wisdom/{id}.
func (h *CatalogHandler) DeleteWisdom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteWisdom(r.Context(), catalog.DeleteWisdomInput{WisdomID: id}); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toChallengeResponse(c *domain.Challenge) challengeResponse {
	return challengeResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toWisdomResponse(ws *domain.WisdomSource) wisdomResponse {
	return wisdomResponse{
		ID:          ws.ID.String(),
		Name:        ws.Name,
		Description: ws.Description,
		Tag:         ws.Tag,
		IsActive:    ws.IsActive,
		CreatedAt:   ws.CreatedAt,
		UpdatedAt:   ws.UpdatedAt,
	}
}

// pathUUID parses the named path segment as a UUID, writing a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
