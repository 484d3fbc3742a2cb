package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dine/backend/internal/handler/dto"
	"github.com/dine/backend/internal/middleware"
	"github.com/dine/backend/internal/service"
)

// TutorialHandler serves the tutorials API.
type TutorialHandler struct {
	tutorials *service.TutorialService
}

// NewTutorialHandler creates a new TutorialHandler.
func NewTutorialHandler(tutorials *service.TutorialService) *TutorialHandler {
	return &TutorialHandler{tutorials: tutorials}
}

// RegisterRoutes mounts the tutorial routes under /api/tutorials.
func (h *TutorialHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/tutorials", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Delete("/", h.handleDeleteAll)
		r.Get("/published", h.handleListPublished)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

// decodeTutorialRequest reads the parsed body. Returns false if a response was already sent.
func decodeTutorialRequest(w http.ResponseWriter, r *http.Request) (dto.TutorialRequest, bool) {
	var req dto.TutorialRequest
	if err := middleware.DecodePayload(r, &req); err != nil {
		if errors.Is(err, middleware.ErrPayloadType) {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
			return req, false
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return req, false
	}
	return req, true
}

// withID annotates err with the tutorial id for the client message.
func withID(err error, id string) error {
	return fmt.Errorf("%w with id=%s", err, id)
}

// handleCreate creates a new tutorial.
// @Summary Create a tutorial
// @Tags tutorials
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body dto.TutorialRequest true "Tutorial"
// @Success 201 {object} dto.TutorialResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/tutorials [post]
func (h *TutorialHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeTutorialRequest(w, r)
	if !ok {
		return
	}

	params := service.CreateTutorialParams{}
	if req.Title != nil {
		params.Title = *req.Title
	}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.Published != nil {
		params.Published = bool(*req.Published)
	}

	t, err := h.tutorials.Create(r.Context(), params)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTutorialResponse(t))
}

// handleList lists tutorials, optionally filtered by title.
// @Summary List tutorials
// @Tags tutorials
// @Produce json
// @Param title query string false "Case-insensitive title substring"
// @Success 200 {array} dto.TutorialResponse
// @Router /api/tutorials [get]
func (h *TutorialHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ts, err := h.tutorials.List(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTutorialResponses(ts))
}

// handleListPublished lists published tutorials.
// @Summary List published tutorials
// @Tags tutorials
// @Produce json
// @Success 200 {array} dto.TutorialResponse
// @Router /api/tutorials/published [get]
func (h *TutorialHandler) handleListPublished(w http.ResponseWriter, r *http.Request) {
	ts, err := h.tutorials.ListPublished(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTutorialResponses(ts))
}

// handleGet returns one tutorial.
// @Summary Get a tutorial
// @Tags tutorials
// @Produce json
// @Param id path string true "Tutorial ID"
// @Success 200 {object} dto.TutorialResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tutorials/{id} [get]
func (h *TutorialHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.tutorials.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, withID(err, id))
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTutorialResponse(t))
}

// handleUpdate applies a partial update.
// @Summary Update a tutorial
// @Tags tutorials
// @Accept json
// @Produce json
// @Param id path string true "Tutorial ID"
// @Param request body dto.TutorialRequest true "Fields to change"
// @Success 200 {object} dto.UpdateTutorialResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tutorials/{id} [put]
func (h *TutorialHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, ok := decodeTutorialRequest(w, r)
	if !ok {
		return
	}

	t, err := h.tutorials.Update(r.Context(), id, req.Patch())
	if err != nil {
		respondDomainError(w, withID(err, id))
		return
	}

	respondJSON(w, http.StatusOK, dto.UpdateTutorialResponse{
		Message:  "Tutorial was updated successfully.",
		Tutorial: dto.ToTutorialResponse(t),
	})
}

// handleDelete removes one tutorial.
// @Summary Delete a tutorial
// @Tags tutorials
// @Produce json
// @Param id path string true "Tutorial ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tutorials/{id} [delete]
func (h *TutorialHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.tutorials.Delete(r.Context(), id); err != nil {
		respondDomainError(w, withID(err, id))
		return
	}

	respondJSON(w, http.StatusOK, dto.MessageResponse{Message: "Tutorial was deleted successfully!"})
}

// handleDeleteAll removes every tutorial.
// @Summary Delete all tutorials
// @Tags tutorials
// @Produce json
// @Success 200 {object} dto.DeleteAllResponse
// @Router /api/tutorials [delete]
func (h *TutorialHandler) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.tutorials.DeleteAll(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewDeleteAllResponse(n))
}
