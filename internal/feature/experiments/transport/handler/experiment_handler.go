// Package handler provides HTTP handlers for experiments.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tend_backend/internal/api"
	authentity "tend_backend/internal/feature/auth/domain/entity"
	"tend_backend/internal/feature/experiments/domain/entity"
	"tend_backend/internal/feature/experiments/transport/http/dto"
	"tend_backend/internal/feature/experiments/usecase"
)

// ExperimentsUsecase defines the experiment operations the handler needs.
type ExperimentsUsecase interface {
	List(ctx context.Context, ownerEmail string) ([]entity.Experiment, error)
	Get(ctx context.Context, id string) (*entity.Experiment, error)
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Experiment, error)
	RecordOutcome(ctx context.Context, e *entity.Experiment, out usecase.Outcome) (*entity.Experiment, error)
	Delete(ctx context.Context, id string) error
}

// Access authorizes the caller. Both methods write the error response themselves.
type Access interface {
	Authorize(c *gin.Context, requestedEmail string) (*authentity.User, bool)
	Owns(c *gin.Context, user *authentity.User, ownerEmail string) bool
}

// ExperimentHandler serves /api/experiments.
type ExperimentHandler struct {
	uc     ExperimentsUsecase
	access Access
}

// NewExperimentHandler creates a new ExperimentHandler.
func NewExperimentHandler(uc ExperimentsUsecase, access Access) *ExperimentHandler {
	return &ExperimentHandler{uc: uc, access: access}
}

// List returns the experiments of ?ownerEmail, newest first.
func (h *ExperimentHandler) List(c *gin.Context) {
	owner := strings.TrimSpace(c.Query("ownerEmail"))
	if owner == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "ownerEmail parameter is required"})
		return
	}
	if _, ok := h.access.Authorize(c, owner); !ok {
		return
	}

	exps, err := h.uc.List(c.Request.Context(), owner)
	if err != nil {
		slog.Error("listing experiments failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch experiments"})
		return
	}
	c.JSON(http.StatusOK, exps)
}

// Create stores an experiment for the body's ownerEmail.
func (h *ExperimentHandler) Create(c *gin.Context) {
	var req dto.CreateExperimentReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.OwnerEmail) == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing required fields"})
		return
	}
	if _, ok := h.access.Authorize(c, req.OwnerEmail); !ok {
		return
	}

	exp, err := h.uc.Create(c.Request.Context(), usecase.CreateInput{
		OwnerEmail:   req.OwnerEmail,
		Challenge:    req.Challenge,
		Hypothesis:   req.Hypothesis,
		Intervention: req.Intervention,
		Measure:      req.Measure,
		Learnings:    req.Learnings,
	})
	if err != nil {
		h.writeError(c, err, "Failed to create experiment")
		return
	}
	c.JSON(http.StatusCreated, exp)
}

// Update records the rating and learnings of an experiment the caller owns.
func (h *ExperimentHandler) Update(c *gin.Context) {
	user, ok := h.access.Authorize(c, "")
	if !ok {
		return
	}
	var req dto.OutcomeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}
	outcome, err := req.ToOutcome()
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRating) || errors.Is(err, dto.ErrEmptyOutcome) {
			h.writeError(c, usecase.ErrInvalidRating, "")
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	existing, ok := h.loadOwned(c, user)
	if !ok {
		return
	}
	exp, err := h.uc.RecordOutcome(c.Request.Context(), existing, outcome)
	if err != nil {
		h.writeError(c, err, "Failed to update experiment")
		return
	}
	c.JSON(http.StatusOK, exp)
}

// Delete removes an experiment the caller owns.
func (h *ExperimentHandler) Delete(c *gin.Context) {
	user, ok := h.access.Authorize(c, "")
	if !ok {
		return
	}
	existing, ok := h.loadOwned(c, user)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), existing.ID); err != nil {
		h.writeError(c, err, "Failed to delete experiment")
		return
	}
	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}

func (h *ExperimentHandler) loadOwned(c *gin.Context, user *authentity.User) (*entity.Experiment, bool) {
	exp, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to fetch experiment")
		return nil, false
	}
	if !h.access.Owns(c, user, exp.OwnerEmail) {
		return nil, false
	}
	return exp, true
}

func (h *ExperimentHandler) writeError(c *gin.Context, err error, failure string) {
	switch {
	case errors.Is(err, usecase.ErrExperimentNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Experiment not found"})
	case errors.Is(err, usecase.ErrMissingFields):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing required fields"})
	case errors.Is(err, usecase.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Rating must be an integer between 1 and 5"})
	default:
		slog.Error(strings.ToLower(failure), "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: failure})
	}
}
