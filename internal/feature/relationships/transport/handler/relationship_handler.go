// Package handler provides HTTP handlers for the relationship map.
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
	"tend_backend/internal/feature/relationships/domain/entity"
	"tend_backend/internal/feature/relationships/transport/http/dto"
	"tend_backend/internal/feature/relationships/usecase"
)

// RelationshipsUsecase defines the relationship operations the handler needs.
type RelationshipsUsecase interface {
	List(ctx context.Context, ownerEmail string) ([]entity.Relationship, error)
	Get(ctx context.Context, id string) (*entity.Relationship, error)
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Relationship, error)
	Update(ctx context.Context, r *entity.Relationship, patch usecase.Patch) (*entity.Relationship, error)
	Delete(ctx context.Context, id string) error
}

// Access authorizes the caller. Both methods write the error response themselves.
type Access interface {
	Authorize(c *gin.Context, requestedEmail string) (*authentity.User, bool)
	Owns(c *gin.Context, user *authentity.User, ownerEmail string) bool
}

// RelationshipHandler serves /api/relationships.
type RelationshipHandler struct {
	uc     RelationshipsUsecase
	access Access
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(uc RelationshipsUsecase, access Access) *RelationshipHandler {
	return &RelationshipHandler{uc: uc, access: access}
}

// List returns the relationships of ?ownerEmail, newest first.
func (h *RelationshipHandler) List(c *gin.Context) {
	owner := strings.TrimSpace(c.Query("ownerEmail"))
	if owner == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "ownerEmail required"})
		return
	}
	if _, ok := h.access.Authorize(c, owner); !ok {
		return
	}

	rels, err := h.uc.List(c.Request.Context(), owner)
	if err != nil {
		slog.Error("listing relationships failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch relationships"})
		return
	}
	out := make([]dto.RelationshipResponse, 0, len(rels))
	for i := range rels {
		out = append(out, dto.NewRelationshipResponse(&rels[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Create stores a relationship for the body's ownerEmail.
func (h *RelationshipHandler) Create(c *gin.Context) {
	var req dto.CreateRelationshipReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.OwnerEmail) == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing required fields"})
		return
	}
	if _, ok := h.access.Authorize(c, req.OwnerEmail); !ok {
		return
	}

	rel, err := h.uc.Create(c.Request.Context(), usecase.CreateInput{
		OwnerEmail:  req.OwnerEmail,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Details:     req.Details,
	})
	if err != nil {
		h.writeError(c, err, "Failed to save relationship")
		return
	}
	c.JSON(http.StatusCreated, dto.NewRelationshipResponse(rel))
}

// Update patches a relationship the caller owns.
func (h *RelationshipHandler) Update(c *gin.Context) {
	user, ok := h.access.Authorize(c, "")
	if !ok {
		return
	}
	var req dto.UpdateRelationshipReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}
	existing, ok := h.loadOwned(c, user)
	if !ok {
		return
	}

	rel, err := h.uc.Update(c.Request.Context(), existing, usecase.Patch{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Details:     req.Details,
	})
	if err != nil {
		h.writeError(c, err, "Failed to update relationship")
		return
	}
	c.JSON(http.StatusOK, dto.NewRelationshipResponse(rel))
}

// Delete removes a relationship the caller owns.
func (h *RelationshipHandler) Delete(c *gin.Context) {
	user, ok := h.access.Authorize(c, "")
	if !ok {
		return
	}
	existing, ok := h.loadOwned(c, user)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), existing.ID); err != nil {
		h.writeError(c, err, "Failed to delete relationship")
		return
	}
	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}

// loadOwned fetches :id and checks it belongs to user.
func (h *RelationshipHandler) loadOwned(c *gin.Context, user *authentity.User) (*entity.Relationship, bool) {
	rel, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to fetch relationship")
		return nil, false
	}
	if !h.access.Owns(c, user, rel.OwnerEmail) {
		return nil, false
	}
	return rel, true
}

func (h *RelationshipHandler) writeError(c *gin.Context, err error, failure string) {
	switch {
	case errors.Is(err, usecase.ErrRelationshipNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Relationship not found"})
	case errors.Is(err, usecase.ErrMissingFields):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing required fields"})
	case errors.Is(err, usecase.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: `Status must be "on track" or "strained"`})
	default:
		slog.Error(strings.ToLower(failure), "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: failure})
	}
}
