// Package handler provides HTTP handlers for the north star.
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
	"tend_backend/internal/feature/northstar/domain/entity"
	"tend_backend/internal/feature/northstar/transport/http/dto"
	"tend_backend/internal/feature/northstar/usecase"
)

// NorthStarUsecase defines the north star operations the handler needs.
type NorthStarUsecase interface {
	Get(ctx context.Context, ownerEmail string) (*entity.NorthStar, error)
	Save(ctx context.Context, ns entity.NorthStar) (*entity.NorthStar, error)
}

// Access authorizes the caller against an owner email and writes the error response itself.
type Access interface {
	Authorize(c *gin.Context, requestedEmail string) (*authentity.User, bool)
}

// NorthStarHandler serves /api/northStar.
type NorthStarHandler struct {
	uc     NorthStarUsecase
	access Access
}

// NewNorthStarHandler creates a new NorthStarHandler.
func NewNorthStarHandler(uc NorthStarUsecase, access Access) *NorthStarHandler {
	return &NorthStarHandler{uc: uc, access: access}
}

// Get returns the owner's north star as a zero- or one-element array.
func (h *NorthStarHandler) Get(c *gin.Context) {
	owner := strings.TrimSpace(c.Query("ownerEmail"))
	if owner == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "ownerEmail required"})
		return
	}
	if _, ok := h.access.Authorize(c, owner); !ok {
		return
	}

	ns, err := h.uc.Get(c.Request.Context(), owner)
	if err != nil {
		slog.Error("loading north star failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch north star"})
		return
	}
	if ns == nil {
		c.JSON(http.StatusOK, []entity.NorthStar{})
		return
	}
	c.JSON(http.StatusOK, []entity.NorthStar{*ns})
}

// Save creates or replaces the owner's north star.
func (h *NorthStarHandler) Save(c *gin.Context) {
	var req dto.SaveNorthStarReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.OwnerEmail) == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing required fields"})
		return
	}
	if _, ok := h.access.Authorize(c, req.OwnerEmail); !ok {
		return
	}

	ns, err := h.uc.Save(c.Request.Context(), entity.NorthStar{
		OwnerEmail: req.OwnerEmail,
		Haiku:      req.Haiku,
		North:      req.North,
		East:       req.East,
		South:      req.South,
		West:       req.West,
	})
	switch {
	case errors.Is(err, usecase.ErrMissingFields):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing required fields"})
		return
	case err != nil:
		slog.Error("saving north star failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to save north star"})
		return
	}
	c.JSON(http.StatusCreated, ns)
}
