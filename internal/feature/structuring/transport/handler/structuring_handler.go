// Package handler provides the HTTP endpoints that turn free text into drafts.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tend_backend/internal/api"
	authentity "tend_backend/internal/feature/auth/domain/entity"
	authusecase "tend_backend/internal/feature/auth/usecase"
	"tend_backend/internal/feature/structuring/domain/entity"
	"tend_backend/internal/feature/structuring/transport/http/dto"
	"tend_backend/internal/feature/structuring/usecase"
	"tend_backend/internal/platform/sessionmw"
)

// Structurer defines the drafting operations the handler needs.
type Structurer interface {
	MapConnection(ctx context.Context, text string) (*entity.RelationshipDraft, error)
	CreateNorthStar(ctx context.Context, visionText, currentText string) (*entity.NorthStarDraft, error)
	DesignExperiment(ctx context.Context, text, ownerEmail string) (*entity.ExperimentDraft, error)
}

// Access checks the authenticated caller against an owner email and writes the 403 itself.
type Access interface {
	Owns(c *gin.Context, user *authentity.User, ownerEmail string) bool
}

// StructuringHandler serves the drafting endpoints. Routes are expected behind
// sessionmw.RequireAPI, which puts the caller in the context.
type StructuringHandler struct {
	s      Structurer
	access Access
}

// NewStructuringHandler creates a new StructuringHandler.
func NewStructuringHandler(s Structurer, access Access) *StructuringHandler {
	return &StructuringHandler{s: s, access: access}
}

// MapConnection drafts a relationship from {text}.
func (h *StructuringHandler) MapConnection(c *gin.Context) {
	if _, ok := h.user(c); !ok {
		return
	}
	var req dto.MapConnectionReq
	if !bind(c, &req) {
		return
	}

	d, err := h.s.MapConnection(c.Request.Context(), req.Text)
	if err != nil {
		h.writeError(c, err, "Missing text", "Mapping relationship failed")
		return
	}
	c.JSON(http.StatusOK, d)
}

// CreateNorthStar drafts a north star from {visionText, currentText}.
func (h *StructuringHandler) CreateNorthStar(c *gin.Context) {
	if _, ok := h.user(c); !ok {
		return
	}
	var req dto.CreateNorthStarReq
	if !bind(c, &req) {
		return
	}

	d, err := h.s.CreateNorthStar(c.Request.Context(), req.VisionText, req.CurrentText)
	if err != nil {
		h.writeError(c, err, "Missing vision or current text", "North Star generation failed")
		return
	}
	c.JSON(http.StatusOK, d)
}

// DesignExperiment drafts an experiment from {text, ownerEmail?}. A given ownerEmail
// must be the caller's; it pulls their north star and relationships into the prompt.
func (h *StructuringHandler) DesignExperiment(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	var req dto.DesignExperimentReq
	if !bind(c, &req) {
		return
	}

	owner := authusecase.NormalizeEmail(req.OwnerEmail)
	if owner != "" && !h.access.Owns(c, user, owner) {
		return
	}

	d, err := h.s.DesignExperiment(c.Request.Context(), req.Text, owner)
	if err != nil {
		h.writeError(c, err, "Missing text", "Designing experiment failed")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *StructuringHandler) user(c *gin.Context) (*authentity.User, bool) {
	user, ok := sessionmw.UserFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Authentication required"})
		return nil, false
	}
	return user, true
}

// bind decodes the JSON body into req. An empty body decodes to zero values so
// the missing-input message is reported instead.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

func (h *StructuringHandler) writeError(c *gin.Context, err error, missing, failure string) {
	switch {
	case errors.Is(err, usecase.ErrMissingText):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: missing})
	case errors.Is(err, usecase.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "Drafting is not available"})
	case errors.Is(err, usecase.ErrInvalidOutput):
		slog.Warn("rejected model output", "error", err, "path", c.FullPath())
		c.JSON(http.StatusBadRequest, api.ErrorDetailResponse{Error: failure, Detail: detail(err)})
	default:
		slog.Error("language model request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: failure})
	}
}

// detail drops the sentinel prefix so only the decode or validation reason is shown.
func detail(err error) string {
	return strings.TrimPrefix(err.Error(), usecase.ErrInvalidOutput.Error()+": ")
}
