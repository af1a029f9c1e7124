// Package handler provides the account deletion endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tend_backend/internal/api"
	"tend_backend/internal/feature/account/transport/http/dto"
	"tend_backend/internal/feature/account/usecase"
	authentity "tend_backend/internal/feature/auth/domain/entity"
	"tend_backend/internal/platform/sessionmw"
)

// AccountUsecase defines the account operations the handler needs.
type AccountUsecase interface {
	DeleteAccount(ctx context.Context, user *authentity.User) (usecase.Deleted, error)
}

// Access authorizes the caller and exposes the session cookie settings.
type Access interface {
	Authorize(c *gin.Context, requestedEmail string) (*authentity.User, bool)
	Cookies() sessionmw.Cookies
}

// AccountHandler serves /api/delete-account.
type AccountHandler struct {
	uc     AccountUsecase
	access Access
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(uc AccountUsecase, access Access) *AccountHandler {
	return &AccountHandler{uc: uc, access: access}
}

// Delete removes the caller's account and everything they own. The body's email
// must be the caller's own.
func (h *AccountHandler) Delete(c *gin.Context) {
	var req dto.DeleteAccountReq
	// A blank email would skip the ownership check, so it counts as missing.
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Email is required"})
		return
	}
	user, ok := h.access.Authorize(c, req.Email)
	if !ok {
		return
	}

	if _, err := h.uc.DeleteAccount(c.Request.Context(), user); err != nil {
		slog.Error("account deletion failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete account"})
		return
	}
	h.access.Cookies().Clear(c)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Account and all associated data deleted successfully"})
}
