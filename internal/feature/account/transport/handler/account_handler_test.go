package handler_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tend_backend/internal/feature/account/transport/handler"
	"tend_backend/internal/feature/account/usecase"
	authentity "tend_backend/internal/feature/auth/domain/entity"
	authusecase "tend_backend/internal/feature/auth/usecase"
	"tend_backend/internal/platform/sessionmw"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type tokenValidator map[string]*authentity.User

func (v tokenValidator) ValidateSession(_ context.Context, token string) (*authentity.User, error) {
	if u, ok := v[token]; ok {
		return u, nil
	}
	return nil, authusecase.ErrSessionNotFound
}

type mockAccountUsecase struct {
	deleted []string
	err     error
}

func (m *mockAccountUsecase) DeleteAccount(_ context.Context, user *authentity.User) (usecase.Deleted, error) {
	if m.err != nil {
		return usecase.Deleted{}, m.err
	}
	m.deleted = append(m.deleted, user.ID)
	return usecase.Deleted{}, nil
}

func setup(uc *mockAccountUsecase) *gin.Engine {
	guard := authusecase.NewAccessGuard(tokenValidator{
		"alice-session": {ID: "u-alice", Email: "alice@example.com"},
	})
	h := handler.NewAccountHandler(uc, sessionmw.New(guard, nil, sessionmw.Cookies{}))
	r := gin.New()
	r.DELETE("/api/delete-account", h.Delete)
	return r
}

func deleteAccount(r *gin.Engine, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/delete-account", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionmw.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAccountHandler_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		token      string
		body       string
		ucErr      error
		wantStatus int
		wantBody   string
		wantCalls  int
	}{
		{name: "missing email", token: "alice-session", body: `{}`, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Email is required"}`},
		{name: "blank email", token: "alice-session", body: `{"email":"   "}`, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Email is required"}`},
		{name: "no session", body: `{"email":"alice@example.com"}`, wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Authentication required"}`},
		{name: "someone else's account", token: "alice-session", body: `{"email":"bob@example.com"}`, wantStatus: http.StatusForbidden, wantBody: `{"error":"Access denied"}`},
		{name: "storage failure", token: "alice-session", body: `{"email":"alice@example.com"}`, ucErr: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantBody: `{"error":"Failed to delete account"}`},
		{
			name:       "own account",
			token:      "alice-session",
			body:       `{"email":"Alice@example.com"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Account and all associated data deleted successfully"}`,
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			uc := &mockAccountUsecase{err: tt.ucErr}
			w := deleteAccount(setup(uc), tt.token, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Len(t, uc.deleted, tt.wantCalls)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, strings.HasPrefix(w.Header().Get("Set-Cookie"), sessionmw.CookieName+"=;"))
			}
		})
	}
}
