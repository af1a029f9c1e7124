package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "tend_backend/internal/feature/auth/domain/entity"
	authusecase "tend_backend/internal/feature/auth/usecase"
	"tend_backend/internal/feature/pages/transport/handler"
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

func setupRouter() *gin.Engine {
	guard := authusecase.NewAccessGuard(tokenValidator{
		"alice-session": {ID: "u-alice", Email: "alice@example.com"},
	})
	m := sessionmw.New(guard, nil, sessionmw.Cookies{})
	h := handler.NewPagesHandler()

	r := gin.New()
	r.GET("/", h.Home)
	page := r.Group("/", m.RequirePage())
	page.GET("/mapConnection", h.MapConnection)
	page.GET("/createNorthStar", h.CreateNorthStar)
	page.GET("/designExperiment", h.DesignExperiment)
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionmw.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPagesHandler_Home(t *testing.T) {
	t.Parallel()

	r := setupRouter()

	w := get(r, "/?redirectTo=%2FdesignExperiment", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `data-redirect="/designExperiment"`)

	w = get(r, "/?redirectTo=https%3A%2F%2Fevil.example", "")
	assert.Contains(t, w.Body.String(), `data-redirect=""`)

	w = get(r, "/?redirectTo=%2F%2Fevil.example", "")
	assert.Contains(t, w.Body.String(), `data-redirect=""`)
}

func TestPagesHandler_ProtectedPages(t *testing.T) {
	t.Parallel()

	r := setupRouter()

	tests := []struct {
		path     string
		title    string
		endpoint string
	}{
		{"/mapConnection", "Map a connection", "/mapConnection"},
		{"/createNorthStar", "Create your North Star", "/createNorthStar"},
		{"/designExperiment", "Design an experiment", "/designExperiment"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			w := get(r, tt.path, "")
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, sessionmw.LoginRedirect(mustURL(t, tt.path)), w.Header().Get("Location"))

			w = get(r, tt.path, "alice-session")
			require.Equal(t, http.StatusOK, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, "<title>"+tt.title+" · Tend</title>")
			assert.Contains(t, body, `data-endpoint="`+tt.endpoint+`"`)
			assert.Contains(t, body, "alice@example.com")
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		})
	}
}

func mustURL(t *testing.T, path string) *url.URL {
	t.Helper()
	u, err := url.Parse(path)
	require.NoError(t, err)
	return u
}
