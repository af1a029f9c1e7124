package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tend_backend/internal/app/di"
	"tend_backend/internal/app/router"
	accountadapters "tend_backend/internal/feature/account/adapters"
	accounthandler "tend_backend/internal/feature/account/transport/handler"
	accountusecase "tend_backend/internal/feature/account/usecase"
	authadapters "tend_backend/internal/feature/auth/adapters"
	authhandler "tend_backend/internal/feature/auth/transport/handler"
	authusecase "tend_backend/internal/feature/auth/usecase"
	experimentadapters "tend_backend/internal/feature/experiments/adapters"
	experimenthandler "tend_backend/internal/feature/experiments/transport/handler"
	experimentusecase "tend_backend/internal/feature/experiments/usecase"
	northstaradapters "tend_backend/internal/feature/northstar/adapters"
	northstarhandler "tend_backend/internal/feature/northstar/transport/handler"
	northstarusecase "tend_backend/internal/feature/northstar/usecase"
	pageshandler "tend_backend/internal/feature/pages/transport/handler"
	relationshipadapters "tend_backend/internal/feature/relationships/adapters"
	relationshiphandler "tend_backend/internal/feature/relationships/transport/handler"
	relationshipusecase "tend_backend/internal/feature/relationships/usecase"
	structuringhandler "tend_backend/internal/feature/structuring/transport/handler"
	structuringusecase "tend_backend/internal/feature/structuring/usecase"
	platformdb "tend_backend/internal/platform/db"
	"tend_backend/internal/platform/jwtauth"
	"tend_backend/internal/platform/sessionmw"
	"tend_backend/internal/shared/ratelimiter"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fixedGenerator string

func (g fixedGenerator) Generate(context.Context, structuringusecase.Prompt) (string, error) {
	return string(g), nil
}

func newServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, platformdb.Migrate(db))

	auth := authusecase.NewAuthenticator(authadapters.NewUserPostgres(db), di.NewSessionRepository(nil, db), 0)
	issuer := jwtauth.NewIssuer("test-secret", time.Hour)
	sessions := sessionmw.New(authusecase.NewAccessGuard(auth), issuer, sessionmw.Cookies{MaxAge: auth.SessionTTL()})

	relUC := relationshipusecase.NewRelationshipsUsecase(relationshipadapters.NewRelationshipPostgres(db))
	nsUC := northstarusecase.NewNorthStarUsecase(northstaradapters.NewNorthStarPostgres(db))
	expUC := experimentusecase.NewExperimentsUsecase(experimentadapters.NewExperimentPostgres(db))
	accUC := accountusecase.NewAccountUsecase(accountadapters.NewAccountPostgres(db), auth)
	structurer := structuringusecase.NewStructurer(
		fixedGenerator(`{"challenge":"c","hypothesis":"h","intervention":"i","measure":"m"}`), nsUC, relUC)

	return router.NewRouter(router.Deps{
		Sessions:      sessions,
		Limiter:       ratelimiter.NewLocalLimiter(2, time.Minute),
		Auth:          authhandler.NewAuthHandler(auth, sessions, issuer),
		Relationships: relationshiphandler.NewRelationshipHandler(relUC, sessions),
		NorthStar:     northstarhandler.NewNorthStarHandler(nsUC, sessions),
		Experiments:   experimenthandler.NewExperimentHandler(expUC, sessions),
		Account:       accounthandler.NewAccountHandler(accUC, sessions),
		Structuring:   structuringhandler.NewStructuringHandler(structurer, sessions),
		Pages:         pageshandler.NewPagesHandler(),
	})
}

// client keeps the session cookie between calls like a browser would.
type client struct {
	t      *testing.T
	r      *gin.Engine
	cookie string
	bearer string
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionmw.CookieName, Value: c.cookie})
	}
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionmw.CookieName {
			c.cookie = ck.Value
		}
	}
	return w
}

func TestRouter_SessionLifecycle(t *testing.T) {
	t.Parallel()

	c := &client{t: t, r: newServer(t)}

	w := c.do(http.MethodPost, "/api/auth/register", `{"email":"Alice@Example.com","password":"password123","confirmPassword":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotEmpty(t, c.cookie)

	w = c.do(http.MethodGet, "/api/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	var me map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "alice@example.com", me["email"])
	assert.Equal(t, true, me["authenticated"])

	w = c.do(http.MethodPost, "/api/relationships",
		`{"ownerEmail":"alice@example.com","name":"Sam","description":"brother","status":"on track","details":{"+":"a","∆":"b","→":"c"}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(http.MethodGet, "/api/relationships?ownerEmail=bob@example.com", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	session := c.cookie
	w = c.do(http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, w.Code)

	c.cookie = session
	w = c.do(http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "logged-out session must stay dead")
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	c.cookie = ""
	w = c.do(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = c.do(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_BearerTokenFollowsSession(t *testing.T) {
	t.Parallel()

	c := &client{t: t, r: newServer(t)}
	c.do(http.MethodPost, "/api/auth/register", `{"email":"alice@example.com","password":"password123","confirmPassword":"password123"}`)

	w := c.do(http.MethodPost, "/api/auth/token", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))

	api := &client{t: t, r: c.r, bearer: tok.Token}
	w = api.do(http.MethodGet, "/api/northStar?ownerEmail=alice@example.com", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	c.do(http.MethodPost, "/api/auth/logout", "")
	w = api.do(http.MethodGet, "/api/northStar?ownerEmail=alice@example.com", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_DraftingIsGuardedAndRateLimited(t *testing.T) {
	t.Parallel()

	c := &client{t: t, r: newServer(t)}

	w := c.do(http.MethodPost, "/designExperiment", `{"text":"chores"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c.do(http.MethodPost, "/api/auth/register", `{"email":"alice@example.com","password":"password123","confirmPassword":"password123"}`)
	for i := 0; i < 2; i++ {
		w = c.do(http.MethodPost, "/designExperiment", `{"text":"chores","ownerEmail":"alice@example.com"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w = c.do(http.MethodPost, "/designExperiment", `{"text":"chores"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRouter_PagesAndProbes(t *testing.T) {
	t.Parallel()

	c := &client{t: t, r: newServer(t)}

	w := c.do(http.MethodGet, "/mapConnection", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/?redirectTo=%2FmapConnection", w.Header().Get("Location"))

	w = c.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = c.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_DeleteAccount(t *testing.T) {
	t.Parallel()

	c := &client{t: t, r: newServer(t)}
	c.do(http.MethodPost, "/api/auth/register", `{"email":"alice@example.com","password":"password123","confirmPassword":"password123"}`)
	c.do(http.MethodPost, "/api/experiments", `{"ownerEmail":"alice@example.com","challenge":"c","hypothesis":"h","intervention":"i","measure":"m"}`)
	session := c.cookie

	w := c.do(http.MethodDelete, "/api/delete-account", `{"email":"bob@example.com"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = c.do(http.MethodDelete, "/api/delete-account", `{"email":"alice@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	c.cookie = session
	w = c.do(http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.do(http.MethodPost, "/api/auth/check-password", `{"email":"alice@example.com"}`)
	assert.JSONEq(t, `{"hasPassword":false}`, w.Body.String())
}
