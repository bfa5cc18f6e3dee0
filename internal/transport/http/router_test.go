package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/skillfolio/portfolio-api/internal/handlers"
	"github.com/skillfolio/portfolio-api/internal/hash"
	authmw "github.com/skillfolio/portfolio-api/internal/middleware/auth"
	"github.com/skillfolio/portfolio-api/internal/models"
	"github.com/skillfolio/portfolio-api/internal/repo"
	"github.com/skillfolio/portfolio-api/internal/service"
	"github.com/skillfolio/portfolio-api/internal/service/token"
)

type env struct {
	e  *echo.Echo
	rp *repo.GormRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.AdminProfile{},
		&models.BlacklistedToken{},
		&models.Skill{},
		&models.Project{},
		&models.BlogPost{},
		&models.BlogComment{},
		&models.ProjectComment{},
	))

	rp := repo.New(db)
	tokens := &token.Service{Secret: []byte("test-jwt-secret")}
	authSvc := &service.AuthService{Repo: rp, Tokens: tokens}

	e := echo.New()
	Register(e, &Deps{
		Auth:      &handlers.AuthHandler{Svc: authSvc},
		Home:      &handlers.HomeHandler{Repo: rp},
		Profile:   &handlers.ProfileHandler{Repo: rp},
		Portfolio: &handlers.PortfolioHandler{Repo: rp},
		Blog:      &handlers.BlogHandler{Repo: rp, Index: "blog_posts"},
		Comments:  &handlers.CommentHandler{Repo: rp},
		AuthMW:    authmw.New(rp, tokens),
	})

	return &env{e: e, rp: rp}
}

func (env *env) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (env *env) seedAdmin(t *testing.T) (*models.User, string) {
	t.Helper()

	pw, err := hash.HashPassword("Password1")
	require.NoError(t, err)
	admin := &models.User{
		Email:        "admin@skillfolio.dev",
		FullName:     "Site Admin",
		Username:     "site_admin",
		PasswordHash: pw,
		IsAdmin:      true,
	}
	require.NoError(t, env.rp.CreateUser(context.Background(), admin))

	rec := env.do(t, http.MethodPost, "/api/v1/login", "", echo.Map{
		"email":    "admin@skillfolio.dev",
		"password": "Password1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	data := body["data"].(map[string]any)
	return admin, data["token"].(string)
}

func (env *env) registerUser(t *testing.T, email string) string {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/v1/register", "", echo.Map{
		"email":    email,
		"fullname": "Regular User",
		"password": "Password1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	data := body["data"].(map[string]any)
	return data["token"].(string)
}
