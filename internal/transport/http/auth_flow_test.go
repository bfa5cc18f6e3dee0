package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow_RegisterLoginLogout(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	first := env.registerUser(t, "alice@x.com")

	// iat has second resolution, so a login in the same second would mint
	// the same string
	time.Sleep(1100 * time.Millisecond)

	rec := env.do(t, http.MethodPost, "/api/v1/login", "", echo.Map{
		"email":    "alice@x.com",
		"password": "Password1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode(t, rec)["data"].(map[string]any)["token"].(string)
	assert.NotEqual(t, first, second)

	rec = env.do(t, http.MethodPost, "/api/v1/logout", second, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Successfully logged out", body["message"])
	assert.Equal(t, false, body["is_admin"])

	// the ledger already holds this token, so logging out again conflicts
	rec = env.do(t, http.MethodPost, "/api/v1/logout", second, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "token already revoked", decode(t, rec)["message"])

	// everywhere else the revoked token is just an invalid token
	rec = env.do(t, http.MethodGet, "/api/v1/blogs", second, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired token", decode(t, rec)["message"])

	// the first token was never revoked and still works
	rec = env.do(t, http.MethodGet, "/api/v1/user-profile", first, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_FailureBodiesAreIdentical(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	env.registerUser(t, "alice@x.com")

	wrongPassword := env.do(t, http.MethodPost, "/api/v1/login", "", echo.Map{
		"email":    "alice@x.com",
		"password": "Password2",
	})
	unknownEmail := env.do(t, http.MethodPost, "/api/v1/login", "", echo.Map{
		"email":    "nobody@x.com",
		"password": "Password1",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestRegister_ValidationErrorsEnvelope(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/register", "", echo.Map{
		"email":    "bad",
		"fullname": "Alice Smith",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "error", body["status"])
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestAdminRoutes_RoleGate(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	_, adminToken := env.seedAdmin(t)
	userToken := env.registerUser(t, "user@x.com")

	// no token at all is an authentication failure, not an authorization one
	rec := env.do(t, http.MethodPost, "/api/v1/skills/add", "", echo.Map{"name": "Go"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/skills/add", userToken, echo.Map{"name": "Go"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "admin access required", decode(t, rec)["message"])

	rec = env.do(t, http.MethodPost, "/api/v1/skills/add", adminToken, echo.Map{"name": "Go"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestErrorHandler_WrapsMiddlewareRejections(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/blogs", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "invalid or expired token", body["message"])
}
