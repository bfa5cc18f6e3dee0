// Package auth implements the per-request authentication pipeline: bearer
// extraction, signature/expiry verification, blacklist check, principal load.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skillfolio/portfolio-api/internal/logging"
	"github.com/skillfolio/portfolio-api/internal/models"
	"github.com/skillfolio/portfolio-api/internal/repo"
	"github.com/skillfolio/portfolio-api/internal/service/token"
)

const (
	userContextKey  = "auth_user"
	tokenContextKey = "auth_token"
)

// A revoked token and a never-valid token must look the same from outside;
// the difference only shows up in the logs.
const unauthenticatedMsg = "invalid or expired token"

type Middleware struct {
	Repo   *repo.GormRepo
	Tokens *token.Service
}

func New(r *repo.GormRepo, t *token.Service) *Middleware {
	return &Middleware{Repo: r, Tokens: t}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setPrincipal(c echo.Context, user *models.User, rawToken string) {
	c.Set(userContextKey, user)
	c.Set(tokenContextKey, rawToken)
}

// CurrentUser returns the authenticated user, or nil on AllowAny routes
// where no token was presented.
func CurrentUser(c echo.Context) *models.User {
	if u, ok := c.Get(userContextKey).(*models.User); ok {
		return u
	}
	return nil
}

// RawToken returns the exact token string the client presented. Logout
// needs it verbatim for the blacklist insert.
func RawToken(c echo.Context) string {
	if t, ok := c.Get(tokenContextKey).(string); ok {
		return t
	}
	return ""
}

func (m *Middleware) authenticate(c echo.Context, checkRevoked bool) (*models.User, string, error) {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("mw", "auth")

	raw, ok := bearerToken(c)
	if !ok {
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
	}

	claims, err := m.Tokens.Verify(raw)
	if err != nil {
		l.Warn("token_rejected", "reason", err.Error())
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMsg)
	}

	if checkRevoked {
		revoked, err := m.Repo.IsBlacklisted(ctx, raw)
		if err != nil {
			l.Error("blacklist_lookup_failed", "error", err)
			return nil, "", echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
		if revoked {
			l.Warn("token_rejected", "reason", "token revoked")
			return nil, "", echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMsg)
		}
	}

	user, err := m.Repo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("token_rejected", "reason", "user no longer exists", "user_id", claims.UserID)
			return nil, "", echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMsg)
		}
		l.Error("user_lookup_failed", "error", err)
		return nil, "", echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return user, raw, nil
}

// RequireAuth runs the full pipeline and attaches the principal.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, raw, err := m.authenticate(c, true)
		if err != nil {
			return err
		}
		setPrincipal(c, user, raw)
		return next(c)
	}
}

// OptionalAuth tolerates a missing header, but a token that is present and
// bad is still rejected.
func (m *Middleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := bearerToken(c); !ok {
			return next(c)
		}
		user, raw, err := m.authenticate(c, true)
		if err != nil {
			return err
		}
		setPrincipal(c, user, raw)
		return next(c)
	}
}

// AdminOnly gates on the role stored in the database, not the is_admin
// claim snapshot, so a demotion takes effect before the token expires.
func (m *Middleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, raw, err := m.authenticate(c, true)
		if err != nil {
			return err
		}
		if !user.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		setPrincipal(c, user, raw)
		return next(c)
	}
}

// RequireVerified skips the blacklist check. Logout uses it so that
// revoking an already-revoked token reaches the ledger and reports the
// duplicate as a conflict instead of being rejected upstream as a 401.
func (m *Middleware) RequireVerified(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, raw, err := m.authenticate(c, false)
		if err != nil {
			return err
		}
		setPrincipal(c, user, raw)
		return next(c)
	}
}
