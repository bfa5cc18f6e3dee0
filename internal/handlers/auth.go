package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	authmw "github.com/skillfolio/portfolio-api/internal/middleware/auth"
	"github.com/skillfolio/portfolio-api/internal/logging"
	"github.com/skillfolio/portfolio-api/internal/mykafka"
	"github.com/skillfolio/portfolio-api/internal/service"
)

type AuthHandler struct {
	Svc      *service.AuthService
	Producer *mykafka.Producer
}

func (h *AuthHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "error", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		Email    string `json:"email"`
		FullName string `json:"fullname"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_rejected", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	res, user, err := h.Svc.Register(ctx, req.Email, req.FullName, req.Password)
	if err != nil {
		var ve service.ValidationErrors
		if errors.As(err, &ve) {
			l.Warn("register_rejected", "status", 400)
			return failFields(c, http.StatusBadRequest, ve)
		}
		l.Error("register_failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	h.publish(c, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return success(c, http.StatusCreated, res)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_rejected", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	res, user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// same body for unknown email and wrong password
			l.Warn("login_rejected", "status", 401)
			return fail(c, http.StatusUnauthorized, "Invalid credentials")
		}
		l.Error("login_failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	h.publish(c, fmt.Sprint(user.ID), map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
	})

	return success(c, http.StatusOK, res)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	user := authmw.CurrentUser(c)
	raw := authmw.RawToken(c)

	if err := h.Svc.Logout(ctx, raw); err != nil {
		if errors.Is(err, service.ErrAlreadyLoggedOut) {
			l.Warn("logout_rejected", "status", 409)
			return fail(c, http.StatusConflict, "token already revoked")
		}
		l.Error("logout_failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	h.publish(c, fmt.Sprint(user.ID), map[string]any{
		"type":    "user_logged_out",
		"user_id": user.ID,
	})

	// is_admin comes from the freshly loaded user, not the token claim
	return c.JSON(http.StatusOK, echo.Map{
		"status":   "success",
		"message":  "Successfully logged out",
		"is_admin": user.IsAdmin,
	})
}
