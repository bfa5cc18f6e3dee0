package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	authmw "github.com/skillfolio/portfolio-api/internal/middleware/auth"
	"github.com/skillfolio/portfolio-api/internal/repo"
	"github.com/skillfolio/portfolio-api/internal/service"
)

var validate = validator.New()

type ProfileHandler struct {
	Repo *repo.GormRepo
}

func (h *ProfileHandler) Get(c echo.Context) error {
	user := authmw.CurrentUser(c)
	return success(c, http.StatusOK, echo.Map{
		"email":       user.Email,
		"fullname":    user.FullName,
		"profile_url": user.ProfileURL,
	})
}

// Patch updates the caller's own profile. Email and full name are
// read-only; only the profile URL is writable.
func (h *ProfileHandler) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	user := authmw.CurrentUser(c)

	var req struct {
		ProfileURL *string `json:"profile_url"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	if req.ProfileURL != nil && *req.ProfileURL != "" {
		if err := validate.Var(*req.ProfileURL, "url"); err != nil {
			ve := service.ValidationErrors{}
			ve.Add("profile_url", "Enter a valid URL.")
			return failFields(c, http.StatusBadRequest, ve)
		}
	}
	if req.ProfileURL != nil {
		user.ProfileURL = *req.ProfileURL
		if err := h.Repo.SaveUser(ctx, user); err != nil {
			return fail(c, http.StatusInternalServerError, "internal server error")
		}
	}

	return success(c, http.StatusOK, echo.Map{
		"email":       user.Email,
		"fullname":    user.FullName,
		"profile_url": user.ProfileURL,
	})
}
