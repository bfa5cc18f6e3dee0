package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillfolio/portfolio-api/internal/models"
	"github.com/skillfolio/portfolio-api/internal/repo"
)

// HomeHandler serves the public landing payload: the admin's profile,
// skills and projects. Works with or without a token.
type HomeHandler struct {
	Repo *repo.GormRepo
}

func (h *HomeHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()

	admin, err := h.Repo.FindAdmin(ctx)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Admin not found")
		}
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	var profile *models.AdminProfile
	if p, err := h.Repo.FindAdminProfile(ctx, admin.ID); err == nil {
		profile = p
	} else if !errors.Is(err, repo.ErrNotFound) {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	skills, err := h.Repo.ListSkills(ctx, admin.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	projects, err := h.Repo.ListProjects(ctx, admin.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, echo.Map{
		"id":          admin.ID,
		"email":       admin.Email,
		"fullname":    admin.FullName,
		"profile_url": admin.ProfileURL,
		"profile":     profile,
		"skills":      skills,
		"projects":    projects,
	})
}
