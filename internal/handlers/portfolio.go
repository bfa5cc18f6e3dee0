package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	authmw "github.com/skillfolio/portfolio-api/internal/middleware/auth"
	"github.com/skillfolio/portfolio-api/internal/models"
	"github.com/skillfolio/portfolio-api/internal/repo"
	"github.com/skillfolio/portfolio-api/internal/service"
)

// PortfolioHandler covers the admin-only write surface: the admin profile,
// skills and projects.
type PortfolioHandler struct {
	Repo *repo.GormRepo
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

func (h *PortfolioHandler) AdminProfileUpdate(c echo.Context) error {
	ctx := c.Request().Context()
	user := authmw.CurrentUser(c)

	var req struct {
		Career  *string `json:"career"`
		Country *string `json:"country"`
		City    *string `json:"city"`
		AboutMe *string `json:"about_me"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	profile, err := h.Repo.GetOrCreateAdminProfile(ctx, user.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	if req.Career != nil {
		profile.Career = *req.Career
	}
	if req.Country != nil {
		profile.Country = *req.Country
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.AboutMe != nil {
		profile.AboutMe = *req.AboutMe
	}

	if err := h.Repo.SaveAdminProfile(ctx, profile); err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return success(c, http.StatusOK, profile)
}

func (h *PortfolioHandler) SkillCreate(c echo.Context) error {
	ctx := c.Request().Context()
	user := authmw.CurrentUser(c)

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	name := strings.TrimSpace(req.Name)
	ve := service.ValidationErrors{}
	if name == "" {
		ve.Add("name", "This field is required.")
	} else if len(name) > 50 {
		ve.Add("name", "Ensure this field has no more than 50 characters.")
	}
	if len(ve) > 0 {
		return failFields(c, http.StatusBadRequest, ve)
	}

	skill := models.Skill{UserID: user.ID, Name: name}
	if err := h.Repo.CreateSkill(ctx, &skill); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			ve.Add("name", "You already have a skill with this name.")
			return failFields(c, http.StatusBadRequest, ve)
		}
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return success(c, http.StatusCreated, skill)
}

func (h *PortfolioHandler) SkillDelete(c echo.Context) error {
	ctx := c.Request().Context()
	user := authmw.CurrentUser(c)

	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Repo.DeleteSkill(ctx, id, user.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Skill not found")
		}
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return successMessage(c, http.StatusOK, "Skill deleted")
}

func (h *PortfolioHandler) ProjectCreate(c echo.Context) error {
	ctx := c.Request().Context()
	user := authmw.CurrentUser(c)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	title := strings.TrimSpace(req.Title)
	ve := service.ValidationErrors{}
	if title == "" {
		ve.Add("title", "This field is required.")
	} else if len(title) > 100 {
		ve.Add("title", "Ensure this field has no more than 100 characters.")
	}
	if req.Image != "" {
		if err := validate.Var(req.Image, "url"); err != nil {
			ve.Add("image", "Enter a valid URL.")
		}
	}
	if len(ve) > 0 {
		return failFields(c, http.StatusBadRequest, ve)
	}

	project := models.Project{
		UserID:      user.ID,
		Title:       title,
		Description: req.Description,
		Image:       req.Image,
	}
	if err := h.Repo.CreateProject(ctx, &project); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			ve.Add("title", "You already have a project with this title.")
			return failFields(c, http.StatusBadRequest, ve)
		}
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return success(c, http.StatusCreated, project)
}

func (h *PortfolioHandler) ProjectDelete(c echo.Context) error {
	ctx := c.Request().Context()
	user := authmw.CurrentUser(c)

	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Repo.DeleteProject(ctx, id, user.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Project not found")
		}
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return successMessage(c, http.StatusOK, "Project deleted")
}
