package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authmw "github.com/skillfolio/portfolio-api/internal/middleware/auth"
	"github.com/skillfolio/portfolio-api/internal/models"
	"github.com/skillfolio/portfolio-api/internal/repo"
	"github.com/skillfolio/portfolio-api/internal/service"
	"github.com/skillfolio/portfolio-api/internal/util"
)

type CommentHandler struct {
	Repo *repo.GormRepo
}

func validateCommentContent(content string) (string, service.ValidationErrors) {
	ve := service.ValidationErrors{}
	if len(strings.TrimSpace(content)) < 1 {
		ve.Add("content", "Comment content cannot be empty.")
		return "", ve
	}
	return content, nil
}

func paginatedList(c echo.Context, total int64, data any, page, limit, offset int) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   data,
		"meta": echo.Map{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *CommentHandler) BlogList(c echo.Context) error {
	ctx := c.Request().Context()

	post, err := h.Repo.FindBlogPostByTitle(ctx, c.Param("title"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Blog not found")
		}
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, comments, err := h.Repo.ListBlogComments(ctx, post.ID, offset, limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return paginatedList(c, total, comments, page, limit, offset)
}

func (h *CommentHandler) BlogCreate(c echo.Context) error {
	ctx := c.Request().Context()
	user := authmw.CurrentUser(c)

	post, err := h.Repo.FindBlogPostByTitle(ctx, c.Param("title"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Blog not found")
		}
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	content, ve := validateCommentContent(req.Content)
	if ve != nil {
		return failFields(c, http.StatusBadRequest, ve)
	}

	comment := models.BlogComment{
		BlogPostID: post.ID,
		UserID:     user.ID,
		Content:    content,
	}
	if err := h.Repo.CreateBlogComment(ctx, &comment); err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return success(c, http.StatusCreated, comment)
}

func (h *CommentHandler) ProjectList(c echo.Context) error {
	ctx := c.Request().Context()

	project, err := h.Repo.FindProjectByTitle(ctx, c.Param("title"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Project not found")
		}
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, comments, err := h.Repo.ListProjectComments(ctx, project.ID, offset, limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return paginatedList(c, total, comments, page, limit, offset)
}

func (h *CommentHandler) ProjectCreate(c echo.Context) error {
	ctx := c.Request().Context()
	user := authmw.CurrentUser(c)

	project, err := h.Repo.FindProjectByTitle(ctx, c.Param("title"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Project not found")
		}
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	content, ve := validateCommentContent(req.Content)
	if ve != nil {
		return failFields(c, http.StatusBadRequest, ve)
	}

	comment := models.ProjectComment{
		ProjectID: project.ID,
		UserID:    user.ID,
		Content:   content,
	}
	if err := h.Repo.CreateProjectComment(ctx, &comment); err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return success(c, http.StatusCreated, comment)
}
