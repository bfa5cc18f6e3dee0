package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/skillfolio/portfolio-api/internal/logging"
	authmw "github.com/skillfolio/portfolio-api/internal/middleware/auth"
	"github.com/skillfolio/portfolio-api/internal/models"
	"github.com/skillfolio/portfolio-api/internal/mykafka"
	"github.com/skillfolio/portfolio-api/internal/repo"
	"github.com/skillfolio/portfolio-api/internal/service"
	"github.com/skillfolio/portfolio-api/internal/service/search"
	"github.com/skillfolio/portfolio-api/internal/util"
)

type BlogHandler struct {
	Repo     *repo.GormRepo
	ES       *elasticsearch.Client
	Index    string
	Producer *mykafka.Producer
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *BlogHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "blog_events", key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "error", err)
	}
}

func (h *BlogHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog_create")
	user := authmw.CurrentUser(c)

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Image    string `json:"image"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	ve := service.ValidationErrors{}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		ve.Add("title", "This field is required.")
	} else if len(title) > 100 {
		ve.Add("title", "Ensure this field has no more than 100 characters.")
	}
	if strings.TrimSpace(req.Content) == "" {
		ve.Add("content", "This field is required.")
	}
	if req.Image != "" {
		if err := validate.Var(req.Image, "url"); err != nil {
			ve.Add("image", "Enter a valid URL.")
		}
	}
	if len(ve) > 0 {
		return failFields(c, http.StatusBadRequest, ve)
	}

	post := models.BlogPost{
		Title:    title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
		AuthorID: user.ID,
	}
	if err := h.Repo.CreateBlogPost(ctx, &post); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			ve.Add("title", "A blog post with this title already exists.")
			return failFields(c, http.StatusBadRequest, ve)
		}
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	post.Author = *user

	if err := search.IndexBlogPost(ctx, h.ES, h.Index, &post); err != nil {
		l.Error("es_index_failed", "blog_id", post.ID, "error", err)
	}
	h.publish(c, fmt.Sprint(post.ID), map[string]any{
		"type":    "blog_created",
		"blog_id": post.ID,
		"title":   post.Title,
	})

	return success(c, http.StatusCreated, post)
}

func (h *BlogHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog_delete")
	user := authmw.CurrentUser(c)
	title := c.Param("title")

	post, err := h.Repo.FindBlogPostByTitle(ctx, title)
	if err != nil || post.AuthorID != user.ID {
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return fail(c, http.StatusInternalServerError, "internal server error")
		}
		return fail(c, http.StatusNotFound, "Blog not found")
	}

	if err := h.Repo.DeleteBlogPostByTitle(ctx, title, user.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Blog not found")
		}
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	if err := search.DeleteBlogPost(ctx, h.ES, h.Index, post.ID); err != nil {
		l.Error("es_delete_failed", "blog_id", post.ID, "error", err)
	}
	h.publish(c, fmt.Sprint(post.ID), map[string]any{
		"type":    "blog_deleted",
		"blog_id": post.ID,
		"title":   post.Title,
	})

	return successMessage(c, http.StatusOK, "Blog deleted")
}

// List returns the admin's posts, paginated.
func (h *BlogHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	admin, err := h.Repo.FindAdmin(ctx)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Admin not found")
		}
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, posts, err := h.Repo.ListBlogPosts(ctx, admin.ID, offset, limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return paginatedList(c, total, posts, page, limit, offset)
}

func (h *BlogHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	q := c.QueryParam("q")
	if q == "" {
		return fail(c, http.StatusBadRequest, "query parameter 'q' is required")
	}
	if h.ES == nil {
		return fail(c, http.StatusServiceUnavailable, "search is not available")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, hits, err := search.Search(ctx, h.ES, h.Index, q, from, limit)
	if err != nil {
		logging.FromContext(ctx).Error("es_search_failed", "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   hits,
		"meta":   echo.Map{"page": page, "size": limit, "total": total},
	})
}
