package httpserver

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome_PublicAndAuthenticated(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	// no admin seeded yet
	rec := env.do(t, http.MethodGet, "/api/v1/home", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Admin not found", decode(t, rec)["message"])

	_, adminToken := env.seedAdmin(t)

	rec = env.do(t, http.MethodPost, "/api/v1/skills/add", adminToken, echo.Map{"name": "Go"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// anonymous visitors see the same landing payload
	rec = env.do(t, http.MethodGet, "/api/v1/home", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "admin@skillfolio.dev", data["email"])
	assert.Len(t, data["skills"], 1)

	rec = env.do(t, http.MethodGet, "/api/v1/home", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSkills_DuplicateAndDelete(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	_, adminToken := env.seedAdmin(t)

	rec := env.do(t, http.MethodPost, "/api/v1/skills/add", adminToken, echo.Map{"name": "Go"})
	require.Equal(t, http.StatusCreated, rec.Code)
	skill := decode(t, rec)["data"].(map[string]any)
	id := int(skill["id"].(float64))

	rec = env.do(t, http.MethodPost, "/api/v1/skills/add", adminToken, echo.Map{"name": "Go"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decode(t, rec)["errors"].(map[string]any)
	assert.Contains(t, errs, "name")

	rec = env.do(t, http.MethodDelete, "/api/v1/skills/delete/"+strconv.Itoa(id), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Skill deleted", decode(t, rec)["message"])

	rec = env.do(t, http.MethodDelete, "/api/v1/skills/delete/"+strconv.Itoa(id), adminToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Skill not found", decode(t, rec)["message"])
}

func TestProjects_ImageURLValidation(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	_, adminToken := env.seedAdmin(t)

	rec := env.do(t, http.MethodPost, "/api/v1/project/add", adminToken, echo.Map{
		"title": "Tracker",
		"image": "not a url",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decode(t, rec)["errors"].(map[string]any)
	assert.Contains(t, errs, "image")

	rec = env.do(t, http.MethodPost, "/api/v1/project/add", adminToken, echo.Map{
		"title":       "Tracker",
		"description": "A portfolio tracker",
		"image":       "https://cdn.example.com/tracker.png",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUserProfile_PatchURL(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	token := env.registerUser(t, "alice@x.com")

	rec := env.do(t, http.MethodPatch, "/api/v1/user-profile", token, echo.Map{
		"profile_url": "nope",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decode(t, rec)["errors"].(map[string]any)
	assert.Contains(t, errs, "profile_url")

	rec = env.do(t, http.MethodPatch, "/api/v1/user-profile", token, echo.Map{
		"profile_url": "https://github.com/alice",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/user-profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "https://github.com/alice", data["profile_url"])
}

func TestBlog_CreateListComment(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	_, adminToken := env.seedAdmin(t)
	userToken := env.registerUser(t, "reader@x.com")

	rec := env.do(t, http.MethodPost, "/api/v1/blog/add", adminToken, echo.Map{
		"title":    "hello-world",
		"content":  "First post.",
		"category": "general",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// duplicate title is rejected
	rec = env.do(t, http.MethodPost, "/api/v1/blog/add", adminToken, echo.Map{
		"title":   "hello-world",
		"content": "Again.",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decode(t, rec)["errors"].(map[string]any)
	assert.Contains(t, errs, "title")

	rec = env.do(t, http.MethodGet, "/api/v1/blogs", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["data"], 1)
	meta := body["meta"].(map[string]any)
	assert.EqualValues(t, 1, meta["total"])

	// comments are readable anonymously, writable with a token
	rec = env.do(t, http.MethodPost, "/api/v1/blog/comments/hello-world", userToken, echo.Map{
		"content": "Nice post",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/blog/comments/hello-world", userToken, echo.Map{
		"content": "   ",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/blog/comments/hello-world", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["data"], 1)

	rec = env.do(t, http.MethodGet, "/api/v1/blog/comments/no-such-post", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Blog not found", decode(t, rec)["message"])
}

func TestBlog_DeleteByTitle(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	_, adminToken := env.seedAdmin(t)

	rec := env.do(t, http.MethodPost, "/api/v1/blog/add", adminToken, echo.Map{
		"title":   "Ephemeral",
		"content": "Soon gone.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/blog/delete/Ephemeral", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Blog deleted", decode(t, rec)["message"])

	rec = env.do(t, http.MethodDelete, "/api/v1/blog/delete/Ephemeral", adminToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Blog not found", decode(t, rec)["message"])
}

func TestBlogSearch_RequiresQueryAndBackend(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	token := env.registerUser(t, "alice@x.com")

	rec := env.do(t, http.MethodGet, "/api/v1/blogs/search", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// no elasticsearch client is wired in tests
	rec = env.do(t, http.MethodGet, "/api/v1/blogs/search?q=go", token, nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "search is not available", decode(t, rec)["message"])
}
