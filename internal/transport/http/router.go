package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillfolio/portfolio-api/internal/handlers"
	authmw "github.com/skillfolio/portfolio-api/internal/middleware/auth"
)

type Deps struct {
	Auth      *handlers.AuthHandler
	Home      *handlers.HomeHandler
	Profile   *handlers.ProfileHandler
	Portfolio *handlers.PortfolioHandler
	Blog      *handlers.BlogHandler
	Comments  *handlers.CommentHandler
	AuthMW    *authmw.Middleware
}

// ErrorHandler renders every unhandled error in the standard envelope so
// middleware rejections look the same as handler responses.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, echo.Map{"status": "error", "message": msg})
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.Auth.Register)
	v1.POST("/login", d.Auth.Login)
	// logout skips the blacklist gate so a second attempt surfaces as 409
	v1.POST("/logout", d.Auth.Logout, d.AuthMW.RequireVerified)

	v1.GET("/home", d.Home.Home, d.AuthMW.OptionalAuth)

	v1.GET("/user-profile", d.Profile.Get, d.AuthMW.RequireAuth)
	v1.PATCH("/user-profile", d.Profile.Patch, d.AuthMW.RequireAuth)

	v1.PATCH("/admin-profile/update", d.Portfolio.AdminProfileUpdate, d.AuthMW.AdminOnly)
	v1.POST("/skills/add", d.Portfolio.SkillCreate, d.AuthMW.AdminOnly)
	v1.DELETE("/skills/delete/:id", d.Portfolio.SkillDelete, d.AuthMW.AdminOnly)
	v1.POST("/project/add", d.Portfolio.ProjectCreate, d.AuthMW.AdminOnly)
	v1.DELETE("/project/delete/:id", d.Portfolio.ProjectDelete, d.AuthMW.AdminOnly)

	v1.POST("/blog/add", d.Blog.Create, d.AuthMW.AdminOnly)
	v1.DELETE("/blog/delete/:title", d.Blog.Delete, d.AuthMW.AdminOnly)
	v1.GET("/blogs", d.Blog.List, d.AuthMW.RequireAuth)
	v1.GET("/blogs/search", d.Blog.Search, d.AuthMW.RequireAuth)

	v1.GET("/blog/comments/:title", d.Comments.BlogList, d.AuthMW.OptionalAuth)
	v1.POST("/blog/comments/:title", d.Comments.BlogCreate, d.AuthMW.RequireAuth)
	v1.GET("/project/comments/:title", d.Comments.ProjectList, d.AuthMW.OptionalAuth)
	v1.POST("/project/comments/:title", d.Comments.ProjectCreate, d.AuthMW.RequireAuth)
}
