package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/skillfolio/portfolio-api/internal/service"
)

// Every response uses the {status, data|message|errors} envelope.

func success(c echo.Context, code int, data any) error {
	return c.JSON(code, echo.Map{"status": "success", "data": data})
}

func successMessage(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"status": "success", "message": msg})
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"status": "error", "message": msg})
}

func failFields(c echo.Context, code int, ve service.ValidationErrors) error {
	return c.JSON(code, echo.Map{"status": "error", "errors": ve})
}
