package controller

import (
	"net/http"
	"time"

	"gigflow/internal/service"

	"github.com/labstack/echo"
)

const apiVersion = "1.0.0"

type diagnosticRoutesHandler struct {
	diagnosticService service.Diagnostics
}

func newDiagnosticRoutesHandler(root *echo.Echo, outer *echo.Group, services *service.Services) *diagnosticRoutesHandler {
	h := &diagnosticRoutesHandler{services.Diagnostics}
	root.GET("/", h.Root)
	outer.GET("/health", h.Health)

	return h
}

type rootResponse struct {
	response
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// /
func (h *diagnosticRoutesHandler) Root(c echo.Context) error {
	if e := c.JSON(http.StatusOK, rootResponse{
		response: okResponse("Welcome to GigFlow API"),
		Version:  apiVersion,
		Endpoints: map[string]string{
			"health": "/api/health",
			"auth":   "/api/auth",
			"gigs":   "/api/gigs",
			"bids":   "/api/bids",
		},
	}); e != nil {
		return e
	}

	return nil
}

type healthResponse struct {
	response
	Timestamp string `json:"timestamp"`
}

// /health
func (h *diagnosticRoutesHandler) Health(c echo.Context) error {
	err := h.diagnosticService.Ping()
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse("Database is unreachable")); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, healthResponse{
		response:  okResponse("GigFlow API is running"),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}); e != nil {
		return e
	}

	return nil
}
