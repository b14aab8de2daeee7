package controller

import (
	"gigflow/config"
	"gigflow/internal/notify"
	"gigflow/internal/service"
	"gigflow/pkg/token"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/rs/zerolog"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services, hub *notify.Hub, tokens *token.Manager, cfg *config.Config, log zerolog.Logger) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	auth := newAuthMiddleware(tokens)
	devMode := cfg.IsDevelopment()

	handler.HTTPErrorHandler = newHTTPErrorHandler(log)
	handler.Use(middleware.Recover())
	handler.Use(requestLogger(log))
	handler.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	}))

	api := handler.Group("/api")
	newDiagnosticRoutesHandler(handler, api, services)
	newAuthRoutesHandler(api, services, validate, cfg, auth)
	newGigRoutesHandler(api, services, validate, auth, devMode)
	newBidRoutesHandler(api, services, validate, auth, devMode)
	newWsRoutesHandler(api, hub, cfg.FrontendURL, auth)
}
