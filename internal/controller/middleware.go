package controller

import (
	"errors"
	"net/http"
	"time"

	"gigflow/pkg/token"

	"github.com/labstack/echo"
	"github.com/rs/zerolog"
)

// newAuthMiddleware authenticates the caller from the session cookie and
// stores the user identity on the request context. Missing and bad tokens
// get distinct 401 messages; anything else a token parser can fail with is
// treated as an internal fault.
func newAuthMiddleware(tokens *token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse("Authentication required. Please login."))
			}

			claims, err := tokens.Parse(cookie.Value)
			if err != nil {
				switch {
				case errors.Is(err, token.ErrExpiredToken):
					return c.JSON(http.StatusUnauthorized, errorResponse("Token expired. Please login again."))
				case errors.Is(err, token.ErrInvalidToken):
					return c.JSON(http.StatusUnauthorized, errorResponse("Invalid token. Please login again."))
				default:
					return c.JSON(http.StatusInternalServerError, errorResponse("Authentication error"))
				}
			}

			c.Set(userIdKey, claims.UserId)
			c.Set(userEmailKey, claims.Email)

			return next(c)
		}
	}
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			req := c.Request()
			entry := log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start))
			if email, ok := c.Get(userEmailKey).(string); ok && email != "" {
				entry = entry.Str("user", email)
			}
			entry.Msg("request")

			return err
		}
	}
}

// newHTTPErrorHandler keeps the response envelope on errors raised by the
// framework itself, like unknown routes, which would otherwise answer with
// echo's default body.
func newHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			switch code {
			case http.StatusNotFound:
				message = "Route not found"
			case http.StatusMethodNotAllowed:
				message = "Method not allowed"
			default:
				if m, ok := he.Message.(string); ok {
					message = m
				}
			}
		}

		if e := c.JSON(code, errorResponse(message)); e != nil {
			log.Error().Err(e).Msg("write error response")
		}
	}
}
