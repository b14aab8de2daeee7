package controller

import (
	"net/http"
	"time"

	"gigflow/config"
	"gigflow/internal/entity"
	"gigflow/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type authRoutesHandler struct {
	authService service.Auth
	validate    *validator.Validate
	tokenTTL    time.Duration
	devMode     bool
}

func newAuthRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, cfg *config.Config, auth echo.MiddlewareFunc) *authRoutesHandler {
	h := &authRoutesHandler{
		authService: services.Auth,
		validate:    v,
		tokenTTL:    cfg.TokenTTL,
		devMode:     cfg.IsDevelopment(),
	}

	outer.POST("/auth/register", h.Register)
	outer.POST("/auth/login", h.Login)
	outer.POST("/auth/logout", h.Logout)
	outer.GET("/auth/me", h.Me, auth)

	return h
}

type registerInput struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type userResponse struct {
	response
	User *entity.UserOutputModel `json:"user"`
}

// /auth/register
func (h *authRoutesHandler) Register(c echo.Context) error {
	var input registerInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse("Input data is not formed correctly")); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse(getAllErrorMessages(err))); e != nil {
			return e
		}

		return err
	}

	model := &entity.RegisterInput{Name: input.Name, Email: input.Email, Password: input.Password}
	user, sessionToken, err := h.authService.Register(c.Request().Context(), model)
	if err == nil {
		h.setSessionCookie(c, sessionToken)
		if e := c.JSON(http.StatusCreated, userResponse{okResponse("Registered successfully"), user}); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrEmailAlreadyTaken:
		if e := c.JSON(http.StatusConflict, errorResponse("User with this email already exists")); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, internalErrorResponse("Error registering user", err, h.devMode)); e != nil {
			return e
		}
	}

	return err
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// /auth/login
func (h *authRoutesHandler) Login(c echo.Context) error {
	var input loginInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse("Input data is not formed correctly")); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse(getAllErrorMessages(err))); e != nil {
			return e
		}

		return err
	}

	user, sessionToken, err := h.authService.Login(c.Request().Context(), input.Email, input.Password)
	if err == nil {
		h.setSessionCookie(c, sessionToken)
		if e := c.JSON(http.StatusOK, userResponse{okResponse("Logged in successfully"), user}); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrInvalidCredentials:
		if e := c.JSON(http.StatusUnauthorized, errorResponse("Invalid email or password")); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, internalErrorResponse("Error logging in", err, h.devMode)); e != nil {
			return e
		}
	}

	return err
}

// /auth/logout
func (h *authRoutesHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !h.devMode,
		MaxAge:   -1,
	})

	if e := c.JSON(http.StatusOK, okResponse("Logged out successfully")); e != nil {
		return e
	}

	return nil
}

// /auth/me
func (h *authRoutesHandler) Me(c echo.Context) error {
	user, err := h.authService.GetUserById(c.Request().Context(), callerId(c))
	if err == nil {
		if e := c.JSON(http.StatusOK, userResponse{okResponse("OK"), user}); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrUserNotFound:
		if e := c.JSON(http.StatusUnauthorized, errorResponse("User no longer exists. Please login again.")); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, internalErrorResponse("Error fetching user", err, h.devMode)); e != nil {
			return e
		}
	}

	return err
}

func (h *authRoutesHandler) setSessionCookie(c echo.Context, sessionToken string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !h.devMode,
		Expires:  time.Now().Add(h.tokenTTL),
	})
}
