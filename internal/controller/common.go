package controller

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

const (
	defaultLimit  = 20
	defaultOffset = 0

	sessionCookieName = "token"

	userIdKey    = "userId"
	userEmailKey = "userEmail"
)

// every response carries this envelope; success responses embed the
// resulting resource next to it
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func okResponse(message string) response {
	return response{Success: true, Message: message}
}

func errorResponse(message string) response {
	return response{Success: false, Message: message}
}

// internalErrorResponse echoes the raw failure detail only outside
// production deployments.
func internalErrorResponse(message string, err error, devMode bool) response {
	r := response{Success: false, Message: message}
	if devMode && err != nil {
		r.Error = err.Error()
	}

	return r
}

// callerId returns the authenticated user id placed by the auth middleware.
func callerId(c echo.Context) string {
	id, _ := c.Get(userIdKey).(string)

	return id
}

func getAllErrorMessages(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Input data is not formed correctly"
	}

	var builder strings.Builder
	for _, fe := range validationErrors {
		message := fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe))
		builder.WriteString(message)
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	s, i, f := "", int32(0), float64(0)
	if fe.Type() == reflect.TypeOf(s) {
		return getMessageForString(fe)
	}

	if fe.Type() == reflect.TypeOf(i) || fe.Type() == reflect.TypeOf(0) {
		return getMessageForNumber(fe)
	}

	if fe.Type() == reflect.TypeOf(f) || fe.Type() == reflect.TypeOf(&f) {
		return getMessageForNumber(fe)
	}

	return "incorrect value passed"
}

func getMessageForNumber(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	}

	return "incorrect value passed"
}

func getMessageForString(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "length should be less or equal than " + fe.Param()
	case "gte", "min":
		return "length should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	case "email":
		return "should be a valid email address"
	}

	return "incorrect value passed"
}
