package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"notemaker-server/internal/service"
	"notemaker-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads the request body into dst. An empty body leaves dst untouched
// when optional is set.
func decodeJSON(r *http.Request, dst interface{}, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if optional && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func validationDetails(err error) []response.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []response.FieldError{{Message: err.Error()}}
	}

	details := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, response.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return details
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Please include a valid email"
	case "min":
		return fmt.Sprintf("%s must be %s or more characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// writeError maps service errors onto HTTP responses. Anything unexpected is
// logged and reported as a generic 500.
func writeError(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]response.FieldError, len(verr.Fields))
		for i, f := range verr.Fields {
			details[i] = response.FieldError{Field: f.Field, Message: f.Message}
		}
		response.ValidationFailed(w, details)
	case errors.Is(err, service.ErrNoteNotFound):
		response.NotFound(w, "Note not found")
	case errors.Is(err, service.ErrVersionNotFound):
		response.NotFound(w, "Version not found")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, service.ErrNotAuthorized):
		response.Unauthorized(w, "Not authorized")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid credentials")
	case errors.Is(err, service.ErrUserExists):
		response.BadRequest(w, "User already exists")
	default:
		log.Errorw("request failed", "error", err)
		response.InternalError(w, "Server error")
	}
}
