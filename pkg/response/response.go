package response

import (
	"encoding/json"
	"net/http"
)

// Body is the shape of every message or error response.
type Body struct {
	Msg    string       `json:"msg"`
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"param"`
	Message string `json:"msg"`
}

// JSON writes data as the bare response body.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, Body{Msg: msg})
}

func Error(w http.ResponseWriter, statusCode int, msg string) {
	JSON(w, statusCode, Body{Msg: msg})
}

func ValidationFailed(w http.ResponseWriter, details []FieldError) {
	JSON(w, http.StatusBadRequest, Body{
		Msg:    "Validation failed",
		Errors: details,
	})
}

func BadRequest(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadRequest, msg)
}

func Unauthorized(w http.ResponseWriter, msg string) {
	Error(w, http.StatusUnauthorized, msg)
}

func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

func InternalError(w http.ResponseWriter, msg string) {
	Error(w, http.StatusInternalServerError, msg)
}
