package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriters(t *testing.T) {
	tests := []struct {
		name     string
		write    func(w http.ResponseWriter)
		wantCode int
		wantBody string
	}{
		{
			name:     "object is written bare",
			write:    func(w http.ResponseWriter) { Success(w, map[string]string{"token": "abc"}) },
			wantCode: http.StatusOK,
			wantBody: `{"token":"abc"}`,
		},
		{
			name:     "list is a top level array",
			write:    func(w http.ResponseWriter) { Success(w, []string{"a", "b"}) },
			wantCode: http.StatusOK,
			wantBody: `["a","b"]`,
		},
		{
			name:     "created",
			write:    func(w http.ResponseWriter) { Created(w, map[string]string{"_id": "n1"}) },
			wantCode: http.StatusCreated,
			wantBody: `{"_id":"n1"}`,
		},
		{
			name:     "message",
			write:    func(w http.ResponseWriter) { Message(w, "Note removed") },
			wantCode: http.StatusOK,
			wantBody: `{"msg":"Note removed"}`,
		},
		{
			name:     "error",
			write:    func(w http.ResponseWriter) { Unauthorized(w, "Not authorized") },
			wantCode: http.StatusUnauthorized,
			wantBody: `{"msg":"Not authorized"}`,
		},
		{
			name: "validation failure keeps field details",
			write: func(w http.ResponseWriter) {
				ValidationFailed(w, []FieldError{{Field: "title", Message: "title is required"}})
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{"msg":"Validation failed","errors":[{"param":"title","msg":"title is required"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
