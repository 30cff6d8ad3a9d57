package handler

import (
	"net/http"

	"notemaker-server/internal/domain"
	"notemaker-server/internal/middleware"
	"notemaker-server/internal/service"
	"notemaker-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type NoteHandler struct {
	service  *service.NoteService
	validate *validator.Validate
	log      *zap.SugaredLogger
}

func NewNoteHandler(service *service.NoteService, log *zap.SugaredLogger) *NoteHandler {
	return &NoteHandler{
		service:  service,
		validate: newValidator(),
		log:      log,
	}
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.List(r.Context(), middleware.GetUserID(r), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, notes)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := decodeJSON(r, &req, false); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.ValidationFailed(w, validationDetails(err))
		return
	}

	note, err := h.service.Create(r.Context(), middleware.GetUserID(r), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Created(w, note)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	note, err := h.service.GetByID(r.Context(), middleware.GetUserID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateNoteRequest
	if err := decodeJSON(r, &req, false); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	note, err := h.service.Update(r.Context(), middleware.GetUserID(r), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), middleware.GetUserID(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Message(w, "Note removed")
}

func (h *NoteHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	note, err := h.service.Duplicate(r.Context(), middleware.GetUserID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Created(w, note)
}

func (h *NoteHandler) Versions(w http.ResponseWriter, r *http.Request) {
	versions, err := h.service.Versions(r.Context(), middleware.GetUserID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, versions)
}

func (h *NoteHandler) Restore(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	note, err := h.service.Restore(r.Context(), middleware.GetUserID(r), vars["id"], vars["versionId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, note)
}

// Summarize accepts an optional {text} body. Without text the stored note is
// summarized.
func (h *NoteHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req domain.SummarizeRequest
	if err := decodeJSON(r, &req, true); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	result, err := h.service.Summarize(r.Context(), middleware.GetUserID(r), mux.Vars(r)["id"], req.Text)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, result)
}
