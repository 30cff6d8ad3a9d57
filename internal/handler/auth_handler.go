package handler

import (
	"net/http"

	"notemaker-server/internal/domain"
	"notemaker-server/internal/service"
	"notemaker-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *validator.Validate
	log         *zap.SugaredLogger
}

func NewAuthHandler(authService *service.AuthService, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   newValidator(),
		log:         log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decodeJSON(r, &req, false); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.ValidationFailed(w, validationDetails(err))
		return
	}

	token, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Created(w, token)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(r, &req, false); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.ValidationFailed(w, validationDetails(err))
		return
	}

	token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, token)
}
