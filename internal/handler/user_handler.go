package handler

import (
	"net/http"

	"notemaker-server/internal/middleware"
	"notemaker-server/internal/service"
	"notemaker-server/pkg/response"

	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
	log         *zap.SugaredLogger
}

func NewUserHandler(userService *service.UserService, log *zap.SugaredLogger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

// GetMe returns the authenticated user without the password hash.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		response.Unauthorized(w, "No token, authorization denied")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, user)
}
