package controller

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/service"
)

type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string             `json:"token"`
	User  *model.UserProfile `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
