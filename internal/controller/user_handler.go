package controller

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/service"
)

type UserHandler struct {
	users  *service.UserService
	logger *zap.Logger
}

func NewUserHandler(users *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetProfile(r.Context(), userID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.users.UpdateProfile(r.Context(), userID(r), req.Name, req.PhotoURL); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	rules, err := h.users.GetAvailability(r.Context(), userID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if rules == nil {
		rules = []model.AvailabilityRule{}
	}
	writeJSON(w, http.StatusOK, rules)
}

func (h *UserHandler) SaveAvailability(w http.ResponseWriter, r *http.Request) {
	var rules []model.AvailabilityRule
	if !decodeBody(w, r, &rules) {
		return
	}

	if err := h.users.SaveAvailability(r.Context(), userID(r), rules); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
