package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/service"
)

type GroupHandler struct {
	groups *service.GroupService
	logger *zap.Logger
}

func NewGroupHandler(groups *service.GroupService, logger *zap.Logger) *GroupHandler {
	return &GroupHandler{groups: groups, logger: logger}
}

type groupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type memberRequest struct {
	UserID string `json:"user_id"`
}

type memberRoleRequest struct {
	Role string `json:"role"`
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := h.groups.Create(r.Context(), req.Name, req.Description, userID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, group)
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.GetByID(r.Context(), mux.Vars(r)["id"], userID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.ListForUser(r.Context(), userID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if groups == nil {
		groups = []*model.Group{}
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.groups.Update(r.Context(), mux.Vars(r)["id"], req.Name, req.Description, userID(r)); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.groups.Delete(r.Context(), mux.Vars(r)["id"], userID(r)); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.groups.AddMember(r.Context(), mux.Vars(r)["id"], req.UserID, userID(r)); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.groups.RemoveMember(r.Context(), vars["id"], vars["userID"], userID(r)); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) SetMemberRole(w http.ResponseWriter, r *http.Request) {
	var req memberRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	vars := mux.Vars(r)
	if err := h.groups.SetMemberRole(r.Context(), vars["id"], vars["userID"], req.Role, userID(r)); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
