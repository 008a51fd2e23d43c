package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ecobot-api/internal/application/user"
	"github.com/ecobot-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// UserHandler exposes profile reads and writes to collaborators.
type UserHandler struct {
	svc         user.Service
	adminUserID string
}

func NewUserHandler(svc user.Service, adminUserID string) *UserHandler {
	return &UserHandler{svc: svc, adminUserID: adminUserID}
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// List is restricted to the configured admin identity, passed by the
// gateway in the X-Acting-User header.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.adminUserID == "" || r.Header.Get("X-Acting-User") != h.adminUserID {
		writeError(w, http.StatusForbidden, "admin only")
		return
	}
	users, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
