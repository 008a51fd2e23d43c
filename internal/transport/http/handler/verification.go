package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ecobot-api/internal/application/verification"
	"github.com/ecobot-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// VerificationHandler receives inbound verification events from the
// messaging-bot gateway and replies with the resulting state.
type VerificationHandler struct {
	svc verification.Service
}

func NewVerificationHandler(svc verification.Service) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

type submitPhoneRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
}

type submitCodeRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Code   string `json:"code" validate:"required,len=6,numeric"`
}

func (h *VerificationHandler) SubmitPhone(w http.ResponseWriter, r *http.Request) {
	var req submitPhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	state, err := h.svc.SubmitPhone(r.Context(), req.UserID, req.Phone)
	if err != nil {
		writeJSON(w, statusFor(err), VerificationEnvelope{State: state, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, VerificationEnvelope{State: state, Message: "verification code requested"})
}

func (h *VerificationHandler) SubmitCode(w http.ResponseWriter, r *http.Request) {
	var req submitCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	state, err := h.svc.SubmitCode(r.Context(), req.UserID, req.Code)
	if err != nil {
		writeJSON(w, statusFor(err), VerificationEnvelope{State: state, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, VerificationEnvelope{State: state, Message: "code accepted"})
}

func (h *VerificationHandler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.State(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerificationEnvelope{State: state})
}
