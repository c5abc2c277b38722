package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Zubair-hussain/xovato-tech/internal/domain"
	"github.com/Zubair-hussain/xovato-tech/internal/service"
	"github.com/Zubair-hussain/xovato-tech/pkg/httputil"
	"github.com/Zubair-hussain/xovato-tech/pkg/middleware"
	"github.com/Zubair-hussain/xovato-tech/pkg/validator"
)

// loginAccepted is the uniform response to every login request, allowlisted
// or not.
const loginAccepted = "if the address is registered, a login link has been sent"

// AdminHandler handles the access gate and moderation endpoints.
type AdminHandler struct {
	gate       *service.GateService
	moderation *service.ModerationService
	logger     *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(gate *service.GateService, moderation *service.ModerationService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{gate: gate, moderation: moderation, logger: logger}
}

// Check handles GET /api/v1/admin/check. It always answers 200 with a plain
// boolean; the admin shell uses it to decide whether to render the gate.
func (h *AdminHandler) Check(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"ok": h.gate.CheckAdmin(email)})
}

// LoginRequest is the JSON request body for requesting a login link.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RequestLogin handles POST /api/v1/admin/login.
func (h *AdminHandler) RequestLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.gate.RequestLogin(r.Context(), req.Email); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusAccepted, httputil.Response{
		Data: map[string]string{"message": loginAccepted},
	})
}

// ExchangeRequest is the JSON request body for redeeming a login token.
type ExchangeRequest struct {
	Token string `json:"token" validate:"required"`
}

// Exchange handles POST /api/v1/admin/exchange.
func (h *AdminHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	var req ExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	session, email, err := h.gate.Exchange(r.Context(), req.Token)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"session_token": session, "email": email},
	})
}

// ListPending handles GET /api/v1/admin/reviews/pending.
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.moderation.ListPending(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: reviews})
}

// SetStatusRequest is the JSON request body for moderating a review.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved hidden removed"`
}

// SetStatus handles PATCH /api/v1/admin/reviews/{id}.
func (h *AdminHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	moderator := middleware.AdminEmailFromContext(r.Context())
	if err := h.moderation.SetStatus(r.Context(), id.String(), domain.Status(req.Status), moderator); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"id": id.String(), "status": req.Status},
	})
}

// Metrics handles GET /api/v1/admin/metrics.
func (h *AdminHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.moderation.Metrics(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: m})
}
