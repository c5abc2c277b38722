package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Zubair-hussain/xovato-tech/internal/geo"
	"github.com/Zubair-hussain/xovato-tech/internal/service"
	"github.com/Zubair-hussain/xovato-tech/pkg/httputil"
)

// ReviewHandler handles public review submission and listing.
type ReviewHandler struct {
	service  *service.ReviewService
	resolver *geo.Resolver
	logger   *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, resolver *geo.Resolver, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: svc, resolver: resolver, logger: logger}
}

// SubmitReviewRequest is the JSON request body for submitting a review.
type SubmitReviewRequest struct {
	CountryCode   string `json:"country_code"`
	Category      string `json:"category"`
	Rating        int    `json:"rating"`
	Title         string `json:"title"`
	Comment       string `json:"comment"`
	DisplayName   string `json:"display_name"`
	ReviewerEmail string `json:"reviewer_email"`
}

// Submit handles POST /api/v1/reviews. A missing country code is resolved
// from the edge headers so the browser does not have to call the geo
// endpoint first.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if req.CountryCode == "" {
		req.CountryCode = h.resolver.Resolve(r.Header).CountryCode
	}

	review, err := h.service.Submit(r.Context(), service.SubmitReviewInput{
		CountryCode:   req.CountryCode,
		Category:      req.Category,
		Rating:        req.Rating,
		Title:         req.Title,
		Comment:       req.Comment,
		DisplayName:   req.DisplayName,
		ReviewerEmail: req.ReviewerEmail,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: review})
}

// ListApproved handles GET /api/v1/reviews.
func (h *ReviewHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "limit must be an integer"},
			})
			return
		}
		limit = n
	}

	reviews, err := h.service.ListApproved(r.Context(), q.Get("country"), q.Get("category"), limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: reviews})
}
