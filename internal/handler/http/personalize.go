package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Zubair-hussain/xovato-tech/internal/geo"
	"github.com/Zubair-hussain/xovato-tech/internal/service"
	"github.com/Zubair-hussain/xovato-tech/pkg/httputil"
)

// PersonalizeHandler serves the regional review wall state.
type PersonalizeHandler struct {
	service  *service.PersonalizeService
	resolver *geo.Resolver
	logger   *slog.Logger
}

// NewPersonalizeHandler creates a new personalization HTTP handler.
func NewPersonalizeHandler(svc *service.PersonalizeService, resolver *geo.Resolver, logger *slog.Logger) *PersonalizeHandler {
	return &PersonalizeHandler{service: svc, resolver: resolver, logger: logger}
}

// Personalize handles GET /api/v1/personalize. The country defaults to the
// geo resolution of the request headers; an absent progress means the visitor
// has not scrolled and the region follows their country.
func (h *PersonalizeHandler) Personalize(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	country := q.Get("country")
	if country == "" {
		country = h.resolver.Resolve(r.Header).CountryCode
	}

	progress := -1.0
	if raw := q.Get("progress"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "progress must be a number"},
			})
			return
		}
		progress = p
	}

	result := h.service.Personalize(r.Context(), service.PersonalizeInput{
		CountryCode: country,
		Category:    q.Get("category"),
		Progress:    progress,
	})

	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
