// Package http provides the HTTP handlers and router for the review service.
package http

import (
	"net/http"

	"github.com/Zubair-hussain/xovato-tech/internal/geo"
	"github.com/Zubair-hussain/xovato-tech/pkg/httputil"
)

// GeoHandler handles the country resolution endpoint.
type GeoHandler struct {
	resolver *geo.Resolver
}

// NewGeoHandler creates a new geo HTTP handler.
func NewGeoHandler(resolver *geo.Resolver) *GeoHandler {
	return &GeoHandler{resolver: resolver}
}

// Resolve handles GET /api/v1/geo. It always answers 200; when no edge
// header carries a usable code the fallback country is returned. The result
// depends on per-request headers, so caches must not hold it.
func (h *GeoHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteJSON(w, http.StatusOK, h.resolver.Resolve(r.Header))
}
