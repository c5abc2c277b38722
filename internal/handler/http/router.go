package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zubair-hussain/xovato-tech/internal/geo"
	"github.com/Zubair-hussain/xovato-tech/internal/service"
	"github.com/Zubair-hussain/xovato-tech/pkg/health"
	"github.com/Zubair-hussain/xovato-tech/pkg/middleware"
)

// NewRouter creates a chi router with all review service routes registered.
func NewRouter(
	reviewService *service.ReviewService,
	personalizeService *service.PersonalizeService,
	moderationService *service.ModerationService,
	gateService *service.GateService,
	resolver *geo.Resolver,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("review"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("review"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	geoHandler := NewGeoHandler(resolver)
	reviewHandler := NewReviewHandler(reviewService, resolver, logger)
	personalizeHandler := NewPersonalizeHandler(personalizeService, resolver, logger)
	adminHandler := NewAdminHandler(gateService, moderationService, logger)

	// Public endpoints
	r.Get("/api/v1/geo", geoHandler.Resolve)
	r.Get("/api/v1/personalize", personalizeHandler.Personalize)

	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/", reviewHandler.Submit)
		r.Get("/", reviewHandler.ListApproved)
	})

	// Token validator that bridges to the gate's session manager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := gateService.ValidateSession(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{Email: claims.Email}, nil
	}

	// Access gate endpoints (public)
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/check", adminHandler.Check)
		r.Post("/login", adminHandler.RequestLogin)
		r.Post("/exchange", adminHandler.Exchange)

		// Moderation endpoints (session required)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))

			r.Get("/reviews/pending", adminHandler.ListPending)
			r.Patch("/reviews/{id}", adminHandler.SetStatus)
			r.Get("/metrics", adminHandler.Metrics)
		})
	})

	return r
}
