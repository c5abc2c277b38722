package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Zubair-hussain/xovato-tech/pkg/logger"
)

// RequestLogger returns middleware that builds a request-scoped logger
// enriched with correlation_id, actor_email, trace_id, and span_id, then
// stores it in context via logger.NewContext. Downstream handlers retrieve it
// with logger.FromContext(ctx).
//
// Mount AFTER RequestLogging (which sets correlation_id) and Tracing (which
// sets the OpenTelemetry span context); the Auth middleware sets the actor
// email later, on admin routes only.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if email := AdminEmailFromContext(ctx); email != "" {
				ctx = logger.WithActorEmail(ctx, email)
			}

			enriched := logger.WithContext(ctx, base)
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
