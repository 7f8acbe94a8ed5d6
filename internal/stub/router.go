package stub

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SamHez/bodymax-gym/internal/config"
	"github.com/SamHez/bodymax-gym/internal/domain"
)

// NewRouter wires the API surface consumed by the dashboard client.
func NewRouter(cfg config.Config, logger *slog.Logger, store *Memstore) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Idempotency-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health := HealthHandler{}
	auth := AuthHandler{Store: store, JWTSecret: cfg.JWTSecret, TokenTTL: cfg.AccessTokenTTL}
	members := MemberHandler{Store: store}
	attendance := AttendanceHandler{Store: store}
	finance := FinanceHandler{Store: store}
	branches := BranchHandler{Store: store}

	health.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/api", func(ar chi.Router) {
		auth.RegisterRoutes(ar)
		// Branch reference data backs the signup form, so it stays public.
		branches.RegisterRoutes(ar)

		ar.Group(func(pr chi.Router) {
			pr.Use(AuthMiddleware(cfg.JWTSecret))
			pr.Use(RequireRole(domain.RoleManager, domain.RoleReceptionist))
			auth.RegisterProtectedRoutes(pr)
			members.RegisterRoutes(pr)
			attendance.RegisterRoutes(pr)
			finance.RegisterRoutes(pr)
		})
	})

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}
