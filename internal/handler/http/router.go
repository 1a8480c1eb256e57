package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// UploadsDir is served read-only under /uploads when set.
	UploadsDir string
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, leaveHandler LeaveHandler, employeeHandler EmployeeHandler, notificationHandler NotificationHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.OriginHeader},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/leaves", func(r chi.Router) {
			r.Get("/", leaveHandler.List)
			r.Post("/", leaveHandler.Submit)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", leaveHandler.Get)
				r.Post("/cancel", leaveHandler.Cancel)
				r.Post("/cancel-approved", leaveHandler.CancelApproved)
				r.Post("/cancellation", leaveHandler.RequestCancellation)
				r.Get("/documents", leaveHandler.ListDocuments)
				r.Post("/documents", leaveHandler.UploadDocument)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/approve", leaveHandler.Approve)
					r.Post("/reject", leaveHandler.Reject)
					r.Post("/cancellation/approve", leaveHandler.ApproveCancellation)
					r.Post("/cancellation/reject", leaveHandler.RejectCancellation)
				})
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notificationHandler.List)
			r.Post("/read-all", notificationHandler.MarkAllAsRead)
			r.Patch("/{id}/read", notificationHandler.MarkAsRead)
		})

		r.Route("/employees", func(r chi.Router) {
			r.With(middleware.AdminOnly).Post("/", employeeHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.Get)
				r.Get("/ledger", employeeHandler.ListLedger)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Patch("/", employeeHandler.Update)
					r.Put("/balances", employeeHandler.AdjustBalances)
				})
			})
		})
	})

	if cfg.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	}

	return r
}
