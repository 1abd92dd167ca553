package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/peakhr/hr-console-go/internal/config"
	"github.com/peakhr/hr-console-go/internal/handler/http/middleware"
	"github.com/peakhr/hr-console-go/internal/pkg/jwt"
)

func NewRouter(cfg *config.Config, jwtService jwt.Service, leaveHandler LeaveHandler, notifHandler NotificationHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-console"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// SSE stream authenticates via short-lived query token, not the
		// Authorization header
		r.Get("/notifications/stream", notifHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.CreateRequest)
				r.Get("/my", leaveHandler.GetMyRequests)
				r.Get("/{id}", leaveHandler.GetRequest)
				r.Patch("/{id}", leaveHandler.UpdateRequest)
				r.Post("/{id}/withdraw", leaveHandler.WithdrawRequest)

				// Proxy submission
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireProxyCapability)
					r.Post("/proxy", leaveHandler.CreateRequestFor)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", leaveHandler.ListRequests)
					r.Post("/{id}/approve", leaveHandler.ApproveRequest)
					r.Post("/{id}/reject", leaveHandler.RejectRequest)
				})

				// Manager tier
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/{id}/manager-approval", leaveHandler.ApproveRequestByManager)
					r.Post("/{id}/manager-rejection", leaveHandler.RejectRequestByManager)
					r.Put("/{id}/manager-remarks", leaveHandler.SetManagerRemarks)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notifHandler.List)
				r.Get("/unread-count", notifHandler.UnreadCount)
				r.Post("/mark-read", notifHandler.MarkAsRead)
				r.Post("/mark-all-read", notifHandler.MarkAllAsRead)
				r.Delete("/{id}", notifHandler.Delete)
				r.Get("/sse-token", notifHandler.GetSSEToken)
			})
		})
	})
	return r
}
