package http

import (
	"log/slog"
	"os"

	"github.com/atlas-rh/pointage-backend-go/internal/config"
	"github.com/atlas-rh/pointage-backend-go/internal/handler/http/middleware"
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	pointageHandler PointageHandler,
	absenceHandler AbsenceHandler,
	masterHandler MasterHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "pointage-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/pointages", func(r chi.Router) {
				r.Get("/", pointageHandler.List)
				r.Get("/journal", pointageHandler.Journal)
				r.Get("/export", pointageHandler.Export)
				r.Post("/", pointageHandler.Save)
				r.Put("/", pointageHandler.UpdateBatch)
				r.Post("/save-all", pointageHandler.SaveAll)

				// Validation transitions, elevated roles only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireElevated)
					r.Put("/{id}/valider", pointageHandler.Valider)
					r.Post("/valider-tout", pointageHandler.ValiderTout)
					r.Delete("/", pointageHandler.Delete)
				})

				// Invalidation, RH only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRH)
					r.Put("/{id}/invalider", pointageHandler.Invalider)
					r.Post("/invalider-tout", pointageHandler.InvaliderTout)
				})
			})

			r.Route("/absences", func(r chi.Router) {
				r.Post("/", absenceHandler.Create)
				r.Get("/", absenceHandler.List)
				r.Get("/{id}", absenceHandler.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireElevated)
					r.Put("/{id}/approve", absenceHandler.Approve)
					r.Put("/{id}/reject", absenceHandler.Reject)
				})
			})

			r.Get("/users", masterHandler.ListUsers)
			r.Get("/departements", masterHandler.ListDepartements)
			r.Get("/societes", masterHandler.ListSocietes)
		})
	})
	return r
}
