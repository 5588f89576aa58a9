package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/turnos-hq/horario-backend-go/internal/config"
	"github.com/turnos-hq/horario-backend-go/internal/domain/usuario"
	"github.com/turnos-hq/horario-backend-go/internal/handler/http/middleware"
	"github.com/turnos-hq/horario-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	permisos usuario.Permisos,
	authHandler AuthHandler,
	horarioHandler HorarioHandler,
	fichajeHandler FichajeHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "horario-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Post("/refresh", authHandler.RefreshToken)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/horarios", func(r chi.Router) {

				// Planning: bulk management of shifts
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermiso(permisos, usuario.PermisoGestionarHorarios))
					r.Post("/lote", horarioHandler.CrearLote)
					r.Put("/lote", horarioHandler.ActualizarLote)
					r.Delete("/lote", horarioHandler.EliminarLote)
					r.Post("/consulta", horarioHandler.ObtenerLote)
				})

				r.Get("/{id}", horarioHandler.Obtener)

				// Clocking: own attendance events
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermiso(permisos, usuario.PermisoFichar))
					r.Post("/{id}/fichaje/entrada", fichajeHandler.FicharEntrada)
					r.Post("/{id}/fichaje/salida", fichajeHandler.FicharSalida)
					r.Post("/{id}/descanso/inicio", fichajeHandler.IniciarDescanso)
					r.Post("/{id}/descanso/fin", fichajeHandler.FinalizarDescanso)
					r.Get("/{id}/descanso/activo", fichajeHandler.ObtenerDescansoActivo)
				})
			})
		})
	})
	return r
}
