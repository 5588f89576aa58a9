package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/turnos-hq/horario-backend-go/internal/config"
	appHTTP "github.com/turnos-hq/horario-backend-go/internal/handler/http"
	"github.com/turnos-hq/horario-backend-go/internal/pkg/cron"
	"github.com/turnos-hq/horario-backend-go/internal/pkg/database"
	"github.com/turnos-hq/horario-backend-go/internal/pkg/jwt"
	"github.com/turnos-hq/horario-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/turnos-hq/horario-backend-go/internal/service/auth"
	descansoService "github.com/turnos-hq/horario-backend-go/internal/service/descanso"
	fichajeService "github.com/turnos-hq/horario-backend-go/internal/service/fichaje"
	horarioService "github.com/turnos-hq/horario-backend-go/internal/service/horario"
	transicionService "github.com/turnos-hq/horario-backend-go/internal/service/transicion"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	horarioRepo := postgresql.NewHorarioRepository(db)
	contratoRepo := postgresql.NewContratoRepository(db)
	descansoRepo := postgresql.NewDescansoRepository(db)
	usuarioRepo := postgresql.NewUsuarioRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	txRunner := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}

	fichajeSvc := fichajeService.NewFichajeService(horarioRepo)
	descansoSvc := descansoService.NewDescansoService(descansoRepo, horarioRepo)
	transicionSvc := transicionService.NewTransicionService(txRunner, horarioRepo, descansoRepo, fichajeSvc)
	horarioSvc := horarioService.NewHorarioService(horarioRepo, contratoRepo)
	authService := serviceAuth.NewAuthService(usuarioRepo, JWTService)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService)
	horarioHandler := appHTTP.NewHorarioHandler(horarioSvc)
	fichajeHandler := appHTTP.NewFichajeHandler(horarioRepo, fichajeSvc, descansoSvc)

	scheduler := cron.NewScheduler()
	transicionJobs := cron.NewTransicionJobs(horarioRepo, transicionSvc, cfg.Cron.TransitionInterval, cfg.Cron.StaleGrace)
	transicionJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		usuarioRepo,
		authHandler,
		horarioHandler,
		fichajeHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
