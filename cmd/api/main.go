package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/atlas-rh/pointage-backend-go/internal/config"
	appHTTP "github.com/atlas-rh/pointage-backend-go/internal/handler/http"
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/database"
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/jwt"
	"github.com/atlas-rh/pointage-backend-go/internal/repository/postgresql"
	absenceService "github.com/atlas-rh/pointage-backend-go/internal/service/absence"
	authService "github.com/atlas-rh/pointage-backend-go/internal/service/auth"
	"github.com/atlas-rh/pointage-backend-go/internal/service/master"
	pointageService "github.com/atlas-rh/pointage-backend-go/internal/service/pointage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	pointageRepo := postgresql.NewPointageRepository(db)
	absenceRepo := postgresql.NewAbsenceRepository(db)
	departementRepo := postgresql.NewDepartementRepository(db)
	societeRepo := postgresql.NewSocieteRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	pointages := pointageService.NewPointageService(db, pointageRepo, userRepo, absenceRepo, cfg.Pointage.TieBreak)
	absences := absenceService.NewAbsenceService(db, absenceRepo, userRepo)
	auth := authService.NewAuthService(db, userRepo, jwtService)
	masters := master.NewMasterService(userRepo, departementRepo, societeRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, auth)
	pointageHandler := appHTTP.NewPointageHandler(pointages)
	absenceHandler := appHTTP.NewAbsenceHandler(absences)
	masterHandler := appHTTP.NewMasterHandler(masters)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		pointageHandler,
		absenceHandler,
		masterHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	log.Printf("Server running at http://localhost%s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
