package main

import (
	"clinic-desk-api/config"
	"clinic-desk-api/internal/appointment"
	"clinic-desk-api/internal/auth"
	"clinic-desk-api/internal/logs"
	"clinic-desk-api/internal/middlewares"
	"clinic-desk-api/internal/util"
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == config.DriverSQLite {
		// An in-memory sqlite database lives only as long as its connection.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&appointment.Appointment{}, &logs.SystemLog{}, &auth.Staff{}); err != nil {
		return nil, err
	}
	return db, nil
}

func setupRouter(cfg config.Config, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestID(), middlewares.GinLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middlewares.RequestIDHeader},
		AllowCredentials: true,
	}))

	requireStaff := middlewares.AuthMiddleware(cfg.JWTSecret)

	logService := &logs.LogService{DB: db}

	authService := &auth.AuthService{DB: db}
	auth.RegisterRoutes(r, &auth.AuthController{
		AuthService:   authService,
		LS:            logService,
		Secret:        cfg.JWTSecret,
		SecureCookies: cfg.CookieSecure,
	})

	appointmentService := appointment.NewAppointmentService(db, cfg.IdentityPolicy == config.IdentityUnique)
	appointment.RegisterRoutes(r, &appointment.AppointmentController{
		Service:  appointmentService,
		Archive:  appointment.NewArchiveService(cfg.ExportBucket, appointmentService),
		LS:       logService,
		SlotMode: cfg.SlotSelection,
	}, requireStaff)

	logs.RegisterRoutes(r, logService, requireStaff)

	return r
}

func main() {
	cfg := config.LoadConfig()
	util.InitLogger(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("Failed to connect to database")
	}

	r := setupRouter(cfg, db)

	log.Info().
		Str("port", cfg.Port).
		Str("identity_policy", cfg.IdentityPolicy).
		Str("slot_selection", cfg.SlotSelection).
		Bool("archive", cfg.ExportBucket != "").
		Msg("Starting server")
	if err := r.Run("0.0.0.0:" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
