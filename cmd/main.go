package main

import (
	"fmt"
	"os"

	"github.com/VisaPro-Team/be-visa-platform/config"
	"github.com/VisaPro-Team/be-visa-platform/domain/auth"
	"github.com/VisaPro-Team/be-visa-platform/migrations"
	"github.com/VisaPro-Team/be-visa-platform/pkg/apperrors"
	"github.com/VisaPro-Team/be-visa-platform/pkg/logger"
	"github.com/VisaPro-Team/be-visa-platform/pkg/storage"
	"github.com/VisaPro-Team/be-visa-platform/routes"
	"github.com/VisaPro-Team/be-visa-platform/utils"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pressly/goose/v3"
	"github.com/spf13/viper"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/main.go [server|migrate|seed]")
		os.Exit(1)
	}

	config.InitConfig()

	logger.Init(logger.Config{
		Level:       logger.LevelInfo,
		Environment: viper.GetString("ENVIRONMENT"),
		ServiceName: "visa-platform",
		Version:     viper.GetString("APP_VERSION"),
	})
	log := logger.Get()

	config.InitDB()
	defer config.CloseDB()

	switch os.Args[1] {
	case "server":
		startServer(log)
	case "migrate":
		runMigrations(log)
	case "seed":
		runSeed(log)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func startServer(log logger.Logger) {
	config.InitRedis()
	if err := storage.Init(); err != nil {
		// Media endpoints degrade gracefully without S3.
		log.Warn("S3 storage not configured, media uploads disabled", logger.Err(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewRequestValidator()
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(log)

	e.Use(logger.RequestLoggerMiddleware(log))
	e.Use(logger.RecoveryMiddleware(log))
	corsOrigin := viper.GetString("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Auth-Token"},
		ExposeHeaders:    []string{echo.HeaderContentLength},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	routes.RegisterRoutes(e)

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("starting server", logger.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("server stopped", err)
	}
}

func runMigrations(log logger.Logger) {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("mysql"); err != nil {
		log.Fatal("set migration dialect", err)
	}
	if err := goose.Up(config.DB.DB, "."); err != nil {
		log.Fatal("run migrations", err)
	}
	log.Info("migrations applied")
}

// runSeed creates the initial super admin and the baseline content sections.
// Both inserts are idempotent, so re-running the command is safe.
func runSeed(log logger.Logger) {
	email := viper.GetString("SEED_ADMIN_EMAIL")
	password := viper.GetString("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("seed admin", fmt.Errorf("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set"))
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("hash seed password", err)
	}

	_, err = config.DB.Exec(
		"INSERT INTO admins (email, password_hash, role, created_at) VALUES (?, ?, ?, NOW()) ON DUPLICATE KEY UPDATE email = email",
		auth.NormalizeEmail(email), hashedPassword, auth.RoleSuperAdmin,
	)
	if err != nil {
		log.Fatal("seed super admin", err)
	}
	log.Info("seeded super admin", logger.String("email", auth.NormalizeEmail(email)))

	sections := map[string]string{
		"home":    `{"hero_title": "Your Trusted Visa Partner", "hero_subtitle": "Expert guidance for every step of your journey"}`,
		"about":   `{"title": "About Us", "body": "We have helped thousands of clients with their visa applications."}`,
		"contact": `{"email": "info@example.com", "phone": "", "address": ""}`,
		"footer":  `{"copyright": "VisaPro", "links": []}`,
	}
	for section, data := range sections {
		_, err := config.DB.Exec(
			"INSERT INTO contents (section, data, updated_at) VALUES (?, ?, NOW()) ON DUPLICATE KEY UPDATE section = section",
			section, data,
		)
		if err != nil {
			log.Fatal("seed content section "+section, err)
		}
		log.Info("seeded content section", logger.String("section", section))
	}
}
