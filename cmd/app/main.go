package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tawsila/cmd"
	httpin "tawsila/internal/adapters/in/http"
	"tawsila/internal/adapters/out/postgres/driverrepo"
	"tawsila/internal/adapters/out/postgres/orderrepo"
)

func main() {
	// env vars may also come from the environment directly
	_ = godotenv.Load(".env")

	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(gormpostgres.Open(configs.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &driverrepo.DriverDTO{}); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	broker := connectBroker(configs, logger)
	if broker != nil {
		defer broker.Close()
	}

	app := cmd.NewCompositionRoot(configs, gormDB, broker, logger)
	go app.Hub().Run()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("background jobs failed to start: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:    envOrDefault("HTTP_PORT", "8080"),
		DBHost:      envOrDefault("DB_HOST", "localhost"),
		DBPort:      envOrDefault("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBSslMode:   envOrDefault("DB_SSLMODE", "disable"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		OSRMBaseURL: envOrDefault("OSRM_BASE_URL", "https://router.project-osrm.org"),
	}
}

func envOrDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// connectBroker dials RabbitMQ when configured. The broker feed is
// optional: without it events still reach the live sockets.
func connectBroker(configs cmd.Config, logger *slog.Logger) *amqp.Connection {
	if configs.RabbitMQURL == "" {
		return nil
	}

	conn, err := amqp.Dial(configs.RabbitMQURL)
	if err != nil {
		logger.Warn("broker connection failed, events go to sockets only", "error", err)
		return nil
	}
	return conn
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	auth := httpin.NewAuthMiddleware([]byte(configs.JWTSecret))
	app.CreateServer().RegisterRoutes(e, auth)

	gateway := app.CreateGateway()
	e.GET("/ws/drivers/:id", gateway.HandleDriverSocket)
	e.GET("/ws/track/:number", gateway.HandleTrackSocket)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
