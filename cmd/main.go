package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/franciscosanchezn/pizzastore-api/docs"
	"github.com/franciscosanchezn/pizzastore-api/internal/config"
	"github.com/franciscosanchezn/pizzastore-api/internal/controllers"
	"github.com/franciscosanchezn/pizzastore-api/internal/database"
	"github.com/franciscosanchezn/pizzastore-api/internal/router"
	"github.com/franciscosanchezn/pizzastore-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// @title PizzaStore API
// @version v1
// @description Making the Pizzas you love
// @host localhost:8080
// @BasePath /
func main() {
	// Load environment variables
	loadDotenvFile()

	// Load configuration
	configuration := loadConfig()

	// Initialize logger
	setUpLogger(configuration)

	// Initialize database connection
	db := setupDatabase(configuration)

	// Initialize services and controllers
	pizzaService := services.NewPizzaService(db)
	if configuration.SeedDatabase {
		seedDatabase(pizzaService)
	}
	pizzaController := controllers.NewPizzaController(pizzaService)

	// Initialize Gin router
	if configuration.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	docs.SwaggerInfo.Host = configuration.Address()
	engine := router.New(router.Options{
		PizzaController:    pizzaController,
		CORSAllowedOrigins: configuration.CORSAllowedOrigins,
		Logger:             log.StandardLogger(),
	})

	serve(configuration.Address(), engine)
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		log.WithError(err).Error("Fatal startup error")
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter.
// The level follows APP_ENV unless LOG_LEVEL is set explicitly.
func setUpLogger(conf *config.Config) {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(config.LevelForEnvironment(conf.Environment))
	if explicit := config.GetEnvWithDefault("LOG_LEVEL", ""); explicit != "" {
		level, err := log.ParseLevel(explicit)
		if err != nil {
			log.WithField("log_level", explicit).Warn("Unknown LOG_LEVEL, keeping environment default")
			return
		}
		log.SetLevel(level)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase opens the configured backend and migrates the schema
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(conf.Database())
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
	return db
}

// seedDatabase inserts the default menu when the pizzas table is empty
func seedDatabase(pizzaService services.PizzaService) {
	inserted, err := pizzaService.SeedPizzas(context.Background(), services.DefaultMenu)
	checkPanicErr(err)
	if inserted == 0 {
		log.Info("Database already seeded with initial data")
		return
	}
	log.WithField("pizzas", inserted).Info("Database seeded successfully")
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight requests
func serve(addr string, handler http.Handler) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown did not complete cleanly")
	}
}
