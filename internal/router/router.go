// Package router builds the gin engine: global middleware, the health check,
// the pizza routes and the Swagger documentation endpoints.
package router

import (
	"net/http"
	"time"

	_ "github.com/franciscosanchezn/pizzastore-api/docs" // Import generated docs
	"github.com/franciscosanchezn/pizzastore-api/internal/controllers"
	"github.com/franciscosanchezn/pizzastore-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// ServiceName is reported by the health check
const ServiceName = "pizzastore-api"

// Options configures the router
type Options struct {
	PizzaController    controllers.PizzaController
	CORSAllowedOrigins []string
	Logger             logrus.FieldLogger
}

// New initializes the gin router and sets up the routes
func New(opts Options) *gin.Engine {
	router := gin.New()

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.CORS(opts.CORSAllowedOrigins),
	)

	setupRoutes(router, opts.PizzaController)
	return router
}

// setupRoutes defines the routes for the gin router
func setupRoutes(router *gin.Engine, pizzaController controllers.PizzaController) {
	router.GET("/health", healthCheckHandler)

	pizzas := router.Group("/pizzas")
	{
		pizzas.GET("", pizzaController.GetAllPizzas)
		pizzas.POST("", pizzaController.CreatePizza)
		pizzas.GET("/:id", pizzaController.GetPizzaByID)
		pizzas.PUT("/:id", pizzaController.UpdatePizza)
		pizzas.DELETE("/:id", pizzaController.DeletePizza)
	}

	// Swagger documentation, the raw description is served at /swagger/doc.json
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   ServiceName,
	})
}
