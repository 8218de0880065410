package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/pizzastore-api/internal/models"
	"github.com/franciscosanchezn/pizzastore-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// PizzaController handles HTTP requests related to pizzas
type PizzaController interface {
	// GetAllPizzas retrieves all pizzas
	GetAllPizzas(c *gin.Context)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(c *gin.Context)
	// CreatePizza creates a new pizza
	CreatePizza(c *gin.Context)
	// UpdatePizza updates an existing pizza
	UpdatePizza(c *gin.Context)
	// DeletePizza deletes a pizza by its ID
	DeletePizza(c *gin.Context)
}

type controller struct {
	service services.PizzaService
}

// NewPizzaController creates a new instance of PizzaController
func NewPizzaController(service services.PizzaService) PizzaController {
	return &controller{service: service}
}

// GetAllPizzas godoc
// @Summary Get all pizzas
// @Description Get the list of all pizzas
// @Tags pizzas
// @Produce json
// @Success 200 {array} models.Pizza
// @Failure 500
// @Router /pizzas [get]
func (c *controller) GetAllPizzas(ctx *gin.Context) {
	pizzas, err := c.service.GetAllPizzas(ctx.Request.Context())
	if err != nil {
		abortWithStorageError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pizzas)
}

// GetPizzaByID godoc
// @Summary Get pizza by ID
// @Description Get a single pizza by its ID
// @Tags pizzas
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 200 {object} models.Pizza
// @Failure 400
// @Failure 404
// @Router /pizzas/{id} [get]
func (c *controller) GetPizzaByID(ctx *gin.Context) {
	pizzaID, ok := pizzaIDParam(ctx)
	if !ok {
		return
	}

	pizza, err := c.service.GetPizzaByID(ctx.Request.Context(), pizzaID)
	if err != nil {
		abortWithStorageError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pizza)
}

// CreatePizza godoc
// @Summary Create a new pizza
// @Description Create a new pizza, the ID is assigned by the server
// @Tags pizzas
// @Accept json
// @Produce json
// @Param pizza body models.Pizza true "Pizza object"
// @Success 201 {object} models.Pizza
// @Header 201 {string} Location "/pizza/{id}"
// @Failure 400
// @Failure 500
// @Router /pizzas [post]
func (c *controller) CreatePizza(ctx *gin.Context) {
	var pizza models.Pizza
	if err := ctx.ShouldBindJSON(&pizza); err != nil {
		log.WithError(err).Debug("Rejected pizza payload")
		ctx.AbortWithStatus(http.StatusBadRequest)
		return
	}

	createdPizza, err := c.service.CreatePizza(ctx.Request.Context(), pizza)
	if err != nil {
		abortWithStorageError(ctx, err)
		return
	}
	ctx.Header("Location", fmt.Sprintf("/pizza/%d", createdPizza.ID))
	ctx.JSON(http.StatusCreated, createdPizza)
}

// UpdatePizza godoc
// @Summary Update a pizza
// @Description Overwrite the name and description of a pizza
// @Tags pizzas
// @Accept json
// @Param id path int true "Pizza ID"
// @Param pizza body models.Pizza true "Pizza object"
// @Success 204
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /pizzas/{id} [put]
func (c *controller) UpdatePizza(ctx *gin.Context) {
	pizzaID, ok := pizzaIDParam(ctx)
	if !ok {
		return
	}

	var pizza models.Pizza
	if err := ctx.ShouldBindJSON(&pizza); err != nil {
		log.WithError(err).Debug("Rejected pizza payload")
		ctx.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if _, err := c.service.UpdatePizza(ctx.Request.Context(), pizzaID, pizza); err != nil {
		abortWithStorageError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeletePizza godoc
// @Summary Delete a pizza
// @Description Delete a pizza by its ID
// @Tags pizzas
// @Param id path int true "Pizza ID"
// @Success 200
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /pizzas/{id} [delete]
func (c *controller) DeletePizza(ctx *gin.Context) {
	pizzaID, ok := pizzaIDParam(ctx)
	if !ok {
		return
	}

	if err := c.service.DeletePizza(ctx.Request.Context(), pizzaID); err != nil {
		abortWithStorageError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

// pizzaIDParam parses the :id path parameter, aborting with 400 when it is not an integer
func pizzaIDParam(ctx *gin.Context) (int, bool) {
	pizzaID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.AbortWithStatus(http.StatusBadRequest)
		return 0, false
	}
	return pizzaID, true
}

// abortWithStorageError maps a service error onto a bare status code
func abortWithStorageError(ctx *gin.Context, err error) {
	if errors.Is(err, services.ErrPizzaNotFound) {
		ctx.AbortWithStatus(http.StatusNotFound)
		return
	}
	log.WithError(err).WithField("path", ctx.Request.URL.Path).Error("Pizza storage operation failed")
	_ = ctx.Error(err)
	ctx.AbortWithStatus(http.StatusInternalServerError)
}
