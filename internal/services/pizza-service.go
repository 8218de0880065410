package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/pizzastore-api/internal/models"
	"gorm.io/gorm"
)

// ErrPizzaNotFound is returned when no pizza exists with the requested ID
var ErrPizzaNotFound = errors.New("pizza not found")

// DefaultMenu is the set of pizzas inserted by SeedPizzas
var DefaultMenu = []models.Pizza{
	{Name: "Margherita", Description: "Tomato sauce, mozzarella and basil"},
	{Name: "Pepperoni", Description: "Tomato sauce, mozzarella and pepperoni"},
	{Name: "Vegetarian", Description: "Tomato sauce, mozzarella, bell peppers and olives"},
}

// PizzaService provides methods to interact with the pizza database
type PizzaService interface {
	// GetAllPizzas retrieves all pizzas in insertion order
	GetAllPizzas(ctx context.Context) ([]models.Pizza, error)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(ctx context.Context, id int) (models.Pizza, error)
	// CreatePizza stores a new pizza and returns it with its generated ID
	CreatePizza(ctx context.Context, pizza models.Pizza) (models.Pizza, error)
	// UpdatePizza overwrites the name and description of an existing pizza
	UpdatePizza(ctx context.Context, id int, pizza models.Pizza) (models.Pizza, error)
	// DeletePizza deletes a pizza from the database by its ID
	DeletePizza(ctx context.Context, id int) error
	// SeedPizzas inserts the given pizzas only if the table is empty
	SeedPizzas(ctx context.Context, pizzas []models.Pizza) (int, error)
}

// pizzaService is the implementation of the PizzaService interface
type pizzaService struct {
	db *gorm.DB
}

// NewPizzaService creates a new instance of PizzaService
func NewPizzaService(db *gorm.DB) PizzaService {
	return &pizzaService{db: db}
}

func (s *pizzaService) GetAllPizzas(ctx context.Context) ([]models.Pizza, error) {
	pizzas := []models.Pizza{}
	if err := s.db.WithContext(ctx).Order("id asc").Find(&pizzas).Error; err != nil {
		return nil, fmt.Errorf("list pizzas: %w", err)
	}
	if pizzas == nil {
		pizzas = []models.Pizza{}
	}
	return pizzas, nil
}

func (s *pizzaService) GetPizzaByID(ctx context.Context, id int) (models.Pizza, error) {
	var pizza models.Pizza
	if err := s.db.WithContext(ctx).First(&pizza, id).Error; err != nil {
		return models.Pizza{}, translateError(err)
	}
	return pizza, nil
}

func (s *pizzaService) CreatePizza(ctx context.Context, pizza models.Pizza) (models.Pizza, error) {
	// IDs are always assigned by the database
	pizza.ID = 0
	if err := s.db.WithContext(ctx).Create(&pizza).Error; err != nil {
		return models.Pizza{}, fmt.Errorf("create pizza: %w", err)
	}
	return pizza, nil
}

func (s *pizzaService) UpdatePizza(ctx context.Context, id int, pizza models.Pizza) (models.Pizza, error) {
	var updated models.Pizza
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, id).Error; err != nil {
			return err
		}
		updated.Name = pizza.Name
		updated.Description = pizza.Description
		return tx.Save(&updated).Error
	})
	if err != nil {
		return models.Pizza{}, translateError(err)
	}
	return updated, nil
}

func (s *pizzaService) DeletePizza(ctx context.Context, id int) error {
	result := s.db.WithContext(ctx).Delete(&models.Pizza{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete pizza %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPizzaNotFound
	}
	return nil
}

func (s *pizzaService) SeedPizzas(ctx context.Context, pizzas []models.Pizza) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Pizza{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count pizzas: %w", err)
	}
	if count > 0 || len(pizzas) == 0 {
		return 0, nil
	}

	seed := make([]models.Pizza, len(pizzas))
	for i, p := range pizzas {
		seed[i] = models.Pizza{Name: p.Name, Description: p.Description}
	}
	if err := s.db.WithContext(ctx).Create(&seed).Error; err != nil {
		return 0, fmt.Errorf("seed pizzas: %w", err)
	}
	return len(seed), nil
}

// translateError maps gorm errors onto the service's sentinel errors
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPizzaNotFound
	}
	return err
}
