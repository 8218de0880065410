package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/franciscosanchezn/pizzastore-api/internal/database"
	"github.com/franciscosanchezn/pizzastore-api/internal/models"
	"github.com/franciscosanchezn/pizzastore-api/internal/services"
	"gorm.io/gorm"
)

func main() {
	// Parse command line flags
	driver := flag.String("driver", "sqlite", "Database driver (mysql, postgres or sqlite)")
	dsn := flag.String("dsn", "", "Full connection string for networked drivers")
	path := flag.String("path", database.DefaultSQLitePath, "SQLite database file")
	force := flag.Bool("force", false, "Delete existing pizzas before seeding")
	flag.Parse()

	db, err := database.InitDatabase(database.DatabaseConfig{
		Driver: *driver,
		URL:    *dsn,
		Path:   *path,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if *force {
		result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Pizza{})
		if result.Error != nil {
			log.Fatal("Failed to clear pizzas:", result.Error)
		}
		fmt.Printf("Removed %d existing pizzas\n", result.RowsAffected)
	}

	pizzaService := services.NewPizzaService(db)
	inserted, err := pizzaService.SeedPizzas(context.Background(), services.DefaultMenu)
	if err != nil {
		log.Fatal("Failed to seed pizzas:", err)
	}
	if inserted == 0 {
		fmt.Println("Pizzas table is not empty, nothing seeded (use -force to reset)")
		return
	}

	pizzas, err := pizzaService.GetAllPizzas(context.Background())
	if err != nil {
		log.Fatal("Failed to list pizzas:", err)
	}
	fmt.Printf("✓ Seeded %d pizzas\n", inserted)
	for _, p := range pizzas {
		fmt.Printf("  %d  %-12s %s\n", p.ID, p.Name, p.Description)
	}
	fmt.Println("\nTry them out:")
	fmt.Println("curl http://localhost:8080/pizzas")
}
