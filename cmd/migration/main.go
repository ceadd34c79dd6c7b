package main

import (
	"flag"
	"log"
	"patient-registry-service/internal/app/config"
	"patient-registry-service/internal/app/drivers/database"

	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	flag.Parse()

	migrationDirection := migrate.Up
	switch *direction {
	case "up":
	case "down":
		migrationDirection = migrate.Down
	default:
		log.Fatalf("Unknown migration direction %q", *direction)
	}

	driverConfig := config.NewDriverConfig()
	db := database.NewPostgresDB(driverConfig)
	defer db.Close()

	n, err := database.RunPostgresMigrations(db, migrationDirection)
	if err != nil {
		log.Fatalf("Error executing migration: %v", err)
	}

	log.Printf("Applied %d migrations!\n", n)
}
