package main

import (
	"log"
	"os"

	"Maqal-Backend/cmd/config"
	migration "Maqal-Backend/cmd/database/migrate"
	"Maqal-Backend/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to set up app: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
