package migration

import (
	"fmt"
	"log"

	"Maqal-Backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ContentItem{}); err != nil {
		log.Fatalf("Error migrating content item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ContentUnlock{}); err != nil {
		log.Fatalf("Error migrating content unlock database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ContentMark{}); err != nil {
		log.Fatalf("Error migrating content mark database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.CoinPackage{}); err != nil {
		log.Fatalf("Error migrating coin package database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PaymentTransaction{}); err != nil {
		log.Fatalf("Error migrating payment transaction database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
