package database

import (
	"log"

	"github.com/j15z/portfolio/models"

	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.Author{},
		&models.Category{},
		&models.Post{},
		&models.Project{},
		&models.PostCategory{},
		&models.ProjectCategory{},
	)

	if err != nil {
		log.Printf("Error running migrations: %v", err)
		return err
	}

	log.Println("Migrations completed successfully")
	return nil
}
