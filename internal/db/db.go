package db

import (
	"log"

	"parasitehub/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the postgres connection and runs migrations. Fatal on failure;
// there is nothing useful to do without a database.
func Init(dsn string) *gorm.DB {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection established")

	if err := Migrate(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	return gdb
}

// Migrate applies the schema. Split out so tests can run it against their own
// database handle.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Parasite{},
		&models.Article{},
		&models.Post{},
		&models.ResearchPost{},
		&models.ClinicalImage{},
		&models.ResearchImage{},
		&models.ResearchFile{},
		&models.Comment{},
		&models.Reply{},
		&models.Reaction{},
	)
}
