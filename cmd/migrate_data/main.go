package main

import (
	"log"

	"media-feed/internal/config"
	"media-feed/internal/database"
	"media-feed/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Copies users and posts from the SQLite file at DB_PATH into the PostgreSQL
// database described by DB_HOST and friends. Rows already present are kept.
func main() {
	cfg := config.LoadConfig()

	// 1. Connect to SQLite (Source)
	sqliteDB, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to SQLite: %v", err)
	}
	log.Printf("Connected to SQLite at %s", cfg.DBPath)

	// 2. Connect to PostgreSQL (Destination)
	pgDB, err := gorm.Open(postgres.Open(database.PostgresDSN(cfg)), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	if err := database.Migrate(pgDB); err != nil {
		log.Fatalf("Failed to migrate PostgreSQL: %v", err)
	}

	log.Println("Starting data migration...")

	migrateTable := func(tableName string, rows interface{}) {
		log.Printf("Migrating table: %s", tableName)

		if err := sqliteDB.Find(rows).Error; err != nil {
			log.Printf("Error reading %s from SQLite: %v", tableName, err)
			return
		}

		err := pgDB.Transaction(func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, 500).Error
		})
		if err != nil {
			log.Printf("Error writing %s to Postgres: %v", tableName, err)
		} else {
			log.Printf("Successfully migrated %s", tableName)
		}
	}

	// Users first so every post owner exists on the other side.
	var users []models.User
	migrateTable("users", &users)

	var posts []models.Post
	migrateTable("posts", &posts)

	log.Println("Migration completed!")
}
