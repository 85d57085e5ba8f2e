package main

import (
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/ds"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/dsn"
)

func main() {
	_ = godotenv.Load()
	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	// Migrate the schema
	err = db.AutoMigrate(
		&ds.User{},
		&ds.PredictionRequest{},
	)
	if err != nil {
		panic("cant migrate db")
	}
}
