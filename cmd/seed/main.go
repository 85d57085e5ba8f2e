// Seed writes the demo model artifact, uploads it to MinIO and creates the
// default moderator account.
package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/config"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/ds"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/dsn"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/model"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/pkg/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// 1. write the model artifact
	raw, err := json.MarshalIndent(model.Demo(), "", "  ")
	if err != nil {
		log.Fatalf("marshal model: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.ModelPath), 0o755); err != nil {
		log.Fatalf("model dir: %v", err)
	}
	if err := os.WriteFile(cfg.ModelPath, raw, 0o644); err != nil {
		log.Fatalf("write model: %v", err)
	}
	log.Infof("model artifact written to %s", cfg.ModelPath)

	// 2. upload it to MinIO so other instances can fetch it
	store, err := storage.NewModelStore(cfg.MinIOHost+":"+cfg.MinIOPort, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, false)
	if err != nil {
		log.Warnf("minio unavailable, skipping upload: %v", err)
	} else {
		if err := store.UploadModel(context.Background(), cfg.ModelKey, cfg.ModelPath); err != nil {
			log.Warnf("model upload failed: %v", err)
		} else {
			log.Infof("model uploaded to bucket %s as %s", cfg.MinIOBucket, cfg.ModelKey)
		}
	}

	// 3. seed the moderator account
	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database")
	}

	var existing ds.User
	if err := db.Where("login = ?", "moderator").First(&existing).Error; err == nil {
		log.Info("moderator already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("moderator"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	moderator := ds.User{Login: "moderator", Password: string(hashed), IsModerator: true}
	if err := db.Create(&moderator).Error; err != nil {
		log.Fatalf("create moderator: %v", err)
	}
	log.Info("moderator created")
}
