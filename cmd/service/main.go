package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/config"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/dsn"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/handler"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/model"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/pkg/auth"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/pkg/storage"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/repository"
)

// loadModel reads the artifact from disk, fetching it from MinIO first when
// the local file is missing.
func loadModel(cfg *config.Config) (*model.Ensemble, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		log.Infof("model artifact missing locally, fetching %s from MinIO", cfg.ModelKey)
		store, err := storage.NewModelStore(cfg.MinIOHost+":"+cfg.MinIOPort, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, false)
		if err != nil {
			return nil, fmt.Errorf("minio: %w", err)
		}
		if err := store.FetchModel(context.Background(), cfg.ModelKey, cfg.ModelPath); err != nil {
			return nil, fmt.Errorf("fetch model: %w", err)
		}
	}
	return model.Load(cfg.ModelPath)
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	sessionSvc, err := auth.NewSessionService(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("sessions: %v", err)
	}
	defer sessionSvc.Close()

	jwtSvc := auth.NewJWTService(cfg.JWTSecret)

	predictor, err := loadModel(cfg)
	if err != nil {
		log.Fatalf("model: %v", err)
	}
	log.Infof("model loaded from %s (%d trees)", cfg.ModelPath, len(predictor.Trees))

	h := handler.NewHandler(repo, cfg, predictor, jwtSvc, sessionSvc)

	router := gin.Default()
	h.RegisterHandler(router)

	addr := fmt.Sprintf("%s:%d", cfg.ServiceHost, cfg.ServicePort)
	log.Infof("listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
