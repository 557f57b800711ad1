package main

import (
	"context"
	"log"

	"github.com/clouddrop/server/internal/config"
	"github.com/clouddrop/server/internal/db"
	"github.com/clouddrop/server/internal/handlers"
	"github.com/clouddrop/server/internal/middleware"
	"github.com/clouddrop/server/internal/services"
	"github.com/clouddrop/server/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("MongoDB: %v", err)
	}
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	objects, err := storage.NewMinioStore(ctx, storage.MinioConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("MinIO: %v", err)
	}
	log.Println("Connected to MinIO")

	tokens, err := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Token service: %v", err)
	}

	users := db.NewUsers(database)
	files := db.NewFiles(database)

	authService := services.NewAuthService(users, tokens)
	fileService := services.NewFileService(objects, files, cfg.MaxUploadSize)

	app := handlers.NewApp(
		cfg,
		handlers.NewAuthHandler(authService),
		handlers.NewFileHandler(fileService),
		middleware.NewAuthMiddleware(authService),
	)

	log.Printf("Cloud Drop backend running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
