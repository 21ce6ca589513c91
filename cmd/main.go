package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"civicgrid/backend/internal/api/handler"
	"civicgrid/backend/internal/imagestore"
	"civicgrid/backend/internal/models"
	"civicgrid/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupDependencies() (*gorm.DB, *redis.Client) {
	dsn := getenv("DATABASE_DSN",
		"host=localhost user=user password=password dbname=civicgrid port=5432 sslmode=disable")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     getenv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting CivicGrid Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	uploadDir := getenv("UPLOAD_DIR", "./uploads")
	imageBaseURL := getenv("IMAGE_BASE_URL", "/uploads")
	images, err := imagestore.NewDiskStore(uploadDir, imageBaseURL)
	if err != nil {
		log.Fatalf("Failed to init image store: %v", err)
	}

	r := gin.Default()
	r.Static("/uploads", uploadDir)

	h := handler.NewHandler(s, images)
	handler.RegisterRoutes(r, h, []byte(jwtSecret))

	server := &http.Server{
		Addr:           getenv("LISTEN_ADDR", ":8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
