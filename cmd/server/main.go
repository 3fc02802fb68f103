package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"penduduk_backend/internal/app/di"
	"penduduk_backend/internal/app/router"
	authadapters "penduduk_backend/internal/feature/auth/adapters"
	authhandler "penduduk_backend/internal/feature/auth/transport/handler"
	authusecase "penduduk_backend/internal/feature/auth/usecase"
	residentadapters "penduduk_backend/internal/feature/residents/adapters"
	residenthandler "penduduk_backend/internal/feature/residents/transport/handler"
	residentusecase "penduduk_backend/internal/feature/residents/usecase"
	"penduduk_backend/internal/platform/cache"
	infradb "penduduk_backend/internal/platform/db"
	jwtmw "penduduk_backend/internal/platform/jwt"
	infraredis "penduduk_backend/internal/platform/redis"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

func main() {
	ctx := context.Background()

	// db
	db := infradb.OpenDB()

	// Redis (optional: the app runs without cache and falls back to
	// database-backed sessions)
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Photo storage (fs, s3 or memory per PHOTO_DRIVER)
	photos, err := di.NewPhotoStore(ctx)
	if err != nil {
		log.Fatalf("photo store init failed: %v", err)
	}

	// Repositories
	userRepo := authadapters.NewUserRepository(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	residentRepo := residentadapters.NewResidentRepository(db)

	// Wrap the resident repository with the Redis cache
	cachedResidentRepo := cache.NewCachingResidentRepository(rdb, 5*time.Minute, residentRepo, "residents")

	// JWT
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	tokenGen := jwtmw.NewGenerator(secret, accessTokenTTL)

	// Usecases
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokenGen, accessTokenTTL, refreshTokenTTL)
	residentUC := residentusecase.NewResidentUsecase(cachedResidentRepo, photos)

	// Handlers
	authH := authhandler.NewAuthHandler(authUC)
	residentH := residenthandler.NewResidentHandler(residentUC)

	// Router
	router := router.NewRouter(authH, residentH)

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
