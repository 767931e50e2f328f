package main

import (
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"user_backend/internal/app/router"
	authhandler "user_backend/internal/feature/auth/transport/handler"
	authusecase "user_backend/internal/feature/auth/usecase"
	"user_backend/internal/feature/users/adapters"
	userhandler "user_backend/internal/feature/users/transport/handler"
	userusecase "user_backend/internal/feature/users/usecase"
	"user_backend/internal/platform/cache"
	infradb "user_backend/internal/platform/db"
	jwtmw "user_backend/internal/platform/jwt"
	"user_backend/internal/platform/ratelimit"
	infraredis "user_backend/internal/platform/redis"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
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

	// Repository
	userRepo := adapters.NewUserMySQL(db)

	// Redisキャッシュでラップ（読み取りは60秒、書き込みで即時無効化）
	cachedUserRepo := cache.NewCachingUserRepository(rdb, cache.DefaultTTL, userRepo)

	// JWT
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	jwtGen := jwtmw.NewGenerator(secret, 24*time.Hour)

	// Usecase
	authUC := authusecase.NewAuthUsecase(cachedUserRepo, jwtGen)
	userUC := userusecase.NewUserUsecase(cachedUserRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	userH := userhandler.NewUserHandler(userUC)

	// 保護ルートのレートリミット（クライアントIPごとに60リクエスト/60秒）
	limiter := ratelimit.NewLimiter(60, 60*time.Second)
	defer limiter.Close()

	// ルータ生成
	r := router.NewRouter(authH, userH, limiter)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
