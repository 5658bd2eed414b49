package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"remote-pet-diagnosis/internal/config"
	"remote-pet-diagnosis/internal/db"
	apihttp "remote-pet-diagnosis/internal/http"
	"remote-pet-diagnosis/internal/repository"
	"remote-pet-diagnosis/internal/service"
)

const loginRateWindow = 10 * time.Minute

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	ownerRepo := repository.NewPgOwnerRepository(pool)
	doctorRepo := repository.NewPgDoctorRepository(pool)
	petRepo := repository.NewPgPetRepository(pool)
	consultationRepo := repository.NewPgConsultationRepository(pool)

	loginLimiter := service.NewLoginRateLimiter(loginRateWindow, cfg.LoginRateMax)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory login limiter", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, loginRateWindow, cfg.LoginRateMax)
		}
		cancel()
	}

	tokenSvc := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	authSvc := service.NewAuthService(logger, ownerRepo, doctorRepo, loginLimiter)
	petSvc := service.NewPetService(logger, petRepo)
	consultationSvc := service.NewConsultationService(logger, petRepo, consultationRepo)
	dashboardSvc := service.NewDashboardService(logger, ownerRepo, doctorRepo, petRepo, consultationRepo)

	router := apihttp.NewRouter(apihttp.RouterOptions{
		Logger:       logger,
		TokenService: tokenSvc,
		Auth:         apihttp.NewAuthHandler(logger, authSvc, tokenSvc, cfg.CookieSecure),
		Pets:         apihttp.NewPetHandler(logger, petSvc),
		Dashboards:   apihttp.NewDashboardHandler(logger, dashboardSvc, consultationSvc),
		CookieSecure: cfg.CookieSecure,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
