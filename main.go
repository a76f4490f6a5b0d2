package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JeffersonNayron/Turma-B/config"
	"github.com/JeffersonNayron/Turma-B/controllers"
	"github.com/JeffersonNayron/Turma-B/middleware"
	"github.com/JeffersonNayron/Turma-B/routes"
	"github.com/JeffersonNayron/Turma-B/services"
	"github.com/JeffersonNayron/Turma-B/store"
	"github.com/JeffersonNayron/Turma-B/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := config.InitLogger(conf.LogDir, !conf.IsProduction()); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer config.Logger.Sync()

	loc, err := conf.Location()
	if err != nil {
		config.Logger.Fatalw("invalid time zone", "error", err)
	}

	db, err := config.OpenDB(conf.DBPath, !conf.IsProduction())
	if err != nil {
		config.Logger.Fatalw("failed to open database", "error", err, "path", conf.DBPath)
	}

	ctx := context.Background()

	var sessions services.SessionStore
	if conf.UsesRedis() {
		client, err := config.NewRedisClient(ctx, conf)
		if err != nil {
			config.Logger.Fatalw("failed to connect to redis", "error", err, "addr", conf.GetRedisConnString())
		}
		defer client.Close()
		sessions = services.NewRedisSessionStore(client)
	} else {
		config.Logger.Infow("REDIS_HOST not set, keeping sessions in memory")
		sessions = services.NewMemorySessionStore()
	}

	secret := conf.JWTSecret
	if secret == "" {
		if secret, err = utils.NewSigningKey(); err != nil {
			config.Logger.Fatalw("failed to generate signing key", "error", err)
		}
		config.Logger.Warnw("JWT_SECRET not set, using a random secret; sessions end on restart")
	}

	people := store.NewPersonStore(db)
	users := store.NewUserStore(db)

	attendance := services.NewAttendanceService(people, services.NewClock(loc), conf.ActivityDuration)
	auth := services.NewAuthService(users, sessions, utils.NewTokenManager(secret), conf.SessionTTL)

	created, err := auth.EnsureAdmin(ctx, conf.AdminPassword)
	if err != nil {
		config.Logger.Fatalw("failed to create admin account", "error", err)
	}
	if created {
		config.Logger.Infow("admin account created from ADMIN_PASSWORD")
	}

	if conf.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	middleware.SetupMiddleware(r)
	routes.RegisterRoutes(r, routes.Controllers{
		People: controllers.NewPersonController(attendance),
		Auth:   controllers.NewAuthController(auth, conf.IsProduction()),
	}, auth, routes.Options{
		StaticDir:     conf.StaticDir,
		SecureCookies: conf.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + conf.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.Infow("server listening",
			"port", conf.ServerPort,
			"timezone", loc.String(),
			"activityDuration", conf.ActivityDuration.String(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Logger.Infow("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Errorw("server shutdown failed", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	config.Logger.Infow("server stopped")
}
