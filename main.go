package main

import (
	"log"
	"net/http"
	"time"

	"msgboard/internal/api"
	"msgboard/internal/auth"
	"msgboard/internal/config"
	"msgboard/internal/redis"
	"msgboard/internal/service/board"
	"msgboard/internal/session"
	"msgboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.Printf("starting %s", cfg)

	db, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := storage.Migrate(db, cfg.Database.Driver); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	var sessions session.Store
	switch cfg.Session.Backend {
	case "redis":
		rdb, err := redis.NewClient(cfg)
		if err != nil {
			log.Fatalf("create redis client: %v", err)
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, sessionTTL)
	default:
		sessions = session.NewMemoryStore(sessionTTL)
	}

	authService := auth.NewService(sessions, cfg.Session.Secret, sessionTTL)
	boardService := board.NewService(db, cfg.Database.Driver)
	handlers := api.NewHandler(boardService, authService, cfg.Static.PublicDir)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	handlers.RegisterRoutes(router)

	corsHandler := cors.New(cors.Options{
		AllowOriginFunc:  func(string) bool { return true },
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	}).Handler(router)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, corsHandler); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
