package main

import (
	"log"
	"time"

	"chessclub/api/cache"
	"chessclub/api/modules"
	"chessclub/api/routes"
	"chessclub/pkg/config"
	"chessclub/pkg/database"
	"chessclub/pkg/mq"
	"chessclub/pkg/redis"
	"chessclub/pkg/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading the configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		log.Fatalf("Error getting the sql connection: %v", err)
	}
	defer sqlDb.Close()

	if err := database.RunMigrations(cfg.Database, sqlDb); err != nil {
		log.Fatalf("Error running the migrations: %v", err)
	}

	redisClient := redis.GetClient(cfg.Redis)
	defer redisClient.Close()

	memCache := cache.NewMemCache(time.Minute)
	defer memCache.Close()

	deps := &modules.ModuleDependencies{
		Config:   cfg,
		DB:       db,
		Redis:    redisClient,
		MemCache: memCache,
	}

	// The broker is optional, games are still recorded without it.
	if cfg.Queue.URL != "" {
		publisher, err := mq.NewPublisher(cfg.Queue)
		if err != nil {
			log.Printf("Game events disabled: %v", err)
		} else {
			defer publisher.Close()
			deps.Publisher = publisher
		}
	}

	if cfg.Supabase.Enabled() {
		deps.Mirror = supabase.NewRatingMirror(cfg.Supabase)
	}

	// Create a module with all necessary handlers.
	module := modules.NewModule(deps)

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.GameHandler,
		module.PlayerHandler,
		module.RankingHandler,
		module.RatingHandler,
	)

	if err := router.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
