package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chessclub/api/cache"
	"chessclub/pkg/config"
	"chessclub/pkg/database"
	"chessclub/pkg/mq"
	"chessclub/pkg/redis"
	"chessclub/pkg/supabase"
	"chessclub/scheduler/jobs"

	"github.com/go-co-op/gocron/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		log.Fatal(err)
	}

	// Runs the migrations.
	rawDb, err := db.DB()
	if err != nil {
		log.Fatalf("Couldn't get raw db connection: %v", err)
	}
	defer rawDb.Close()

	if err := database.RunMigrations(cfg.Database, rawDb); err != nil {
		log.Fatal(err)
	}

	redisClient := redis.GetClient(cfg.Redis)
	defer redisClient.Close()

	memCache := cache.NewMemCache(time.Minute)
	defer memCache.Close()

	deps := &jobs.Dependencies{
		Config:   cfg,
		DB:       db,
		Redis:    redisClient,
		MemCache: memCache,
	}
	if cfg.Supabase.Enabled() {
		deps.Mirror = supabase.NewRatingMirror(cfg.Supabase)
	}

	log.Println("Starting scheduler.")

	// Create a new scheduler with options.
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	// Full rating replay, daily at 3:00 AM unless configured otherwise.
	_, err = s.NewJob(
		gocron.CronJob(cfg.Rating.RecalculationCron, false),
		gocron.NewTask(
			jobs.RecalculateRatings,
			deps,
		),
		gocron.WithName("rating-recalculation"),
		gocron.WithTags("rating"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Fatalf("Failed to create rating recalculation job: %v", err)
	}

	// Standings written back on the roster every hour.
	_, err = s.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(
			jobs.PersistRankings,
			deps,
		),
		gocron.WithName("rankings-persistence"),
		gocron.WithTags("rankings"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		log.Fatalf("Failed to create rankings persistence job: %v", err)
	}

	// Start the scheduler.
	s.Start()

	defer func() {
		// Shutdown the scheduler when main() exits.
		err := s.Shutdown()
		if err != nil {
			log.Printf("Error shutting down scheduler: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The game events are optional, the periodic jobs cover a missing broker.
	if cfg.Queue.URL != "" {
		consumer, err := mq.NewConsumer(cfg.Queue)
		if err != nil {
			log.Printf("Game event consumer disabled: %v", err)
		} else {
			defer consumer.Close()
			go func() {
				if err := consumer.Consume(ctx, jobs.GameEventHandler(deps)); err != nil {
					log.Printf("Game event consumer stopped: %v", err)
				}
			}()
		}
	}

	// Setup signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for termination signal.
	<-sigChan
	log.Println("Shutting down scheduler...")
}
