package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Environment string
	Server      ServerConfiguration
	Database    DatabaseConfiguration
	Redis       RedisConfiguration
	Queue       QueueConfiguration
	Bucket      BucketConfiguration
	Supabase    SupabaseConfiguration
	Rating      RatingConfiguration
	Achievement AchievementConfiguration
}

// Server configuration struct.
type ServerConfiguration struct {
	Address string
}

// Database configuration struct.
type DatabaseConfiguration struct {
	DSN            string
	Database       string
	MigrationsPath string
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// QueueConfiguration holds the AMQP broker values used for game events.
type QueueConfiguration struct {
	URL       string
	QueueName string
}

// BucketConfiguration holds the S3 compatible bucket used for job logs.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

// SupabaseConfiguration holds the optional rating mirror values.
type SupabaseConfiguration struct {
	URL   string
	Key   string
	Table string
}

// RatingConfiguration holds the rating batch options.
type RatingConfiguration struct {
	// Start the full replay from the persisted ratings instead of the default one.
	// Games already reflected in those ratings are applied again, so repeated runs drift.
	ReplayFromPersisted bool
	// Apply the rating change as soon as a game is recorded.
	RateOnRecord bool
	// Cron expression for the full recalculation job.
	RecalculationCron string
}

// AchievementConfiguration holds the achievement evaluation options.
type AchievementConfiguration struct {
	// Evaluate the trailing windows against the wall clock instead of the game date.
	WallClockWindows bool
}

// Enabled reports whether the bucket has enough data to upload logs.
func (b BucketConfiguration) Enabled() bool {
	return b.LogBucket != "" && b.AccessKey != "" && b.AccessSecret != ""
}

// Enabled reports whether the Supabase mirror was configured.
func (s SupabaseConfiguration) Enabled() bool {
	return s.URL != "" && s.Key != ""
}

// Load the .env file (when not running on Docker) and read every value with its default.
func Load() (*Config, error) {
	if os.Getenv("ENVIRONMENT") != "docker" {
		// Missing .env is fine, the values can come straight from the environment.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("couldn't load .env file: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Server: ServerConfiguration{
			Address: v.GetString("HTTP_ADDRESS"),
		},
		Database: DatabaseConfiguration{
			DSN:            v.GetString("DATABASE_URL"),
			Database:       v.GetString("POSTGRES_DB"),
			MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		},
		Redis: RedisConfiguration{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		Queue: QueueConfiguration{
			URL:       v.GetString("AMQP_URL"),
			QueueName: v.GetString("AMQP_GAME_QUEUE"),
		},
		Bucket: BucketConfiguration{
			Region:       v.GetString("BUCKET_REGION"),
			Endpoint:     v.GetString("BUCKET_ENDPOINT"),
			AccessKey:    v.GetString("BUCKET_ACCESS_KEY"),
			AccessSecret: v.GetString("BUCKET_ACCESS_SECRET"),
			LogBucket:    v.GetString("BUCKET_LOG_NAME"),
		},
		Supabase: SupabaseConfiguration{
			URL:   v.GetString("SUPABASE_URL"),
			Key:   v.GetString("SUPABASE_KEY"),
			Table: v.GetString("SUPABASE_PLAYERS_TABLE"),
		},
		Rating: RatingConfiguration{
			ReplayFromPersisted: v.GetBool("RATING_REPLAY_FROM_PERSISTED"),
			RateOnRecord:        v.GetBool("RATING_RATE_ON_RECORD"),
			RecalculationCron:   v.GetString("RATING_RECALCULATION_CRON"),
		},
		Achievement: AchievementConfiguration{
			WallClockWindows: v.GetBool("ACHIEVEMENT_WALL_CLOCK_WINDOWS"),
		},
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	return cfg, nil
}

// setDefaults registers the fallback value of every optional key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("POSTGRES_DB", "chessclub")
	v.SetDefault("MIGRATIONS_PATH", "pkg/database/migrations")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("AMQP_GAME_QUEUE", "chessclub.games")
	v.SetDefault("BUCKET_REGION", "auto")
	v.SetDefault("SUPABASE_PLAYERS_TABLE", "players")
	v.SetDefault("RATING_REPLAY_FROM_PERSISTED", false)
	v.SetDefault("RATING_RATE_ON_RECORD", true)
	v.SetDefault("RATING_RECALCULATION_CRON", "0 3 * * *")
	v.SetDefault("ACHIEVEMENT_WALL_CLOCK_WINDOWS", false)
}
