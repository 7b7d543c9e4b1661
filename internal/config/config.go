package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Classifier
		Enrichment
		NewContentSync
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string
	}

	Classifier struct {
		MinConfidence int // score below which a task is never sent to enrichment
	}

	Enrichment struct {
		Interval time.Duration // pause between consecutive provider calls
		Timeout  time.Duration // per-call HTTP timeout
		BaseURL  string        // metadata provider base URL
	}

	NewContentSync struct {
		Enabled  bool
		Schedule string // Cron format: "0 6 * * *" = daily at 06:00
	}

	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Classifier defaults
	v.SetDefault("classifier_min_confidence", DefaultMinConfidence)

	// Enrichment defaults
	v.SetDefault("enrich_interval", "200ms")
	v.SetDefault("enrich_timeout", "10s")
	v.SetDefault("enrich_base_url", DefaultMetadataBaseURL)

	// New-content sync defaults
	v.SetDefault("newcontent_sync_enabled", false)
	v.SetDefault("newcontent_sync_schedule", "0 6 * * *") // Daily at 06:00

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Classifier: Classifier{
			MinConfidence: v.GetInt("CLASSIFIER_MIN_CONFIDENCE"),
		},
		Enrichment: Enrichment{
			Interval: v.GetDuration("ENRICH_INTERVAL"),
			Timeout:  v.GetDuration("ENRICH_TIMEOUT"),
			BaseURL:  v.GetString("ENRICH_BASE_URL"),
		},
		NewContentSync: NewContentSync{
			Enabled:  v.GetBool("NEWCONTENT_SYNC_ENABLED"),
			Schedule: v.GetString("NEWCONTENT_SYNC_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
	}
}
