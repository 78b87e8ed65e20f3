package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Notification driver names.
const (
	DriverSync  = "sync"
	DriverQueue = "queue"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	DatabaseURL            string
	RedisURL               string
	JWTSecret              string
	TokenTTL               time.Duration
	SupabaseURL            string
	SupabaseServiceRoleKey string
	StorageRegion          string
	StorageAccessKeyID     string
	StorageSecretKey       string
	ResourcesBucket        string
	SchedulesBucket        string
	SignedURLTTL           time.Duration
	WhatsAppAccessToken    string
	WhatsAppPhoneNumberID  string
	NotificationDriver     string
	NATSURL                string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "School API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("token.ttl", "2160h")
	v.SetDefault("signed.url.ttl", "5m")
	v.SetDefault("notification.driver", DriverSync)
	v.SetDefault("nats.url", "")

	tokenTTL, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	signedTTL, err := time.ParseDuration(v.GetString("signed.url.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid signed url ttl: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		JWTSecret:              v.GetString("jwt.secret"),
		TokenTTL:               tokenTTL,
		SupabaseURL:            v.GetString("supabase.url"),
		SupabaseServiceRoleKey: v.GetString("supabase.service.role.key"),
		StorageRegion:          v.GetString("storage.region"),
		StorageAccessKeyID:     v.GetString("storage.access.key.id"),
		StorageSecretKey:       v.GetString("storage.secret.access.key"),
		ResourcesBucket:        v.GetString("study.resources.s3.bucket"),
		SchedulesBucket:        v.GetString("schedules.s3.bucket"),
		SignedURLTTL:           signedTTL,
		WhatsAppAccessToken:    v.GetString("whatsapp.access.token"),
		WhatsAppPhoneNumberID:  v.GetString("whatsapp.phone.number.id"),
		NotificationDriver:     strings.ToLower(v.GetString("notification.driver")),
	}
	cfg.NATSURL = v.GetString("nats.url")

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	// Supabase deployments authenticate storage with the service-role key;
	// a dedicated storage secret takes precedence when both are set.
	if cfg.StorageSecretKey == "" {
		cfg.StorageSecretKey = cfg.SupabaseServiceRoleKey
	}

	// AWS_S3_BUCKET backfills both bucket options when they are unset.
	if fallback := v.GetString("aws.s3.bucket"); fallback != "" {
		if cfg.ResourcesBucket == "" {
			cfg.ResourcesBucket = fallback
		}
		if cfg.SchedulesBucket == "" {
			cfg.SchedulesBucket = fallback
		}
	}

	if cfg.NotificationDriver != DriverSync && cfg.NotificationDriver != DriverQueue {
		return Config{}, fmt.Errorf("unknown notification driver %q", cfg.NotificationDriver)
	}

	return cfg, nil
}
