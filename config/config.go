package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`
	CacheTTLHours        int    `mapstructure:"CACHE_TTL_HOURS"`

	// Upstream services.
	RecommendationBackendURL string `mapstructure:"RECOMMENDATION_BACKEND_URL"`
	ItineraryBackendURL      string `mapstructure:"ITINERARY_BACKEND_URL"`

	// Dispatch policy.
	DispatchTimeoutSeconds int `mapstructure:"DISPATCH_TIMEOUT_SECONDS"`
	DispatchMaxRetries     int `mapstructure:"DISPATCH_MAX_RETRIES"`
	DispatchBackoffMs      int `mapstructure:"DISPATCH_BACKOFF_MS"`

	// Booking simulation.
	BookingSeed            int64   `mapstructure:"BOOKING_SEED"`
	BookingFullyBookedRate float64 `mapstructure:"BOOKING_FULLY_BOOKED_RATE"`
	BookingTimeoutRate     float64 `mapstructure:"BOOKING_TIMEOUT_RATE"`
	BookingMaxPartySize    int     `mapstructure:"BOOKING_MAX_PARTY_SIZE"`
	BookingLatencyMs       int     `mapstructure:"BOOKING_LATENCY_MS"`

	// Itinerary scoring.
	BalancePreset string `mapstructure:"BALANCE_PRESET"`

	// Booking reminders.
	RemindersEnabled  bool `mapstructure:"REMINDERS_ENABLED"`
	ReminderLeadHours int  `mapstructure:"REMINDER_LEAD_HOURS"`
}

// DispatchSettings is the resolved retry/timeout policy for the recommendation backend.
type DispatchSettings struct {
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
}

// BookingSettings is the resolved booking simulator policy.
type BookingSettings struct {
	Seed            int64
	FullyBookedRate float64
	TimeoutRate     float64
	MaxPartySize    int
	Latency         time.Duration
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	v.SetDefault("CACHE_TTL_HOURS", 24)
	v.SetDefault("RECOMMENDATION_BACKEND_URL", "http://localhost:8000/api/chat")
	v.SetDefault("ITINERARY_BACKEND_URL", "http://localhost:8000/api/itinerary")
	v.SetDefault("DISPATCH_TIMEOUT_SECONDS", 10)
	v.SetDefault("DISPATCH_MAX_RETRIES", 3)
	v.SetDefault("DISPATCH_BACKOFF_MS", 0)
	v.SetDefault("BOOKING_SEED", 0)
	v.SetDefault("BOOKING_FULLY_BOOKED_RATE", 0.1)
	v.SetDefault("BOOKING_TIMEOUT_RATE", 0.05)
	v.SetDefault("BOOKING_MAX_PARTY_SIZE", 20)
	v.SetDefault("BOOKING_LATENCY_MS", 0)
	v.SetDefault("BALANCE_PRESET", "equal_thirds")
	v.SetDefault("REMINDERS_ENABLED", false)
	v.SetDefault("REMINDER_LEAD_HOURS", 2)
}

// Load reads configuration into a fresh Config using the given viper instance.
func Load(v *viper.Viper) (Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Dispatch derives the dispatcher settings, falling back to sane values for unset fields.
func (c Config) Dispatch() DispatchSettings {
	timeout := time.Duration(c.DispatchTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := c.DispatchMaxRetries
	if retries <= 0 {
		retries = 3
	}
	backoff := time.Duration(c.DispatchBackoffMs) * time.Millisecond
	if backoff < 0 {
		backoff = 0
	}
	return DispatchSettings{Timeout: timeout, MaxRetries: retries, Backoff: backoff}
}

func (c Config) Booking() BookingSettings {
	maxParty := c.BookingMaxPartySize
	if maxParty <= 0 {
		maxParty = 20
	}
	return BookingSettings{
		Seed:            c.BookingSeed,
		FullyBookedRate: c.BookingFullyBookedRate,
		TimeoutRate:     c.BookingTimeoutRate,
		MaxPartySize:    maxParty,
		Latency:         time.Duration(c.BookingLatencyMs) * time.Millisecond,
	}
}

// CacheTTL is the freshness window for cached user data.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.CacheTTLHours) * time.Hour
}

func (c Config) ReminderLead() time.Duration {
	return time.Duration(c.ReminderLeadHours) * time.Hour
}
