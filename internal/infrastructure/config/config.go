package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Scheduler SchedulerConfig
	SMS       SMSConfig
	Visit     VisitConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                 string
	AccessTokenExpiration  time.Duration
	RefreshTokenExpiration time.Duration
	Issuer                 string
	RefreshSecret          string
	MaxRefreshCount        int
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	IdleTimeout           time.Duration
	MaxHeaderBytes        int
	MaxBodySize           int64
	RateLimitEnabled      bool
	RateLimitRequests     int
	RateLimitWindow       time.Duration
	AuthRateLimitEnabled  bool          // Enable stricter rate limiting for auth endpoints
	AuthRateLimitRequests int           // Max auth attempts (default: 5)
	AuthRateLimitWindow   time.Duration // Auth rate limit window (default: 1 minute)
	CORSAllowOrigins      []string
	CORSAllowMethods      []string
	CORSAllowHeaders      []string
	TrustedProxies        []string
}

// SchedulerConfig holds background job configuration
type SchedulerConfig struct {
	Enabled            bool
	MaxConcurrentJobs  int
	JobTimeout         time.Duration
	RetryAttempts      int
	RetryDelay         time.Duration
	NightlyRunHour     int // club-local hour for the nightly jobs (status refresh, auto sign-out, expiry)
	DeliveryPollPeriod time.Duration
	ReminderPeriod     time.Duration
}

// SMSConfig holds SMS gateway settings
type SMSConfig struct {
	Provider       string // leopard or mobilesasa
	Leopard        LeopardConfig
	MobileSASA     MobileSASAConfig
	IdempotencyTTL time.Duration
}

// LeopardConfig holds SMS Leopard credentials
type LeopardConfig struct {
	BaseURL   string
	APIKey    string
	APISecret string
	SenderID  string
}

// MobileSASAConfig holds MobileSASA credentials
type MobileSASAConfig struct {
	BaseURL  string
	APIToken string
	SenderID string
}

// VisitConfig holds the visit quota thresholds
type VisitConfig struct {
	MaxDailyVisitsPerHost int
	MaxMonthlyVisits      int
	MaxYearlyVisits       int
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with CLUBGATE_ prefix (e.g., CLUBGATE_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("CLUBGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:                 v.GetString("jwt.secret"),
			AccessTokenExpiration:  v.GetDuration("jwt.access_token_expiration"),
			RefreshTokenExpiration: v.GetDuration("jwt.refresh_token_expiration"),
			Issuer:                 v.GetString("jwt.issuer"),
			RefreshSecret:          v.GetString("jwt.refresh_secret"),
			MaxRefreshCount:        v.GetInt("jwt.max_refresh_count"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:           v.GetDuration("http.read_timeout"),
			WriteTimeout:          v.GetDuration("http.write_timeout"),
			IdleTimeout:           v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:        v.GetInt("http.max_header_bytes"),
			MaxBodySize:           v.GetInt64("http.max_body_size"),
			RateLimitEnabled:      v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests:     v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:       v.GetDuration("http.rate_limit_window"),
			AuthRateLimitEnabled:  v.GetBool("http.auth_rate_limit_enabled"),
			AuthRateLimitRequests: v.GetInt("http.auth_rate_limit_requests"),
			AuthRateLimitWindow:   v.GetDuration("http.auth_rate_limit_window"),
			CORSAllowOrigins:      v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:      v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:      v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:        v.GetStringSlice("http.trusted_proxies"),
		},
		Scheduler: SchedulerConfig{
			Enabled:            v.GetBool("scheduler.enabled"),
			MaxConcurrentJobs:  v.GetInt("scheduler.max_concurrent_jobs"),
			JobTimeout:         v.GetDuration("scheduler.job_timeout"),
			RetryAttempts:      v.GetInt("scheduler.retry_attempts"),
			RetryDelay:         v.GetDuration("scheduler.retry_delay"),
			NightlyRunHour:     v.GetInt("scheduler.nightly_run_hour"),
			DeliveryPollPeriod: v.GetDuration("scheduler.delivery_poll_period"),
			ReminderPeriod:     v.GetDuration("scheduler.reminder_period"),
		},
		SMS: SMSConfig{
			Provider: v.GetString("sms.provider"),
			Leopard: LeopardConfig{
				BaseURL:   v.GetString("sms.leopard.base_url"),
				APIKey:    v.GetString("sms.leopard.api_key"),
				APISecret: v.GetString("sms.leopard.api_secret"),
				SenderID:  v.GetString("sms.leopard.sender_id"),
			},
			MobileSASA: MobileSASAConfig{
				BaseURL:  v.GetString("sms.mobilesasa.base_url"),
				APIToken: v.GetString("sms.mobilesasa.api_token"),
				SenderID: v.GetString("sms.mobilesasa.sender_id"),
			},
			IdempotencyTTL: v.GetDuration("sms.idempotency_ttl"),
		},
		Visit: VisitConfig{
			MaxDailyVisitsPerHost: v.GetInt("visit.max_daily_visits_per_host"),
			MaxMonthlyVisits:      v.GetInt("visit.max_monthly_visits"),
			MaxYearlyVisits:       v.GetInt("visit.max_yearly_visits"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultString(target *string, fallback string) {
	if *target == "" {
		*target = fallback
	}
}

func defaultInt(target *int, fallback int) {
	if *target == 0 {
		*target = fallback
	}
}

func defaultDuration(target *time.Duration, fallback time.Duration) {
	if *target == 0 {
		*target = fallback
	}
}

// applyDefaults fills every field the config file and environment left
// unset
func applyDefaults(cfg *Config) {
	defaultString(&cfg.App.Name, "clubgate-backend")
	defaultString(&cfg.App.Env, "development")
	defaultString(&cfg.App.Port, "8080")

	defaultString(&cfg.Database.Host, "localhost")
	defaultInt(&cfg.Database.Port, 5432)
	defaultString(&cfg.Database.User, "postgres")
	defaultString(&cfg.Database.DBName, "clubgate")
	defaultString(&cfg.Database.SSLMode, "disable")
	defaultInt(&cfg.Database.MaxOpenConns, 25)
	defaultInt(&cfg.Database.MaxIdleConns, 5)
	defaultInt(&cfg.Database.ConnMaxLifetime, 60)
	defaultInt(&cfg.Database.ConnMaxIdleTime, 30)

	defaultString(&cfg.Redis.Host, "localhost")
	defaultInt(&cfg.Redis.Port, 6379)

	defaultDuration(&cfg.JWT.AccessTokenExpiration, 15*time.Minute)
	defaultDuration(&cfg.JWT.RefreshTokenExpiration, 168*time.Hour)
	defaultString(&cfg.JWT.Issuer, "clubgate-backend")
	defaultInt(&cfg.JWT.MaxRefreshCount, 10)

	defaultString(&cfg.Log.Level, "info")
	defaultString(&cfg.Log.Format, "console")
	defaultString(&cfg.Log.Output, "stdout")

	defaultDuration(&cfg.HTTP.ReadTimeout, 15*time.Second)
	defaultDuration(&cfg.HTTP.WriteTimeout, 15*time.Second)
	defaultDuration(&cfg.HTTP.IdleTimeout, 60*time.Second)
	defaultInt(&cfg.HTTP.MaxHeaderBytes, 1<<20)
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 10 << 20
	}
	defaultInt(&cfg.HTTP.RateLimitRequests, 100)
	defaultDuration(&cfg.HTTP.RateLimitWindow, time.Minute)
	// Auth endpoints get a much tighter budget to slow brute forcing
	defaultInt(&cfg.HTTP.AuthRateLimitRequests, 5)
	defaultDuration(&cfg.HTTP.AuthRateLimitWindow, time.Minute)
	// CORS origins deliberately have no fallback: an empty list blocks
	// cross-origin requests until someone configures real origins
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID", "Idempotency-Key"}
	}

	defaultInt(&cfg.Scheduler.MaxConcurrentJobs, 3)
	defaultDuration(&cfg.Scheduler.JobTimeout, 10*time.Minute)
	defaultInt(&cfg.Scheduler.RetryAttempts, 3)
	defaultDuration(&cfg.Scheduler.RetryDelay, 5*time.Minute)
	defaultInt(&cfg.Scheduler.NightlyRunHour, 2)
	defaultDuration(&cfg.Scheduler.DeliveryPollPeriod, 5*time.Minute)
	defaultDuration(&cfg.Scheduler.ReminderPeriod, time.Hour)

	defaultString(&cfg.SMS.Provider, "leopard")
	defaultString(&cfg.SMS.Leopard.BaseURL, "https://api.smsleopard.com/v1")
	defaultString(&cfg.SMS.MobileSASA.BaseURL, "https://api.mobilesasa.com/v1")
	defaultDuration(&cfg.SMS.IdempotencyTTL, 24*time.Hour)

	defaultInt(&cfg.Visit.MaxDailyVisitsPerHost, 4)
	defaultInt(&cfg.Visit.MaxMonthlyVisits, 4)
	defaultInt(&cfg.Visit.MaxYearlyVisits, 24)
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	switch c.SMS.Provider {
	case "leopard", "mobilesasa":
	default:
		return fmt.Errorf("sms.provider must be 'leopard' or 'mobilesasa', got %q", c.SMS.Provider)
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is required in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		switch c.SMS.Provider {
		case "leopard":
			if c.SMS.Leopard.APIKey == "" || c.SMS.Leopard.APISecret == "" {
				return fmt.Errorf("sms.leopard credentials are required in production")
			}
		case "mobilesasa":
			if c.SMS.MobileSASA.APIToken == "" {
				return fmt.Errorf("sms.mobilesasa.api_token is required in production")
			}
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
