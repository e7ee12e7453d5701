package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Schedule store backend: "memory" or "mongo".
	StoreBackend string `mapstructure:"STORE_BACKEND"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisJudgmentDB  int    `mapstructure:"REDIS_JUDGMENT_DB"`
	RedisSyncQueueDB int    `mapstructure:"REDIS_SYNC_QUEUE_DB"`

	// Auth for the admin surface and the webhook endpoint.
	AdminToken    string `mapstructure:"ADMIN_TOKEN"`
	WebhookSecret string `mapstructure:"WEBHOOK_SECRET"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Gmail connector.
	GmailCredentialsJSON string `mapstructure:"GMAIL_CREDENTIALS_JSON"`
	GmailTokenJSON       string `mapstructure:"GMAIL_TOKEN_JSON"`
	GmailQuery           string `mapstructure:"GMAIL_QUERY"`
	GmailMaxResults      int64  `mapstructure:"GMAIL_MAX_RESULTS"`
	GmailLookbackDays    int    `mapstructure:"GMAIL_LOOKBACK_DAYS"`
	GmailApplyLabels     bool   `mapstructure:"GMAIL_APPLY_LABELS"`

	// Periodic mail sync (0 disables the scheduler).
	SyncIntervalMin int `mapstructure:"SYNC_INTERVAL_MIN"`

	// Classifier policy.
	BrandMarker           string  `mapstructure:"BRAND_MARKER"`
	IncludeLocations      string  `mapstructure:"INCLUDE_LOCATIONS"`
	ExcludeLocations      string  `mapstructure:"EXCLUDE_LOCATIONS"`
	DefaultAcceptLocation bool    `mapstructure:"DEFAULT_ACCEPT_LOCATION"`
	AllowOvernight        bool    `mapstructure:"ALLOW_OVERNIGHT"`
	MinConfidence         float64 `mapstructure:"MIN_CONFIDENCE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORE_BACKEND", "memory")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "slotboard")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_JUDGMENT_DB", 0)
	viper.SetDefault("REDIS_SYNC_QUEUE_DB", 1)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("GMAIL_QUERY", "from:noreply@em.hacomono.jp subject:hallel")
	viper.SetDefault("GMAIL_MAX_RESULTS", 10)
	viper.SetDefault("GMAIL_LOOKBACK_DAYS", 3)
	viper.SetDefault("GMAIL_APPLY_LABELS", true)
	viper.SetDefault("SYNC_INTERVAL_MIN", 0)
	viper.SetDefault("BRAND_MARKER", "HALLEL")
	viper.SetDefault("INCLUDE_LOCATIONS", "渋谷店,shibuya")
	viper.SetDefault("EXCLUDE_LOCATIONS", "半蔵門店,hanzomon")
	viper.SetDefault("DEFAULT_ACCEPT_LOCATION", false)
	viper.SetDefault("ALLOW_OVERNIGHT", false)
	viper.SetDefault("MIN_CONFIDENCE", 0.7)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SplitList parses a comma-separated config value into trimmed items.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
