package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	CredentialStorePostgres = "postgres"
	CredentialStoreMongo    = "mongo"
)

type Config struct {
	App struct {
		Env            string `env:"APP_ENV" env-default:"development"`
		Port           int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl      string `env:"SENTRY_URL"`
		CorsOrigins    string `env:"APP_CORS_ORIGINS" env-default:"http://localhost:3000"`
		TrustedProxies string `env:"APP_TRUSTED_PROXIES"`
	}
	HTTP struct {
		ClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" env-default:"10s"`
	}
	Instagram struct {
		AccessToken string `env:"INSTAGRAM_ACCESS_TOKEN"`
		ApiUrl      string `env:"INSTAGRAM_API_URL" env-default:"https://graph.instagram.com"`
	}
	LinkedIn struct {
		AccessToken    string `env:"LINKEDIN_ACCESS_TOKEN"`
		RefreshToken   string `env:"LINKEDIN_REFRESH_TOKEN"`
		ClientID       string `env:"LINKEDIN_CLIENT_ID"`
		ClientSecret   string `env:"LINKEDIN_CLIENT_SECRET"`
		OrganizationID string `env:"LINKEDIN_ORGANIZATION_ID"`
		ApiUrl         string `env:"LINKEDIN_API_URL" env-default:"https://api.linkedin.com"`
		TokenUrl       string `env:"LINKEDIN_TOKEN_URL" env-default:"https://www.linkedin.com/oauth/v2/accessToken"`
		ApiVersion     string `env:"LINKEDIN_API_VERSION" env-default:"202401"`
	}
	CredentialStore struct {
		Driver      string        `env:"CREDENTIAL_STORE_DRIVER"`
		CheckCron   string        `env:"CREDENTIAL_CHECK_CRON" env-default:"0 4 * * *"`
		RefreshLead time.Duration `env:"CREDENTIAL_REFRESH_LEAD" env-default:"168h"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Mongo struct {
		URI      string `env:"MONGO_URI"`
		Database string `env:"MONGO_DATABASE" env-default:"social_feed"`
	}
	Feed struct {
		Limit        int           `env:"FEED_LIMIT" env-default:"8"`
		FetchTimeout time.Duration `env:"FEED_FETCH_TIMEOUT" env-default:"10s"`
		CacheTTL     time.Duration `env:"FEED_CACHE_TTL" env-default:"1h"`
		WarmCron     string        `env:"FEED_WARM_CRON" env-default:"0 * * * *"`
	}
	Telegram struct {
		Token       string `env:"TELEGRAM_TOKEN"`
		Channel     string `env:"TELEGRAM_CHANNEL"`
		ApiEndpoint string `env:"TELEGRAM_API_ENDPOINT" env-default:"https://api.telegram.org/bot%s/%s"`
	}
	Operator struct {
		JwtSecret  string        `env:"OPERATOR_JWT_SECRET"`
		RateLimit  int           `env:"OPERATOR_RATE_LIMIT" env-default:"3"`
		RatePeriod time.Duration `env:"OPERATOR_RATE_PERIOD" env-default:"1h"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Failed to load .env file: %v", err)
		}

		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN returns the postgres connection string used by goose and pgx.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}

// AllowedOrigins splits APP_CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	return splitList(c.App.CorsOrigins)
}

// TrustedProxies splits APP_TRUSTED_PROXIES on commas. Nil means no proxy is trusted and
// client IPs come from the connection only.
func (c *Config) TrustedProxies() []string {
	return splitList(c.App.TrustedProxies)
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
