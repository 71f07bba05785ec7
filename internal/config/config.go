package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	TelegramBotToken  string        `env:"TELEGRAM_BOT_TOKEN,required"`
	DBHost            string        `env:"DB_HOST,required"`
	DBPort            int           `env:"DB_PORT,default=5432"`
	DBUser            string        `env:"DB_USER,required"`
	DBPassword        string        `env:"DB_PASSWORD,required"`
	DBName            string        `env:"DB_NAME,required"`
	DBSSLMode         string        `env:"DB_SSLMODE,default=disable"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=10"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`

	CoinGeckoBaseURL    string        `env:"COINGECKO_BASE_URL,default=https://api.coingecko.com/api/v3"`
	QuoteTimeout        time.Duration `env:"QUOTE_TIMEOUT,default=10s"`
	QuoteMaxRetries     int           `env:"QUOTE_MAX_RETRIES,default=3"`
	QuoteRetryBaseDelay time.Duration `env:"QUOTE_RETRY_BASE_DELAY,default=1s"`
	QuoteRatePerSecond  float64       `env:"QUOTE_RATE_PER_SECOND,default=0.5"`

	CheckInterval    time.Duration `env:"CHECK_INTERVAL,default=60s"`
	Assets           []string      `env:"ASSETS,default=btc,eth,usdt"`
	QuoteCurrency    string        `env:"QUOTE_CURRENCY,default=usd"`
	MaxAlertsPerUser int           `env:"MAX_ALERTS_PER_USER,default=25"`

	TelegramPollTimeout int    `env:"TELEGRAM_POLL_TIMEOUT,default=60"`
	DefaultLocale       string `env:"DEFAULT_LOCALE,default=en"`
	LogLevel            string `env:"LOG_LEVEL,default=info"`
	LogFormat           string `env:"LOG_FORMAT,default=json"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
