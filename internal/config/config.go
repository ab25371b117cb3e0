package config

import (
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/funstay/leadsync/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const ConfigTagName = "env"
const ConfigDefaultTagName = "default"

var config *Config

// Config holds every configuration value the service reads. Only this
// struct may be used to carry configuration; no direct env access
// anywhere else.
type Config struct {
	AppEnv   string `env:"APP_ENV" default:"dev"`
	AppName  string `env:"APP_NAME" default:"lead_sync"`
	AppDebug bool   `env:"APP_DEBUG" default:"1"`

	HttpListenAddr string `env:"HTTP_LISTEN_ADDR"`

	MetricsListenAddr string `env:"METRICS_LISTEN_ADDR" default:":9100"`
	PromNamespace     string `env:"PROM_NAMESPACE"`

	PostgresReadHost     string `env:"POSTGRES_READ_HOST"`
	PostgresReadPort     string `env:"POSTGRES_READ_PORT"`
	PostgresReadUser     string `env:"POSTGRES_READ_USER"`
	PostgresReadPassword string `env:"POSTGRES_READ_PASSWORD"`
	PostgresReadDatabase string `env:"POSTGRES_READ_DBNAME"`

	PostgresWriteHost     string `env:"POSTGRES_WRITE_HOST"`
	PostgresWritePort     string `env:"POSTGRES_WRITE_PORT"`
	PostgresWriteUser     string `env:"POSTGRES_WRITE_USER"`
	PostgresWritePassword string `env:"POSTGRES_WRITE_PASSWORD"`
	PostgresWriteDatabase string `env:"POSTGRES_WRITE_DBNAME"`

	PostgresMaxOpenConns int `env:"POSTGRES_MAX_OPEN_CONNS" default:"10"`
	PostgresMaxIdleConns int `env:"POSTGRES_MAX_IDLE_CONNS" default:"2"`

	RedisAddr               string `env:"REDIS_ADDR"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX"`

	SpreadsheetID      string        `env:"SPREADSHEET_ID"`
	SheetNames         string        `env:"SHEET_NAMES"`
	SheetRange         string        `env:"SHEET_RANGE" default:"A1:AA"`
	GoogleClientEmail  string        `env:"GOOGLE_CLIENT_EMAIL"`
	GooglePrivateKey   string        `env:"GOOGLE_PRIVATE_KEY"`
	SheetsEndpoint     string        `env:"SHEETS_ENDPOINT"` // override for local dev against sheetsim
	SheetsFetchTimeout time.Duration `env:"SHEETS_FETCH_TIMEOUT" default:"30s"`

	SyncIntervalMinutes int           `env:"SYNC_INTERVAL_MINUTES" default:"30"`
	SyncRunTimeout      time.Duration `env:"SYNC_RUN_TIMEOUT" default:"10m"`
	SyncRowMaxRetries   int           `env:"SYNC_ROW_MAX_RETRIES" default:"3"`

	EventStream       string `env:"EVENT_STREAM" default:"leadsync:events"`
	DeadLetterStream  string `env:"DEAD_LETTER_STREAM" default:"leadsync:deadletter"`
	EventStreamMaxLen int64  `env:"EVENT_STREAM_MAX_LEN" default:"100000"`
}

// Sources returns the configured sheet names in processing order.
func (c *Config) Sources() []string {
	if c.SheetNames == "" {
		return nil
	}
	parts := strings.Split(c.SheetNames, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.New("failed to load configuration file " + path + " error: " + err.Error())
		}
	}

	_, err = env.UnmarshalFromEnviron(c)
	if err != nil {
		return errors.New("failed to map env variables to Configuration object " + " error: " + err.Error())
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
