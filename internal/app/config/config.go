package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Config struct {
	Ops      OpsConfig
	Transact TransactConfig
	Kafka    KafkaConfig
	Database DatabaseConfig

	AITID      string `env:"APP_AIT_ID,default=27834"`
	LogVerbose bool   `env:"APP_VERBOSE,default=0"`
	LogPretty  bool   `env:"APP_PRETTY,default=0"`
}

// OpsConfig covers the operational HTTP endpoint (health, readiness, metrics).
type OpsConfig struct {
	Listen       string        `env:"OPS_ADDRESS,default=localhost:8089"`
	TimeoutRead  time.Duration `env:"OPS_TIMEOUT_READ,default=5s"`
	TimeoutWrite time.Duration `env:"OPS_TIMEOUT_WRITE,default=10s"`
	TimeoutIdle  time.Duration `env:"OPS_TIMEOUT_IDLE,default=1m"`
}

// TransactConfig covers the four downstream transaction service endpoints and
// the per-call retry discipline.
type TransactConfig struct {
	RecordURL      string        `env:"TRANSACT_RECORD_URL,required"`
	ReservationURL string        `env:"TRANSACT_RESERVATION_URL,required"`
	TransferURL    string        `env:"TRANSACT_TRANSFER_URL,required"`
	CommitURL      string        `env:"TRANSACT_COMMIT_URL,required"`

	Attempts       int           `env:"TRANSACT_REST_ATTEMPTS,default=3"`
	BackoffMin     time.Duration `env:"TRANSACT_BACKOFF_MIN,default=100ms"`
	BackoffMax     time.Duration `env:"TRANSACT_BACKOFF_MAX,default=500ms"`
	ConnectTimeout time.Duration `env:"TRANSACT_CONNECT_TIMEOUT,default=1s"`
	RequestTimeout time.Duration `env:"TRANSACT_REQUEST_TIMEOUT,default=1s"`
}

type KafkaConfig struct {
	Brokers         []string      `env:"KAFKA_BROKERS,default=localhost:9092"`
	GroupID         string        `env:"KAFKA_GROUP_ID,default=transaction.fulfillment"`
	RequestTopic    string        `env:"KAFKA_REQUEST_TOPIC,default=transaction.fulfillment.request.queue"`
	ReplyTopic      string        `env:"KAFKA_REPLY_TOPIC,default=transaction.fulfillment.reply.queue"`
	RedeliveryDelay time.Duration `env:"KAFKA_REDELIVERY_DELAY,default=10s"`
}

type DatabaseConfig struct {
	DSN string `env:"DATABASE_URI,required"`
}

// New config constructor
func New() Config {
	return Config{}
}

// Load config from environment and from .env file (if exists) and from flags
func (cfg *Config) Load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(".env load: %w", err)
	}

	if err := envdecode.StrictDecode(cfg); err != nil {
		return fmt.Errorf("env decode: %w", err)
	}

	pflag.StringVarP(&cfg.Ops.Listen, "ops-addr", "a", cfg.Ops.Listen, "Operational endpoint address to listen on")
	pflag.StringVarP(&cfg.Database.DSN, "database-uri", "d", cfg.Database.DSN, "Database URI")
	pflag.StringSliceVarP(&cfg.Kafka.Brokers, "kafka-brokers", "b", cfg.Kafka.Brokers, "Kafka broker addresses")
	pflag.BoolVarP(&cfg.LogVerbose, "verbose", "v", cfg.LogVerbose, "Verbose output")
	pflag.BoolVarP(&cfg.LogPretty, "pretty", "p", cfg.LogPretty, "Pretty output")
	pflag.Parse()

	return nil
}
