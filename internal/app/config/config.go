package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageDriverMemory = "memory"
	StorageDriverRedis  = "redis"
	StorageDriverMongo  = "mongo"
)

type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	Storage    StorageConfig    `yaml:"storage"`
	Redis      RedisConfig      `yaml:"redis"`
	MongoDB    MongoDBConfig    `yaml:"mongo"`
	NATS       NATSConfig       `yaml:"nats"`
	Logger     LoggerConfig     `yaml:"logger"`
	Checkout   CheckoutConfig   `yaml:"checkout"`
	Seed       SeedConfig       `yaml:"seed"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Tracing    TracingConfig    `yaml:"tracing"`
}

type HTTPServerConfig struct {
	Port            string        `yaml:"port" env:"HTTP_PORT_SHARAYA" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	TimeoutGraceful time.Duration `yaml:"timeout_graceful_shutdown" env-default:"15s"`
}

type StorageConfig struct {
	Driver    string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"redis"`
	KeyPrefix string `yaml:"key_prefix" env:"STORAGE_KEY_PREFIX" env-default:"sharaya:"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type MongoDBConfig struct {
	URI        string `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	User       string `yaml:"user" env:"MONGO_USER"`
	Password   string `yaml:"password" env:"MONGO_PASSWORD"`
	Database   string `yaml:"database" env:"MONGO_DATABASE" env-default:"sharaya"`
	Collection string `yaml:"collection" env:"MONGO_COLLECTION" env-default:"kv"`
}

// NATSConfig leaves change events off when URL is empty.
type NATSConfig struct {
	URL           string `yaml:"url" env:"NATS_URL"`
	SubjectPrefix string `yaml:"subject_prefix" env:"NATS_SUBJECT_PREFIX" env-default:"sharaya"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
	TimeFormat string `yaml:"time_format" env:"LOG_TIME_FORMAT" env-default:"2006-01-02T15:04:05.000Z07:00"`
}

type CheckoutConfig struct {
	DeliveryFee string `yaml:"delivery_fee" env:"CHECKOUT_DELIVERY_FEE" env-default:"$10"`
	Currency    string `yaml:"currency" env:"CHECKOUT_CURRENCY" env-default:"USD"`
}

type SeedConfig struct {
	Demo bool `yaml:"demo" env:"SEED_DEMO" env-default:"false"`
}

// SMTPConfig is optional; order confirmation mail is skipped without a host.
type SMTPConfig struct {
	Host         string        `yaml:"host" env:"SMTP_HOST"`
	Port         int           `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username     string        `yaml:"username" env:"SMTP_USERNAME"`
	Password     string        `yaml:"password" env:"SMTP_PASSWORD"`
	SenderEmail  string        `yaml:"sender_email" env:"SMTP_SENDER_EMAIL"`
	Encryption   string        `yaml:"encryption" env:"SMTP_ENCRYPTION" env-default:"tls"`
	ServerName   string        `yaml:"server_name" env:"SMTP_SERVER_NAME"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SMTP_WRITE_TIMEOUT" env-default:"10s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SMTP_READ_TIMEOUT" env-default:"10s"`
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.SenderEmail != ""
}

type MetricsConfig struct {
	Port string `yaml:"port" env:"METRICS_PORT_SHARAYA" env-default:"9095"`
}

type TracingConfig struct {
	ServiceName  string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"sharaya-service"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	err := cleanenv.ReadConfig(path, &cfg)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			log.Printf("Warning: Config file not found at %s, attempting to load from environment variables only.", path)
			if errEnv := cleanenv.ReadEnv(&cfg); errEnv != nil {
				return nil, errEnv
			}
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH_SHARAYA")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	return cfg
}
