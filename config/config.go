package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL      string        `envconfig:"DATABASE_URL"       required:"true"`
	HTTPPort         string        `envconfig:"HTTP_PORT"          default:":3000"`
	GrpcPort         string        `envconfig:"GRPC_PORT"          default:":50051"` // health service
	LogLevel         string        `envconfig:"LOG_LEVEL"          default:"info"`
	LogFormat        string        `envconfig:"LOG_FORMAT"         default:"json"`
	JWTSecret        string        `envconfig:"JWT_SECRET"         required:"true"`
	TokenTTL         time.Duration `envconfig:"TOKEN_TTL"          default:"1h"`
	CloudName        string        `envconfig:"CLOUDINARY_CLOUD_NAME" required:"true"`
	CloudAPIKey      string        `envconfig:"CLOUDINARY_API_KEY"    required:"true"`
	CloudAPISecret   string        `envconfig:"CLOUDINARY_API_SECRET" required:"true"`
	MaxUploadBytes   int64         `envconfig:"MAX_UPLOAD_BYTES"   default:"5242880"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT"   default:"10s"`
	DBConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"5s"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(logger *logrus.Logger) (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must not be empty")
	}
	if len(cfg.JWTSecret) < 16 {
		logger.Warn("Configuration: JWT_SECRET is shorter than 16 bytes")
	}

	logger.Infof("Configuration loaded: HTTP Port=%s, GRPC Port=%s, LogLevel=%s", cfg.HTTPPort, cfg.GrpcPort, cfg.LogLevel)
	return &cfg, nil
}
