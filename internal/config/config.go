package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	HttpServerPort uint16 `env:"HTTP_SERVER_PORT" envDefault:"8080" validate:"min=1000,max=65535"`

	// TargetFactor is applied to the round average to obtain the target.
	TargetFactor float64 `env:"TARGET_FACTOR" envDefault:"0.8" validate:"gt=0,lte=1"`

	// RoomCapacity caps room membership; 0 means unlimited.
	RoomCapacity int `env:"ROOM_CAPACITY" envDefault:"0" validate:"min=0"`

	// KeepAliveURL is the base URL the self-pinger hits (empty disables it).
	KeepAliveURL      string        `env:"KEEPALIVE_URL"      envDefault:""`
	KeepAliveInterval time.Duration `env:"KEEPALIVE_INTERVAL" envDefault:"4m"`
}

func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().Debug(".env file not found", zap.Error(err))
	}

	cfg := &Config{}
	// Parse config from environment variables
	if err = env.Parse(cfg); err != nil {
		zap.L().Error("config_load_failed", zap.Error(err))
		return nil, err
	}

	// Validate the config
	validate := validator.New()
	err = validate.Struct(cfg)
	if err != nil {
		zap.L().Error("config_validation_failed", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}
