package appconfig

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/portyard/yardboard/internal/app/appcontext"
)

const envPrefix = "yardboard"

func Parse(ctx appcontext.Ctx) (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	var config ConfigSpec
	err = envconfig.Process(envPrefix, &config)
	if err != nil {
		_ = envconfig.Usage(envPrefix, &config)
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if config.CloudSyncEnabled && config.PostgresDSN == "" {
		return nil, fmt.Errorf("failed to parse configuration: YARDBOARD_POSTGRES_DSN is required when cloud sync is enabled")
	}

	return &Config{
		ConfigSpec: config,
		AppContext: ctx,
	}, nil
}
