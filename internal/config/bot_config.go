package config

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
)

type BotConfig struct {
	Token                 string  `mapstructure:"token"`
	MaxRequestsPerSecond  float32 `mapstructure:"max_requests_per_second"`
	RequestsBurst         int     `mapstructure:"requests_burst"`
	MaxDivisionsInMessage int     `mapstructure:"max_divisions_in_message"`
}

func (config BotConfig) validate() error {

	var missingFields []string

	if config.Token == "" {
		missingFields = append(missingFields, "token")
	}

	if config.MaxRequestsPerSecond <= 0 {
		missingFields = append(missingFields, "max_requests_per_second")
	}

	if config.RequestsBurst < 0 {
		missingFields = append(missingFields, "requests_burst")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing or invalid variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config BotConfig) bindEnvironmentVariables(v *viper.Viper) error {
	if err := v.BindEnv("bot.token", "TG_TOKEN"); err != nil {
		return err
	}
	if err := v.BindEnv("bot.max_requests_per_second", "BOT_MAX_REQUESTS_PER_SECOND"); err != nil {
		return err
	}
	return v.BindEnv("bot.requests_burst", "BOT_REQUESTS_BURST")
}
