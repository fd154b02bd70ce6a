package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Bot      BotConfig      `mapstructure:"bot"`
	DB       DBConfig       `mapstructure:"db"`
	Registry RegistryConfig `mapstructure:"registry"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	file := configFile
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		file = value
	}

	config, err := loadConfig(file)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	v := viper.New()
	v.SetConfigFile(file)
	v.AutomaticEnv()

	v.SetDefault("metrics.port", 8080)
	v.SetDefault("registry.source", "gb")
	v.SetDefault("bot.requests_burst", 3)

	err := bindEnvironmentVariables(v)
	if err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	bot, db, logger, registry, metrics := BotConfig{}, DBConfig{}, LoggerConfig{}, RegistryConfig{}, MetricsConfig{}

	if err := bot.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("BotConfig: %w", err))
	}

	if err := db.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := logger.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := registry.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("RegistryConfig: %w", err))
	}

	if err := metrics.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("MetricsConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Bot.validate(); err != nil {
		errs = append(errs, fmt.Errorf("BotConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.Registry.validate(); err != nil {
		errs = append(errs, fmt.Errorf("RegistryConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
