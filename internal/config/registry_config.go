package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// RegistryConfig selects the code table answered by default. An empty revision means the latest one.
type RegistryConfig struct {
	Source   string `mapstructure:"source" validate:"required,oneof=gb stats"`
	Revision string `mapstructure:"revision" validate:"omitempty,numeric"`
}

func (config RegistryConfig) validate() error {
	return validator.New().Struct(config)
}

func (config RegistryConfig) bindEnvironmentVariables(v *viper.Viper) error {
	if err := v.BindEnv("registry.source", "REGISTRY_SOURCE"); err != nil {
		return err
	}
	return v.BindEnv("registry.revision", "REGISTRY_REVISION")
}

type MetricsConfig struct {
	Port int `mapstructure:"port"`
}

func (config MetricsConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("metrics.port", "METRICS_PORT")
}
