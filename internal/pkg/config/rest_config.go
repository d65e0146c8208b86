package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ServerSettings holds the HTTP listener settings for the REST API.
type ServerSettings struct {
	Port            string `mapstructure:"port" validate:"required"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"gte=0,lte=300"`
}

// Validate checks that all fields in ServerSettings are valid
func (s *ServerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ServerSettings: %w", err)
	}

	return nil
}

// VaultSettings holds the location of the on-disk key material vault.
type VaultSettings struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

// Validate checks that all fields in VaultSettings are valid
func (s *VaultSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for VaultSettings: %w", err)
	}

	return nil
}

// RestConfig aggregates all settings required by the REST application.
type RestConfig struct {
	Server   ServerSettings   `mapstructure:"server"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Database DatabaseSettings `mapstructure:"database"`
	Vault    VaultSettings    `mapstructure:"vault"`
}

// Validate checks every settings section of the RestConfig
func (c *RestConfig) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	return c.Vault.Validate()
}

// InitializeRestConfig reads the REST application configuration from the given
// YAML file. Values can be overridden through environment variables with the
// RSA_FORGE prefix (e.g. RSA_FORGE_SERVER_PORT).
func InitializeRestConfig(configPath string) (*RestConfig, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("RSA_FORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var restConfig RestConfig
	if err := v.Unmarshal(&restConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := restConfig.Validate(); err != nil {
		return nil, err
	}

	return &restConfig, nil
}
