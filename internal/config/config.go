package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-tourneyform/internal/validator"
)

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Path    string        `mapstructure:"path"     validate:"required,startswith=/"`
	Timeout time.Duration `mapstructure:"timeout"  validate:"gt=0"`
}

type SubmitConfig struct {
	ResetDelay time.Duration `mapstructure:"reset_delay" validate:"gt=0"`
}

type SchemaConfig struct {
	// File replaces the embedded collection table when set.
	File string `mapstructure:"file"`
}

type LoggingConfig struct {
	Level int `mapstructure:"level"`
}

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Submit  SubmitConfig  `mapstructure:"submit"`
	Schema  SchemaConfig  `mapstructure:"schema"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	return slog.Level(c.Logging.Level)
}

type MockAPIConfig struct {
	ListenAddress        string        `mapstructure:"listen_address"         validate:"required"`
	Path                 string        `mapstructure:"path"                   validate:"required,startswith=/"`
	GracefulShutdownSecs int64         `mapstructure:"graceful_shutdown_secs" validate:"gte=0"`
	Logging              LoggingConfig `mapstructure:"logging"`
}

const (
	EnvPrefix        string = "tourneyform"
	MockAPIEnvPrefix string = "mockapi"

	APIBaseURL           string = "api.base_url"
	APIPath              string = "api.path"
	APITimeout           string = "api.timeout"
	SubmitResetDelay     string = "submit.reset_delay"
	SchemaFile           string = "schema.file"
	LogLevel             string = "logging.level"
	ListenAddress        string = "listen_address"
	MockPath             string = "path"
	GracefulShutdownSecs string = "graceful_shutdown_secs"
)

// Load reads tourneyform.yaml from path, or from the working directory and
// $HOME/.config/tourneyform when path is empty, layers TOURNEYFORM_* env
// vars and defaults over it and validates the result. A missing file in the
// search paths is not an error.
func Load(path string) (*Config, error) {
	v := newViper("tourneyform", EnvPrefix, path)
	v.AddConfigPath("$HOME/.config/tourneyform/")

	v.SetDefault(APIBaseURL, "https://bgmibackend.vercel.app")
	v.SetDefault(APIPath, "/tournament")
	v.SetDefault(APITimeout, 15*time.Second)
	v.SetDefault(SubmitResetDelay, 5*time.Second)
	v.SetDefault(SchemaFile, "")
	v.SetDefault(LogLevel, int(slog.LevelInfo))

	var cfg Config
	if err := read(v, path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadMockAPI reads mockapi.yaml and MOCKAPI_* env vars for the local API.
func LoadMockAPI(path string) (*MockAPIConfig, error) {
	v := newViper("mockapi", MockAPIEnvPrefix, path)

	v.SetDefault(ListenAddress, "[::]:1323")
	v.SetDefault(MockPath, "/tournament")
	v.SetDefault(GracefulShutdownSecs, 10)
	v.SetDefault(LogLevel, int(slog.LevelDebug))

	var cfg MockAPIConfig
	if err := read(v, path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper(name, envPrefix, path string) *viper.Viper {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func read(v *viper.Viper, path string, out any) error {
	if err := v.ReadInConfig(); err != nil {
		// ignore config file not found to allow pure env config
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return err
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return err
	}

	valid := validator.Create()
	return valid.Validate(out)
}
