package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Scenario ScenarioConfig `yaml:"scenario" mapstructure:"scenario"`
	Review   ReviewConfig   `yaml:"review" mapstructure:"review"`
	Report   ReportConfig   `yaml:"report" mapstructure:"report"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ScenarioConfig points at an optional YAML overlay for the built-in
// FY 2023-24 dataset.
type ScenarioConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ReviewConfig configures the review workflow.
type ReviewConfig struct {
	DefaultReviewer string `yaml:"default_reviewer" mapstructure:"default_reviewer"`
}

// ReportConfig configures the workbook export.
type ReportConfig struct {
	Output string `yaml:"output" mapstructure:"output"`
}

// ServerConfig configures the review API server.
type ServerConfig struct {
	Port              int      `yaml:"port" mapstructure:"port"`
	SessionTTLMinutes int      `yaml:"session_ttl_minutes" mapstructure:"session_ttl_minutes"`
	RateRPS           int      `yaml:"rate_rps" mapstructure:"rate_rps"`
	RateBurst         int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	CORSOrigins       []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TRUEUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("report.output", "trueup-report.xlsx")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.session_ttl_minutes", 60)
	v.SetDefault("server.rate_rps", 10)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("server.cors_origins", []string{"*"})

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a mode depends on before the command
// starts doing work.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
		if c.Server.SessionTTLMinutes <= 0 {
			problems = append(problems, "server.session_ttl_minutes must be > 0")
		}
		if c.Server.RateRPS <= 0 || c.Server.RateBurst <= 0 {
			problems = append(problems, "server.rate_rps and server.rate_burst must be > 0")
		}
	case "report":
		if c.Report.Output == "" {
			problems = append(problems, "report.output is required")
		}
	case "evaluate", "review":
		// Nothing beyond the defaults.
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
