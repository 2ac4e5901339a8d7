package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cartridge/tictactoe-rl/internal/policy"
	"github.com/cartridge/tictactoe-rl/internal/trainer"
)

// EnvPrefix prefixes every environment override, e.g. TTT_LOG_LEVEL.
const EnvPrefix = "TTT"

// Config holds all command configuration
type Config struct {
	// Output
	LogLevel string `mapstructure:"log-level"`
	Quiet    bool   `mapstructure:"quiet"`
	NoColor  bool   `mapstructure:"no-color"`

	// Learning
	Iterations int   `mapstructure:"iterations"`
	Reward     int   `mapstructure:"reward"`
	Penalty    int   `mapstructure:"penalty"`
	Seed       int64 `mapstructure:"seed"` // 0 picks a time based seed

	// Seats
	First        string `mapstructure:"first"`
	Second       string `mapstructure:"second"`
	TrainFirst   bool   `mapstructure:"train-first"`
	TrainSecond  bool   `mapstructure:"train-second"`
	FreezeFirst  bool   `mapstructure:"freeze-first"`
	FreezeSecond bool   `mapstructure:"freeze-second"`

	// Generation
	Force bool `mapstructure:"force"`

	// Reporting
	Chart string `mapstructure:"chart"`
}

// Default returns a config with sensible defaults
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		Iterations: trainer.DefaultIterations,
		Reward:     policy.DefaultReward,
		Penalty:    policy.DefaultPenalty,
	}
}

// Load overlays flags, TTT_* environment variables and an optional YAML
// file onto cfg. Explicit flags win over the environment, which wins over
// the file.
func Load(cfg *Config, flags *pflag.FlagSet, file string) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log-level %q is not a valid level", c.LogLevel)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive")
	}
	if c.Reward <= 0 || c.Reward > math.MaxInt32 {
		return fmt.Errorf("reward must be between 1 and %d", math.MaxInt32)
	}
	if c.Penalty >= 0 || c.Penalty < -math.MaxInt32 {
		return fmt.Errorf("penalty must be between %d and -1", -math.MaxInt32)
	}
	if c.TrainFirst && c.First == "" {
		return fmt.Errorf("train-first needs a policy file for the first seat")
	}
	if c.TrainSecond && c.Second == "" {
		return fmt.Errorf("train-second needs a policy file for the second seat")
	}
	return nil
}

// TrainerOptions maps the learning settings onto a training run.
func (c *Config) TrainerOptions() trainer.Options {
	opts := trainer.DefaultOptions()
	opts.Iterations = c.Iterations
	opts.Reward = int32(c.Reward)
	opts.Penalty = int32(c.Penalty)
	return opts
}
