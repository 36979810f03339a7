package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"coinflip/game"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	StartingFlips         int
	CorrectLabelBonus     int
	IncorrectLabelPenalty int
	BiasPolicy            string // fixed or uniform
	CheatBias             float64
	Seed                  uint64
	LogLevel              zerolog.Level
	Addr                  string
}

// Load reads an optional .env file, then the COINFLIP_* environment variables.
// Unset variables keep the live game's defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		StartingFlips:         game.DefaultStartingFlips,
		CorrectLabelBonus:     game.DefaultCorrectLabelBonus,
		IncorrectLabelPenalty: game.DefaultIncorrectLabelPenalty,
		BiasPolicy:            "fixed",
		CheatBias:             float64(game.DefaultBiasPolicy),
		LogLevel:              zerolog.InfoLevel,
		Addr:                  ":8080",
	}

	var err error
	if cfg.StartingFlips, err = envInt("COINFLIP_STARTING_FLIPS", cfg.StartingFlips); err != nil {
		return nil, err
	}
	if cfg.CorrectLabelBonus, err = envInt("COINFLIP_CORRECT_BONUS", cfg.CorrectLabelBonus); err != nil {
		return nil, err
	}
	if cfg.IncorrectLabelPenalty, err = envInt("COINFLIP_INCORRECT_PENALTY", cfg.IncorrectLabelPenalty); err != nil {
		return nil, err
	}
	if v := os.Getenv("COINFLIP_BIAS_POLICY"); v != "" {
		cfg.BiasPolicy = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("COINFLIP_CHEAT_BIAS"); v != "" {
		if cfg.CheatBias, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("COINFLIP_CHEAT_BIAS: %w", err)
		}
	}
	if v := os.Getenv("COINFLIP_SEED"); v != "" {
		if cfg.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return nil, fmt.Errorf("COINFLIP_SEED: %w", err)
		}
	}
	if v := os.Getenv("COINFLIP_LOG_LEVEL"); v != "" {
		if cfg.LogLevel, err = zerolog.ParseLevel(v); err != nil {
			return nil, fmt.Errorf("COINFLIP_LOG_LEVEL: %w", err)
		}
	}
	if v := os.Getenv("COINFLIP_ADDR"); v != "" {
		cfg.Addr = v
	}

	if _, err := cfg.Policy(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func (c *Config) Policy() (game.BiasPolicy, error) {
	switch c.BiasPolicy {
	case "fixed":
		return game.FixedBias(c.CheatBias), nil
	case "uniform":
		return game.UniformBias(), nil
	default:
		return nil, fmt.Errorf("%w: unknown bias policy %q", game.ErrInvalidConfig, c.BiasPolicy)
	}
}

// GameOptions converts the config into episode options. Range checks are left
// to game.NewEpisode.
func (c *Config) GameOptions() []game.Option {
	opts := []game.Option{
		game.WithStartingFlips(c.StartingFlips),
		game.WithCorrectLabelBonus(c.CorrectLabelBonus),
		game.WithIncorrectLabelPenalty(c.IncorrectLabelPenalty),
	}
	if p, err := c.Policy(); err == nil {
		opts = append(opts, game.WithBiasPolicy(p))
	}
	return opts
}

// RunSeed returns the configured seed, or a time-derived one when unset.
func (c *Config) RunSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}
