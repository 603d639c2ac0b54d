package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sukalov/chordsheet/internal/utils"
)

// DefaultPath is read when no config file is given explicitly.
const DefaultPath = "chordsheet.toml"

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Bot      BotConfig      `toml:"bot"`
	Render   RenderConfig   `toml:"render"`
}

type DatabaseConfig struct {
	URL       string `toml:"url"`
	AuthToken string `toml:"auth_token"`
}

type RedisConfig struct {
	URL      string   `toml:"url"`
	Password string   `toml:"password"`
	TTL      Duration `toml:"ttl"`
}

type BotConfig struct {
	Token        string   `toml:"token"`
	LogChannelID int64    `toml:"log_channel_id"`
	Admins       []string `toml:"admins"`
}

type RenderConfig struct {
	// Escape turns off raw mode for rendered sheets.
	Escape     bool   `toml:"escape"`
	ChordColor string `toml:"chord_color"`
}

// Duration decodes TOML strings such as "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Redis:  RedisConfig{TTL: Duration{24 * time.Hour}},
		Render: RenderConfig{ChordColor: "auto"},
	}
}

var envKeys = []string{
	"TURSO_DATABASE_URL",
	"TURSO_AUTH_TOKEN",
	"REDIS_URL",
	"REDIS_PASSWORD",
	"BOT_TOKEN",
	"LOG_CHANNEL_ID",
}

// Load reads the TOML file at path and then applies environment overrides.
// A missing file is only an error when path was given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	}

	if err := cfg.applyEnv(utils.LookupEnv(envKeys)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(env map[string]string) error {
	if v, ok := env["TURSO_DATABASE_URL"]; ok {
		c.Database.URL = v
	}
	if v, ok := env["TURSO_AUTH_TOKEN"]; ok {
		c.Database.AuthToken = v
	}
	if v, ok := env["REDIS_URL"]; ok {
		c.Redis.URL = v
	}
	if v, ok := env["REDIS_PASSWORD"]; ok {
		c.Redis.Password = v
	}
	if v, ok := env["BOT_TOKEN"]; ok {
		c.Bot.Token = v
	}
	if v, ok := env["LOG_CHANNEL_ID"]; ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse LOG_CHANNEL_ID: %w", err)
		}
		c.Bot.LogChannelID = id
	}
	return nil
}

// RequireDatabase fails when no database URL is configured.
func (c Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return fmt.Errorf("%w: TURSO_DATABASE_URL", utils.ErrMissingEnv)
	}
	return nil
}

// RequireBot fails when no bot token is configured.
func (c Config) RequireBot() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("%w: BOT_TOKEN", utils.ErrMissingEnv)
	}
	return nil
}
