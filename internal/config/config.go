package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/mines"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return errors.New("invalid duration")
	}
}

type GameConfig struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	MineProbability float64 `json:"mine_probability"`
	// Seed fixes the random source when non-zero.
	Seed uint64 `json:"seed"`
}

func (g GameConfig) Params() mines.GameParams {
	return mines.GameParams{
		Width:           g.Width,
		Height:          g.Height,
		MineProbability: g.MineProbability,
	}
}

type SessionConfig struct {
	Secret     string   `json:"secret"`
	TTL        Duration `json:"ttl"`
	SweepEvery Duration `json:"sweep_every"`
}

type CookiesConfig struct {
	Domain   string `json:"domain"`
	Secure   bool   `json:"secure"`
	SameSite string `json:"same_site"`
}

type Config struct {
	Mode    string        `json:"mode"`
	Addr    string        `json:"addr"`
	LogFile string        `json:"log_file"`
	Game    GameConfig    `json:"game"`
	Session SessionConfig `json:"session"`
	Cookies CookiesConfig `json:"cookies"`
}

func Default() *Config {
	return &Config{
		Mode: "production",
		Addr: ":8080",
		Game: GameConfig{
			Width:           mines.DefaultWidth,
			Height:          mines.DefaultHeight,
			MineProbability: mines.DefaultMineProbability,
		},
		Session: SessionConfig{
			TTL:        Duration{time.Hour * 24},
			SweepEvery: Duration{time.Minute * 10},
		},
		Cookies: CookiesConfig{SameSite: "strict"},
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":             c.Mode,
		"addr":             c.Addr,
		"log_file":         c.LogFile,
		"width":            c.Game.Width,
		"height":           c.Game.Height,
		"mine_probability": c.Game.MineProbability,
		"seed":             c.Game.Seed,
		"session_ttl":      c.Session.TTL.String(),
		"cookies_domain":   c.Cookies.Domain,
		"cookies_secure":   c.Cookies.Secure,
	}
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) Validate() error {
	if err := c.Game.Params().Validate(); err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}
	if c.Session.TTL.Duration <= 0 || c.Session.SweepEvery.Duration <= 0 {
		return errors.New("session ttl and sweep interval must be positive")
	}
	return nil
}

// Load reads the JSON file at path (skipped when path is empty) over the
// defaults and then applies environment overrides.
func Load(path string) (*Config, error) {
	config := Default()
	if path != "" {
		if err := ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, config.Validate()
}

func ReadConfig(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("SWEEPER_MODE"); ok {
		c.Mode = v
	}
	if v, ok := os.LookupEnv("SWEEPER_ADDR"); ok {
		c.Addr = v
	}
	if v, ok := os.LookupEnv("SWEEPER_LOG_FILE"); ok {
		c.LogFile = v
	}
	if v, ok := os.LookupEnv("SWEEPER_SESSION_SECRET"); ok {
		c.Session.Secret = v
	}
	if v, ok := os.LookupEnv("COOKIES_DOMAIN"); ok {
		c.Cookies.Domain = v
	}
	if v, ok := os.LookupEnv("COOKIES_SECURE"); ok {
		c.Cookies.Secure = v != "0"
	}
	if v, ok := os.LookupEnv("COOKIES_SAMESITE"); ok {
		c.Cookies.SameSite = v
	}

	var err error
	if v, ok := os.LookupEnv("SWEEPER_GAME"); ok {
		p, err := mines.ParseParams(v)
		if err != nil {
			return fmt.Errorf("unable to parse SWEEPER_GAME: %w", err)
		}
		c.Game.Width, c.Game.Height, c.Game.MineProbability = p.Width, p.Height, p.MineProbability
	}
	if v, ok := os.LookupEnv("SWEEPER_WIDTH"); ok {
		if c.Game.Width, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("unable to parse SWEEPER_WIDTH: %w", err)
		}
	}
	if v, ok := os.LookupEnv("SWEEPER_HEIGHT"); ok {
		if c.Game.Height, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("unable to parse SWEEPER_HEIGHT: %w", err)
		}
	}
	if v, ok := os.LookupEnv("SWEEPER_MINE_PROBABILITY"); ok {
		if c.Game.MineProbability, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("unable to parse SWEEPER_MINE_PROBABILITY: %w", err)
		}
	}
	if v, ok := os.LookupEnv("SWEEPER_SEED"); ok {
		if c.Game.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return fmt.Errorf("unable to parse SWEEPER_SEED: %w", err)
		}
	}
	if v, ok := os.LookupEnv("SWEEPER_SESSION_TTL"); ok {
		if c.Session.TTL.Duration, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("unable to parse SWEEPER_SESSION_TTL: %w", err)
		}
	}
	return nil
}
