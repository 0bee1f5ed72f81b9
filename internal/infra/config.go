package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration. Secrets may be
// overridden through environment variables after loading.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Telegram struct {
		APIID   int    `yaml:"api_id"`
		APIHash string `yaml:"api_hash"`
		Session string `yaml:"session"`
		Group   string `yaml:"group"`
		WSURL   string `yaml:"ws_url"`   // chat gateway live feed
		RestURL string `yaml:"rest_url"` // chat gateway message fetch
	} `yaml:"telegram"`

	Parser struct {
		SymbolSuffix string `yaml:"symbol_suffix"`
	} `yaml:"parser"`

	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file, applies environment
// overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity. Missing transport credentials or
// an unset group are fatal: the process must not start degraded.
func (c *Config) Validate() error {
	if c.Telegram.APIID == 0 || c.Telegram.APIHash == "" {
		return fmt.Errorf("missing telegram api_id / api_hash")
	}
	if c.Telegram.Group == "" {
		return fmt.Errorf("missing telegram group (title, invite link, or id)")
	}
	if c.Telegram.WSURL != "" && !strings.HasPrefix(c.Telegram.WSURL, "ws://") && !strings.HasPrefix(c.Telegram.WSURL, "wss://") {
		return fmt.Errorf("invalid feed WS URL: %s", c.Telegram.WSURL)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Telegram.Session == "" {
		cfg.Telegram.Session = "therealfx_user"
	}
	if cfg.Parser.SymbolSuffix == "" {
		cfg.Parser.SymbolSuffix = "-STD"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "out"
	}
}

// overrideWithEnv overrides config values from the environment when set.
func overrideWithEnv(cfg *Config) {
	if id := os.Getenv("SIGNAL_TG_API_ID"); id != "" {
		if v, err := strconv.Atoi(id); err == nil {
			cfg.Telegram.APIID = v
		}
	}
	if hash := os.Getenv("SIGNAL_TG_API_HASH"); hash != "" {
		cfg.Telegram.APIHash = hash
	}
	if session := os.Getenv("SIGNAL_TG_SESSION"); session != "" {
		cfg.Telegram.Session = session
	}
	if group := os.Getenv("SIGNAL_TG_GROUP"); group != "" {
		cfg.Telegram.Group = group
	}
	if suffix := os.Getenv("SIGNAL_SYMBOL_POSTFIX"); suffix != "" {
		cfg.Parser.SymbolSuffix = suffix
	}
	if dir := os.Getenv("SIGNAL_OUT_DIR"); dir != "" {
		cfg.Output.Dir = dir
	}
}
