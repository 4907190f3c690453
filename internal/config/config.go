package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the full hardcoverctl configuration.
type Config struct {
	Hardcover HardcoverConfig `mapstructure:"hardcover" yaml:"hardcover"`
	Goals     GoalsConfig     `mapstructure:"goals" yaml:"goals"`
}

// HardcoverConfig holds API connection settings. The key itself is
// resolved from the environment and never written to the config file.
type HardcoverConfig struct {
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"`
	APIKeyEnv string `mapstructure:"api_key_env" yaml:"api_key_env"`
	Username  string `mapstructure:"username" yaml:"username,omitempty"`

	APIKey string `mapstructure:"-" yaml:"-"`
}

// GoalsConfig tunes goal reconciliation. Both flags default to on, which
// matches the upstream widget's behavior.
type GoalsConfig struct {
	SelfHeal     bool `mapstructure:"self_heal" yaml:"self_heal"`
	CountRereads bool `mapstructure:"count_rereads" yaml:"count_rereads"`
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hardcoverctl", "config.yml")
}

// Load reads the config from disk (or env). A missing config file is fine;
// defaults plus environment cover first-run usage.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("hardcover.endpoint", "https://api.hardcover.app/v1/graphql")
	v.SetDefault("hardcover.api_key_env", "HARDCOVER_API_KEY")
	v.SetDefault("goals.self_heal", true)
	v.SetDefault("goals.count_rereads", true)

	v.SetEnvPrefix("HARDCOVERCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("HARDCOVERCTL_CONFIG")
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Resolve the API key from env (never stored in the file) and
	// normalize whatever the user pasted.
	keyEnv := cfg.Hardcover.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "HARDCOVER_API_KEY"
	}
	raw := os.Getenv(keyEnv)
	if raw == "" {
		raw = os.Getenv("HARDCOVERCTL_API_KEY")
	}
	cfg.Hardcover.APIKey = NormalizeAPIKey(raw)
	cfg.Hardcover.Username = NormalizeUsername(cfg.Hardcover.Username)

	return &cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}
