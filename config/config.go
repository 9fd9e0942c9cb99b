package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/code-payments/flipchat-moderation/moderation"
)

type Config struct {
	Server   ServerConfig      `yaml:"server"`
	Google   GoogleConfig      `yaml:"google"`
	Cache    CacheConfig       `yaml:"cache"`
	S3       S3Config          `yaml:"s3"`
	Logging  LoggingConfig     `yaml:"logging"`
	Taxonomy TaxonomyConfig    `yaml:"taxonomy"`
	Signals  map[string]string `yaml:"signals"` // signal kind -> mandatory | optional
}

type ServerConfig struct {
	Addr         string `yaml:"addr"`           // HTTP listen address, e.g. ":8080"
	MaxBodyBytes int64  `yaml:"max_body_bytes"` // upper bound for submitted content
}

type GoogleConfig struct {
	CredentialsFile string        `yaml:"credentials_file"`
	Endpoint        string        `yaml:"endpoint"`
	MaxRetries      uint64        `yaml:"max_retries"`
	Backoff         time.Duration `yaml:"backoff"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"` // zero disables analyzer memoization
}

type S3Config struct {
	Endpoint     string `yaml:"endpoint"`
	Region       string `yaml:"region"`
	Bucket       string `yaml:"bucket"`
	AccessKeyEnv string `yaml:"access_key_env"`
	SecretKeyEnv string `yaml:"secret_key_env"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug | info | warn | error
	Development bool   `yaml:"development"`
}

type TaxonomyConfig struct {
	Image TaxonomyOverride `yaml:"image"`
	Text  TaxonomyOverride `yaml:"text"`
}

// TaxonomyOverride replaces parts of a built-in taxonomy. Empty lists keep the
// built-in keywords.
type TaxonomyOverride struct {
	Inappropriate []string `yaml:"inappropriate"`
	Review        []string `yaml:"review"`
	Threshold     *float64 `yaml:"threshold"`
}

// Load reads a YAML config file from disk.
// If the file doesn't exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)

	if _, err := cfg.SignalPolicies(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		cfg.Server.MaxBodyBytes = 20 << 20
	}

	if cfg.Google.MaxRetries == 0 {
		cfg.Google.MaxRetries = 3
	}
	if cfg.Google.Backoff <= 0 {
		cfg.Google.Backoff = 250 * time.Millisecond
	}

	if cfg.S3.Region == "" {
		cfg.S3.Region = "us-east-1"
	}
	if cfg.S3.AccessKeyEnv == "" {
		cfg.S3.AccessKeyEnv = "AWS_ACCESS_KEY_ID"
	}
	if cfg.S3.SecretKeyEnv == "" {
		cfg.S3.SecretKeyEnv = "AWS_SECRET_ACCESS_KEY"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Signals == nil {
		cfg.Signals = map[string]string{}
	}
}

func applyEnv(cfg *Config) {
	if cfg.Google.CredentialsFile == "" {
		cfg.Google.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
}

// S3Credentials resolves the access and secret keys from the configured
// environment variables.
func (c *Config) S3Credentials() (accessKey, secretKey string) {
	return os.Getenv(c.S3.AccessKeyEnv), os.Getenv(c.S3.SecretKeyEnv)
}

func (c *Config) ImageTaxonomy() moderation.Taxonomy {
	return c.Taxonomy.Image.apply(moderation.DefaultImageTaxonomy())
}

func (c *Config) TextTaxonomy() moderation.Taxonomy {
	return c.Taxonomy.Text.apply(moderation.DefaultTextTaxonomy())
}

func (o TaxonomyOverride) apply(t moderation.Taxonomy) moderation.Taxonomy {
	if len(o.Inappropriate) > 0 {
		t.Inappropriate = append([]string{}, o.Inappropriate...)
	}
	if len(o.Review) > 0 {
		t.Review = append([]string{}, o.Review...)
	}
	if o.Threshold != nil {
		t.Threshold = *o.Threshold
	}
	return t
}

func (c *Config) SignalPolicies() (map[moderation.SignalKind]moderation.SignalPolicy, error) {
	policies := moderation.DefaultSignalPolicies()
	for kind, name := range c.Signals {
		signal := moderation.SignalKind(kind)
		if _, ok := policies[signal]; !ok {
			return nil, fmt.Errorf("unknown signal %q", kind)
		}

		policy, err := moderation.ParseSignalPolicy(name)
		if err != nil {
			return nil, fmt.Errorf("signal %s: %w", kind, err)
		}
		policies[signal] = policy
	}
	return policies, nil
}

// ModerationOptions translates the config into moderator options.
func (c *Config) ModerationOptions() ([]moderation.Option, error) {
	policies, err := c.SignalPolicies()
	if err != nil {
		return nil, err
	}

	opts := []moderation.Option{
		moderation.WithImageTaxonomy(c.ImageTaxonomy()),
		moderation.WithTextTaxonomy(c.TextTaxonomy()),
	}
	for kind, policy := range policies {
		opts = append(opts, moderation.WithSignalPolicy(kind, policy))
	}
	return opts, nil
}
