// Package config loads service settings from an optional YAML file, a .env
// file and STOREFRONT_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	envPrefix         = "STOREFRONT"
)

type HTTP struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type Auth struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type Store struct {
	Driver        string        `mapstructure:"driver"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
}

type Catalog struct {
	Source      string `mapstructure:"source"`
	File        string `mapstructure:"file"`
	DatabaseURL string `mapstructure:"database_url"`
}

type Chat struct {
	Delay         time.Duration `mapstructure:"delay"`
	Jitter        time.Duration `mapstructure:"jitter"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Burst         int           `mapstructure:"burst"`
}

type Events struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Config struct {
	LogLevel string  `mapstructure:"log_level"`
	HTTP     HTTP    `mapstructure:"http"`
	Auth     Auth    `mapstructure:"auth"`
	Store    Store   `mapstructure:"store"`
	Catalog  Catalog `mapstructure:"catalog"`
	Chat     Chat    `mapstructure:"chat"`
	Events   Events  `mapstructure:"events"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", time.Minute)

	v.SetDefault("auth.jwt_secret", "change-me")
	v.SetDefault("auth.token_ttl", 30*24*time.Hour)

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.ttl", time.Duration(0))

	v.SetDefault("catalog.source", "builtin")
	v.SetDefault("catalog.file", "")
	v.SetDefault("catalog.database_url", "")

	v.SetDefault("chat.delay", time.Duration(0))
	v.SetDefault("chat.jitter", time.Duration(0))
	v.SetDefault("chat.timeout", 5*time.Second)
	v.SetDefault("chat.rate_per_second", 1.0)
	v.SetDefault("chat.burst", 3)

	v.SetDefault("events.brokers", []string{})
	v.SetDefault("events.topic", "chat-queries")
}

// Load reads the configuration. args are the command line arguments without
// the program name; --config names the YAML file, overridden by
// STOREFRONT_CONFIG_FILE. A missing .env file is not an error.
func Load(args []string) (Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	path, err := configFilePath(args)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

func configFilePath(args []string) (string, error) {
	cmdLine := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	arg := cmdLine.String("config", "", "config file")
	if err := cmdLine.Parse(args); err != nil {
		return "", err
	}
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env, nil
	}
	return *arg, nil
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch c.Catalog.Source {
	case "builtin":
	case "file":
		if c.Catalog.File == "" {
			return errors.New("catalog.file is required for the file source")
		}
	case "postgres":
		if c.Catalog.DatabaseURL == "" {
			return errors.New("catalog.database_url is required for the postgres source")
		}
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}

	if c.Chat.RatePerSecond <= 0 || c.Chat.Burst <= 0 {
		return errors.New("chat rate and burst must be positive")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	return nil
}
