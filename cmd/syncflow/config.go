package main

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/syncflow/dashboard/internal/logging"
	"github.com/syncflow/dashboard/internal/model"
)

const envFile = ".env"

// appConfig is the runtime configuration shared by every subcommand.
type appConfig struct {
	APIURL             string        `mapstructure:"api-url"`
	LLMURL             string        `mapstructure:"llm-url"`
	LLMModel           string        `mapstructure:"llm-model"`
	RequestTimeout     time.Duration `mapstructure:"request-timeout"`
	StreamInterval     time.Duration `mapstructure:"stream-interval"`
	InventoryInterval  time.Duration `mapstructure:"inventory-interval"`
	TailWindow         int           `mapstructure:"tail-window"`
	StorePath          string        `mapstructure:"store-path"`
	LogFile            string        `mapstructure:"log-file"`
	LogLevel           string        `mapstructure:"log-level"`
	ReverseScrollWheel bool          `mapstructure:"reverse-scroll-wheel"`
	MockAddr           string        `mapstructure:"mock-addr"`
	ConfigPath         string        `mapstructure:"-"` // not from config file
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	// A missing .env is normal; variables already set in the environment win.
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("loading %s: %w", envFile, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("SYNCFLOW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-url", "http://"+model.DefaultMockAddr)
	v.SetDefault("llm-url", model.DefaultLLMURL)
	v.SetDefault("llm-model", model.DefaultLLMModel)
	v.SetDefault("request-timeout", model.DefaultRequestTimeout)
	v.SetDefault("stream-interval", model.DefaultStreamInterval)
	v.SetDefault("inventory-interval", model.DefaultInventoryInterval)
	v.SetDefault("tail-window", model.DefaultTailWindow)
	v.SetDefault("store-path", filepath.Join(home, ".local", "share", "syncflow", "tasks.duckdb"))
	v.SetDefault("log-file", logging.DefaultFile())
	v.SetDefault("log-level", "info")
	v.SetDefault("reverse-scroll-wheel", false)
	v.SetDefault("mock-addr", model.DefaultMockAddr)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "syncflow", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if _, err := os.Stat(v.ConfigFileUsed()); err == nil {
		cfg.ConfigPath = v.ConfigFileUsed()
	}

	if strings.HasPrefix(cfg.StorePath, "~/") {
		cfg.StorePath = filepath.Join(home, cfg.StorePath[2:])
	}
	return cfg, cfg.validate()
}

func (c appConfig) validate() error {
	for key, raw := range map[string]string{"api-url": c.APIURL, "llm-url": c.LLMURL} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid %s: %q", key, raw)
		}
	}
	switch {
	case c.RequestTimeout <= 0:
		return fmt.Errorf("invalid request-timeout: %s", c.RequestTimeout)
	case c.StreamInterval <= 0:
		return fmt.Errorf("invalid stream-interval: %s", c.StreamInterval)
	case c.InventoryInterval <= 0:
		return fmt.Errorf("invalid inventory-interval: %s", c.InventoryInterval)
	case c.TailWindow <= 0:
		return fmt.Errorf("invalid tail-window: %d", c.TailWindow)
	}
	if _, _, err := net.SplitHostPort(c.MockAddr); err != nil {
		return fmt.Errorf("invalid mock-addr %q: %w", c.MockAddr, err)
	}
	return nil
}
