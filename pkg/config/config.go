// Package config holds the persisted settings: the active display currency
// and the data directory. Settings are read through viper so a config file,
// CASHFLOW_* environment variables and flag overrides all feed the same
// keys, and written back as plain YAML.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cashflow-tui/cashflow/pkg/models"
)

const fileName = "config.yaml"

type Config struct {
	Currency models.Currency
	DataDir  string
}

type fileFormat struct {
	Currency string `yaml:"currency"`
}

// DefaultDataDir is ~/.cashflow.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "determine home directory")
	}
	return filepath.Join(home, ".cashflow"), nil
}

// Load reads the config file in dir. A missing file, or a currency code
// outside the fixed list, falls back to USD.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, fileName))
	v.SetEnvPrefix("CASHFLOW")
	v.AutomaticEnv()
	v.SetDefault("currency", models.DefaultCurrency().Code)

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "read config")
		}
	}

	currency, _ := models.CurrencyFromCode(v.GetString("currency"))
	return &Config{Currency: currency, DataDir: dir}, nil
}

// Save writes the current settings back to the config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(fileFormat{Currency: c.Currency.Code})
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	path := filepath.Join(c.DataDir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}
	return nil
}

// CycleCurrency steps to the next or previous currency in the fixed list
// and persists the choice.
func (c *Config) CycleCurrency(forward bool) error {
	if forward {
		c.Currency = c.Currency.Next()
	} else {
		c.Currency = c.Currency.Prev()
	}
	return c.Save()
}

// SetCurrency selects a currency by code and persists it. Unknown codes
// are rejected.
func (c *Config) SetCurrency(code string) error {
	currency, ok := models.CurrencyFromCode(code)
	if !ok {
		return errors.Errorf("unknown currency code %q", code)
	}
	c.Currency = currency
	return c.Save()
}
