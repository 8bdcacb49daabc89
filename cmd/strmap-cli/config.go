package main

import (
	"os"

	"github.com/UTD-JLA/strmap/pkg/strmap"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Joiner    string `toml:"joiner"`
	Delimiter string `toml:"delimiter"`
}

func NewConfig() *Config {
	return &Config{
		Joiner:    strmap.DefaultJoiner,
		Delimiter: strmap.DefaultDelimiter,
	}
}

func (c *Config) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}

	defer file.Close()

	err = toml.NewDecoder(file).Decode(c)
	if err != nil {
		return err
	}

	return nil
}
