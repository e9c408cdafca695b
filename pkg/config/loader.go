// Package config loads typed configuration structs from environment
// variables. Values come from the process environment, optionally seeded
// from a .env file in the working directory.
//
// Each package defines its own Config struct with `env` tags:
//
//	type Config struct {
//		Secret string        `env:"JWT_SECRET,required"`
//		TTL    time.Duration `env:"JWT_TTL" envDefault:"2h"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var loadDotEnv sync.Once

// Load parses environment variables into the provided configuration struct.
// The .env file is loaded at most once per process; a missing file is not
// an error.
func Load[T any](v *T) error {
	loadDotEnv.Do(func() {
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return nil
}

// MustLoad works like Load but panics on failure. Intended for
// configuration without which the process cannot start.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(err)
	}
}
