// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config holds the environment configuration of the cmdbind CLI.
// Command line flags take precedence over these values.
package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

// ErrParseEnv is returned when the environment cannot be parsed.
var ErrParseEnv = errors.New("failed to parse environment configuration")

// Config is read from CMDBIND_* environment variables.
type Config struct {
	// Manifest is the default manifest URL, in go-getter syntax.
	Manifest string `env:"CMDBIND_MANIFEST"`
	// Prompt is the shell prompt.
	Prompt string `env:"CMDBIND_PROMPT" envDefault:"> "`
	// Prefix is the HCL manifest prefix variable.
	Prefix string `env:"CMDBIND_PREFIX" envDefault:"/"`
	// History is the shell history file. Empty disables history.
	History string `env:"CMDBIND_HISTORY"`
}

// FromEnv parses the configuration from the environment.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParseEnv, err)
	}

	return cfg, nil
}
