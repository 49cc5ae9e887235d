// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

// Package config builds a slackpost.Config from a .env file, an optional YAML
// file, and the process environment.
package config

import (
	"io/ioutil"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/theckman/slackpost"
	"gopkg.in/yaml.v3"
)

// DotEnvFile is the file loaded into the environment, if it exists, before the
// configuration is read.
const DotEnvFile = ".env"

// LookupFunc is the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load loads DotEnvFile into the process environment without overriding
// variables that are already set, and then returns the result of FromFile.
func Load(path string) (slackpost.Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return slackpost.Config{}, errors.Wrapf(err, "failed to load %s", DotEnvFile)
	}

	return FromFile(path, os.LookupEnv)
}

// FromFile reads the YAML file at path, if path isn't empty, and then applies
// the environment on top of it using lookup. Defaults are filled in for the
// API URL and timeout.
//
// Missing credentials are not an error here, each slackpost operation checks
// for the ones it needs.
func FromFile(path string, lookup LookupFunc) (slackpost.Config, error) {
	var cfg slackpost.Config

	if path != "" {
		p, err := ioutil.ReadFile(path)
		if err != nil {
			return slackpost.Config{}, errors.Wrap(err, "failed to read config file")
		}

		if err := yaml.Unmarshal(p, &cfg); err != nil {
			return slackpost.Config{}, errors.Wrapf(err, "failed to parse config file %q", path)
		}
	}

	applyEnv(&cfg, lookup)

	if cfg.APIURL == "" {
		cfg.APIURL = slackpost.DefaultAPIURL
	}

	if cfg.Timeout < 0 {
		return slackpost.Config{}, errors.Errorf("timeout must not be negative, got %s", cfg.Timeout)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = slackpost.DefaultTimeout
	}

	return cfg, nil
}

func applyEnv(cfg *slackpost.Config, lookup LookupFunc) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set(&cfg.Token, slackpost.EnvToken)
	set(&cfg.Channel, slackpost.EnvChannel)
	set(&cfg.ChannelID, slackpost.EnvChannelID)
	set(&cfg.APIURL, slackpost.EnvAPIURL)
}
