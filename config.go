// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackpost

import "time"

const (
	// DefaultAPIURL is the base URL of the Slack Web API.
	DefaultAPIURL = "https://slack.com"

	// DefaultTimeout is the suggested timeout for the *http.Client given to
	// New.
	DefaultTimeout = 30 * time.Second
)

// Names of the environment variables the configuration is read from. The
// internal/config package does the reading, they are here so that errors can
// name the setting that was missing.
const (
	EnvToken     = "TOKEN"
	EnvChannel   = "CHANNEL"
	EnvChannelID = "CHANNEL_ID"
	EnvAPIURL    = "SLACK_API_URL"
)

// Config holds the credentials and destinations used by the Client. Build it
// once at process start and pass it to New.
//
// None of the fields are validated up front. Each operation checks the ones it
// needs, and fails with a KindConfigMissing error before making any request if
// one is empty: PostMessage needs Token and Channel, the uploads need Token and
// ChannelID.
type Config struct {
	// Token is the bearer token (a bot or user OAuth token).
	Token string `yaml:"token"`

	// Channel is where PostMessage sends messages when it's not given one.
	Channel string `yaml:"channel"`

	// ChannelID is the channel uploaded files are shared to.
	ChannelID string `yaml:"channel_id"`

	// APIURL is the scheme and host of the API. Empty means DefaultAPIURL.
	APIURL string `yaml:"api_url"`

	// Timeout is not used by the Client itself, it's the timeout callers
	// should set on the *http.Client they pass to New. Zero means
	// DefaultTimeout.
	Timeout time.Duration `yaml:"timeout"`
}
