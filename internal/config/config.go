// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

// Package config loads and validates gatelog configuration with layered
// sources: built-in defaults, an optional YAML file, and environment
// variables, in ascending precedence.
package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/gatelog/internal/logging"
	"github.com/tomtom215/gatelog/internal/plugin"
	"github.com/tomtom215/gatelog/internal/policy"
	"github.com/tomtom215/gatelog/internal/sink"
)

// Config is the full gatelog configuration.
type Config struct {
	Site    SiteConfig    `koanf:"site"`
	Syslog  SyslogConfig  `koanf:"syslog"`
	Policy  PolicyConfig  `koanf:"policy"`
	Logging LoggingConfig `koanf:"logging"`
}

// SiteConfig identifies the host site.
type SiteConfig struct {
	// Identifier is the site's public identity string, interpolated into
	// every log line.
	Identifier string `koanf:"identifier" validate:"required"`

	// PrettyPermalinks reports whether the host routes with pretty
	// permalinks. Enumeration blocking is suppressed without them.
	PrettyPermalinks bool `koanf:"pretty_permalinks"`

	// AdminPathPrefix marks administrative request paths. Empty disables
	// the admin exemption in the enumeration guard.
	AdminPathPrefix string `koanf:"admin_path_prefix"`
}

// SyslogConfig names the logging channels and facilities.
type SyslogConfig struct {
	Channel          string `koanf:"channel"`
	Facility         string `koanf:"facility" validate:"omitempty,facility"`
	PingbackChannel  string `koanf:"pingback_channel"`
	PingbackFacility string `koanf:"pingback_facility" validate:"omitempty,facility"`
}

// PolicyConfig holds the externally supplied policy inputs. All optional;
// the zero value logs nothing beyond the always-on events and blocks
// nobody.
type PolicyConfig struct {
	BlockedUsers       []string `koanf:"blocked_users"`
	InvertBlockedUsers bool     `koanf:"invert_blocked_users"`
	LogSpamComments    bool     `koanf:"log_spam_comments"`
	BlockEnumeration   bool     `koanf:"block_enumeration"`
	LogPingbacks       bool     `koanf:"log_pingbacks"`
}

// LoggingConfig configures the diagnostic logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// facility: one of the recognized syslog facility names.
		_ = validate.RegisterValidation("facility", func(fl validator.FieldLevel) bool {
			return sink.ValidFacility(fl.Field().String())
		})
	})
	return validate
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// PolicyDecision converts the policy section into a resolver snapshot.
func (c *Config) PolicyDecision() policy.Decision {
	return policy.Decision{
		BlockedUsers:       c.Policy.BlockedUsers,
		InvertBlockedUsers: c.Policy.InvertBlockedUsers,
		LogSpamComments:    c.Policy.LogSpamComments,
		BlockEnumeration:   c.Policy.BlockEnumeration,
		LogPingbacks:       c.Policy.LogPingbacks,
	}
}

// PluginConfig converts the site and syslog sections into the plugin's
// channel configuration.
func (c *Config) PluginConfig() plugin.Config {
	return plugin.Config{
		Site:             c.Site.Identifier,
		Channel:          c.Syslog.Channel,
		Facility:         c.Syslog.Facility,
		PingbackChannel:  c.Syslog.PingbackChannel,
		PingbackFacility: c.Syslog.PingbackFacility,
	}
}

// LoggingConfigFor converts the logging section for logging.Init.
func (c *Config) LoggingConfigFor() logging.Config {
	return logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Caller: c.Logging.Caller,
	}
}
