// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/gatelog/internal/logging"
	"github.com/tomtom215/gatelog/internal/policy"
)

// DefaultConfigPaths lists where config files are searched, first match
// wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/gatelog/config.yaml",
	"/etc/gatelog/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "GATELOG_CONFIG"

// defaultConfig returns the built-in defaults. All policy flags default to
// off and the blocked list to empty, per the external interface contract.
func defaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Identifier:       "",
			PrettyPermalinks: true,
			AdminPathPrefix:  "/admin",
		},
		Syslog: SyslogConfig{
			Channel:          "gatelog",
			Facility:         "user",
			PingbackChannel:  "gatelog-pingback",
			PingbackFacility: "local0",
		},
		Policy: PolicyConfig{
			BlockedUsers:       nil,
			InvertBlockedUsers: false,
			LogSpamComments:    false,
			BlockEnumeration:   false,
			LogPingbacks:       false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration with layered sources:
//  1. built-in defaults
//  2. optional YAML config file
//  3. environment variables (highest priority)
func Load() (*Config, error) {
	return loadFrom(findConfigFile())
}

// LoadFile reads configuration from an explicit file path plus defaults
// and environment.
func LoadFile(path string) (*Config, error) {
	return loadFrom(path)
}

func loadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices
// when supplied through the environment.
var sliceConfigPaths = []string{
	"policy.blocked_users",
}

// processSliceFields converts comma-separated env strings into slices for
// the known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names onto config paths.
// Unmapped variables are skipped so unrelated environment does not pollute
// the configuration.
func envTransformFunc(key string) string {
	envMappings := map[string]string{
		"gatelog_site":              "site.identifier",
		"gatelog_pretty_permalinks": "site.pretty_permalinks",
		"gatelog_admin_path":        "site.admin_path_prefix",

		"gatelog_channel":           "syslog.channel",
		"gatelog_facility":          "syslog.facility",
		"gatelog_pingback_channel":  "syslog.pingback_channel",
		"gatelog_pingback_facility": "syslog.pingback_facility",

		"gatelog_blocked_users":        "policy.blocked_users",
		"gatelog_blocked_users_invert": "policy.invert_blocked_users",
		"gatelog_log_spam_comments":    "policy.log_spam_comments",
		"gatelog_block_enumeration":    "policy.block_enumeration",
		"gatelog_log_pingbacks":        "policy.log_pingbacks",

		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

// WatchPolicy watches the config file at path and pushes the policy
// section of every successful reload into the store. A reload that fails
// to parse or validate keeps the previous policy and logs the error.
func WatchPolicy(path string, store *policy.Store) error {
	provider := file.Provider(path)
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		cfg, err := LoadFile(path)
		if err != nil {
			logging.Err(err).Str("path", path).Msg("policy reload failed, keeping previous policy")
			return
		}
		store.Update(cfg.PolicyDecision())
		logging.Info().Str("path", path).Msg("policy reloaded")
	})
}
