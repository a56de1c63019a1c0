// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.cors", "host_cors")

	v.BindEnv("host.ssl_enabled", "host_ssl_enabled")
	v.BindEnv("host.ssl_certificate_path", "host_ssl_certificate_path")
	v.BindEnv("host.ssl_certificate_key_path", "host_ssl_certificate_key_path")

	v.BindEnv("security.jwt_secret", "security_jwt_secret")
	v.BindEnv("security.rate_limit", "security_rate_limit")

	v.BindEnv("mongo.uri", "mongo_uri")
	v.BindEnv("mongo.database", "mongo_database")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender_address", "mail_sender_address")
	v.BindEnv("mail.password", "mail_password")

	v.BindEnv("ai.base_url", "ai_base_url")
	v.BindEnv("ai.model", "ai_model")
	v.BindEnv("ai.api_key", "ai_api_key")

	v.BindEnv("turnstile.enabled", "turnstile_enabled")
	v.BindEnv("turnstile.secret_token", "turnstile_secret_token")

	v.BindEnv("cleanup.retention_days", "cleanup_retention_days")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.cors", []string{"http://localhost:3000"})
	v.SetDefault("host.ssl_enabled", false)

	v.SetDefault("security.rate_limit", 10)

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "feedback")

	v.SetDefault("mail.port", 587)

	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4o-mini")

	v.SetDefault("turnstile.enabled", false)

	v.SetDefault("cleanup.retention_days", 7)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return errors.New("security.rate_limit must be bigger than 0")
	}

	if v.GetBool("host.ssl_enabled") {
		if v.GetString("host.ssl_certificate_path") == "" {
			return errors.New("no ssl certificate path provided")
		}

		if v.GetString("host.ssl_certificate_key_path") == "" {
			return errors.New("no ssl certificate key path provided")
		}
	}

	if v.GetString("security.jwt_secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetString("mongo.uri") == "" {
		return errors.New("mongo uri can't be empty")
	}

	if v.GetString("mail.host") == "" {
		return errors.New("mail host can't be empty")
	}

	if v.GetString("mail.sender_address") == "" {
		return errors.New("mail sender address can't be empty")
	}

	if v.GetBool("turnstile.enabled") && v.GetString("turnstile.secret_token") == "" {
		return errors.New("turnstile secret token is missing")
	}

	if v.GetString("ai.api_key") == "" {
		fmt.Println("[WARNING]: No AI API key configured. Message suggestions will fail until ai.api_key is set")
	}

	return nil
}
