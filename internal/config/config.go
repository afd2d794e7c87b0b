// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"server_address"`

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string `json:"database_dsn"`

	// Config is the path to the Config file.
	Config string `json:"-"`

	// LogLevel is passed to the zap logger.
	LogLevel string `json:"log_level"`

	// JWTSecret signs access tokens.
	JWTSecret string `json:"jwt_secret"`

	// TokenTTL is the lifetime of an access token.
	TokenTTL time.Duration `json:"-"`

	// OpenAIKey is the provider credential used by the completion gateway.
	OpenAIKey string `json:"openai_api_key"`

	// OpenAIModel is the chat model used for completions.
	OpenAIModel string `json:"openai_model"`

	// MaxTokens bounds every completion.
	MaxTokens int `json:"max_tokens"`

	// Temperature is the sampling temperature for completions.
	Temperature float64 `json:"temperature"`

	// AllowedOrigins lists the CORS origins, comma separated.
	AllowedOrigins string `json:"allowed_origins"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert"`
	TLSKey  string `json:"tls_key"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.StringVar(&options.JWTSecret, "jwt-secret", "", "secret used to sign access tokens")
	flag.DurationVar(&options.TokenTTL, "token-ttl", 24*time.Hour, "access token lifetime")
	flag.StringVar(&options.OpenAIKey, "openai-key", "", "completion provider API key")
	flag.StringVar(&options.OpenAIModel, "openai-model", "gpt-4o-mini", "completion model")
	flag.IntVar(&options.MaxTokens, "max-tokens", 500, "max tokens per completion")
	flag.Float64Var(&options.Temperature, "temperature", 0.2, "completion temperature")
	flag.StringVar(&options.AllowedOrigins, "origins", "http://localhost:3000", "allowed CORS origins, comma separated")
	flag.StringVar(&options.TLSCert, "tls-cert", "", "path to TLS certificate")
	flag.StringVar(&options.TLSKey, "tls-key", "", "path to TLS key")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
//
// Precedence, lowest first: flag defaults and values, config file, environment.
// A .env file in the working directory is loaded into the environment first.
func Parse() *Options {
	// .env is optional
	_ = godotenv.Load()

	flag.Parse()

	if err := load(options, os.Getenv); err != nil {
		log.Fatalf("config: %v", err)
	}
	return options
}

func load(o *Options, getenv func(string) string) error {
	// Override flags with environment variables if set
	if configPath := getenv("CONFIG"); configPath != "" {
		o.Config = configPath
	}

	if o.Config != "" {
		if _, err := os.Stat(o.Config); err == nil {
			data, err := os.ReadFile(o.Config)
			if err != nil {
				return fmt.Errorf("read config file: %w", err)
			}
			if err := json.Unmarshal(data, o); err != nil {
				return fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if serverAddress := getenv("SERVER_ADDRESS"); serverAddress != "" {
		o.Port = serverAddress
	}
	if dsn := getenv("DATABASE_DSN"); dsn != "" {
		o.DatabaseDSN = dsn
	}
	if secret := getenv("JWT_SECRET"); secret != "" {
		o.JWTSecret = secret
	}
	if key := getenv("OPENAI_API_KEY"); key != "" {
		o.OpenAIKey = key
	}
	if origins := getenv("ALLOWED_ORIGINS"); origins != "" {
		o.AllowedOrigins = origins
	}
	if lvl := getenv("LOG_LEVEL"); lvl != "" {
		o.LogLevel = lvl
	}
	if ttl := getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		o.TokenTTL = d
	}
	if mt := getenv("MAX_TOKENS"); mt != "" {
		n, err := strconv.Atoi(mt)
		if err != nil {
			return fmt.Errorf("parse MAX_TOKENS: %w", err)
		}
		o.MaxTokens = n
	}

	return nil
}

// Origins splits AllowedOrigins into a trimmed, non-empty list.
func (o *Options) Origins() []string {
	var out []string
	for _, s := range strings.Split(o.AllowedOrigins, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
