package config

import (
	"encoding/base64"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerAddr     string
	DatabaseDSN    string
	SigningKey     []byte
	AllowedOrigins []string
}

// Env holds the environment-sourced defaults for the server flags.
type Env struct {
	Addr           string   `envconfig:"DMCHAT_ADDR" default:"localhost:8000"`
	DatabaseDSN    string   `envconfig:"DMCHAT_DSN" default:"host=localhost user=postgres password=postgres dbname=postgres sslmode=disable"`
	SigningSecret  string   `envconfig:"DMCHAT_SIGNING_KEY"`
	AllowedOrigins []string `envconfig:"DMCHAT_ALLOWED_ORIGINS"`
}

func FromEnv() (Env, error) {
	var e Env
	err := envconfig.Process("", &e)
	return e, err
}

func decodeSigningSecret(base64Secret string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(base64Secret)
}

func NewConfig(serverAddr, databaseDSN, base64Secret string, allowedOrigins []string) (*Config, error) {
	if serverAddr == "" {
		return nil, fmt.Errorf("server address cannot be empty")
	}
	if databaseDSN == "" {
		return nil, fmt.Errorf("database DSN cannot be empty")
	}
	if base64Secret == "" {
		return nil, fmt.Errorf("signing secret cannot be empty")
	}

	signingKey, err := decodeSigningSecret(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("decode signing secret: %w", err)
	}

	return &Config{
		ServerAddr:     serverAddr,
		DatabaseDSN:    databaseDSN,
		SigningKey:     signingKey,
		AllowedOrigins: allowedOrigins,
	}, nil
}
