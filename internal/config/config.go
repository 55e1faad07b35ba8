// Package config loads service configuration from the environment via Viper.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/viper"

	"github.com/jacentio/companies/store"
)

// Config groups application configuration.
type Config struct {
	App   AppConfig
	Table TableConfig
	AWS   AWSConfig
	HTTP  HTTPConfig
}

// AppConfig holds general settings.
type AppConfig struct {
	Env      string // development, staging, production
	LogLevel string
}

// TableConfig describes the DynamoDB table layout.
type TableConfig struct {
	Name          string
	LocationIndex string
	ScanLimit     int
}

// Store returns the store configuration for this table.
func (c TableConfig) Store() store.Config {
	return store.Config{
		TableName:     c.Name,
		LocationIndex: c.LocationIndex,
		ScanLimit:     int32(c.ScanLimit),
	}
}

// AWSConfig holds client settings.
type AWSConfig struct {
	Region string
	// Endpoint overrides the DynamoDB endpoint, e.g. http://localhost:8000 for DynamoDB Local.
	Endpoint string
}

// Load resolves the shared AWS configuration for the configured region.
func (c AWSConfig) Load(ctx context.Context) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

// DynamoDB builds a DynamoDB client, applying the endpoint override.
func (c AWSConfig) DynamoDB(ctx context.Context) (*dynamodb.Client, error) {
	cfg, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	}), nil
}

// HTTPConfig holds server settings.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from environment variables and, if present,
// a .env or config.env file in the working directory. Environment variables
// take precedence.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("env")
	for _, name := range []string{".env", "config.env"} {
		v.SetConfigFile(name)
		if err := v.MergeInConfig(); err != nil && !isMissingFile(err) {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Table: TableConfig{
			Name:          v.GetString("TABLE_NAME"),
			LocationIndex: v.GetString("LOCATION_INDEX"),
			ScanLimit:     v.GetInt("SCAN_LIMIT"),
		},
		AWS: AWSConfig{
			Region:   v.GetString("AWS_REGION"),
			Endpoint: v.GetString("DYNAMODB_ENDPOINT"),
		},
		HTTP: HTTPConfig{
			Host:        v.GetString("HTTP_HOST"),
			Port:        v.GetInt("HTTP_PORT"),
			CORSOrigins: v.GetString("CORS_ORIGINS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports out-of-range settings.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Table.Name) == "" {
		errs = append(errs, errors.New("TABLE_NAME must not be empty"))
	}
	if c.Table.ScanLimit < 1 || c.Table.ScanLimit > 1000 {
		errs = append(errs, fmt.Errorf("SCAN_LIMIT must be between 1 and 1000, got %d", c.Table.ScanLimit))
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.HTTP.Port))
	}
	if strings.TrimSpace(c.AWS.Region) == "" {
		errs = append(errs, errors.New("AWS_REGION must not be empty"))
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TABLE_NAME", "companies")
	v.SetDefault("LOCATION_INDEX", "LocationIndex")
	v.SetDefault("SCAN_LIMIT", 200)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("DYNAMODB_ENDPOINT", "")
	v.SetDefault("HTTP_HOST", "127.0.0.1")
	v.SetDefault("HTTP_PORT", 8000)
	v.SetDefault("CORS_ORIGINS", "*")
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}
