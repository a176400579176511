package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration, parsed from the environment.
// A .env file is loaded first when present.
type Config struct {
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"calorie_tracker"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`

	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"calorie_tracker"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	AWSRegion string `envconfig:"AWS_REGION" default:"us-east-1"`
	S3Bucket  string `envconfig:"S3_BUCKET" default:""`
	SESEmail  string `envconfig:"SES_EMAIL" default:""`

	EdamamAppID  string `envconfig:"EDAMAM_APP_ID" default:""`
	EdamamAppKey string `envconfig:"EDAMAM_APP_KEY" default:""`
}

// New loads .env (if any) and parses the configuration.
func New() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
