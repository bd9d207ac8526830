package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Providers for the food detection gateway.
const (
	PredictProviderHTTP        = "http"
	PredictProviderRekognition = "rekognition"
)

// Config aggregates all runtime settings. It is loaded once in main and
// handed to constructors; nothing reads the environment after startup.
type Config struct {
	Port        string
	Environment string
	UploadDir   string

	Database struct {
		URL      string
		Host     string
		User     string
		Password string
		Name     string
		Port     string
	}

	Auth struct {
		JWTSecret string
		TokenTTL  time.Duration
	}

	Predict struct {
		Provider   string
		URL        string
		Timeout    time.Duration
		Retries    int
		RetryDelay time.Duration
	}

	CORS struct {
		Origins []string
	}

	AWS struct {
		Region string
		Bucket string
	}
}

func Load() (Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", "5000")
	v.SetDefault("environment", "development")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "nutritracker")
	v.SetDefault("db_port", "5432")
	v.SetDefault("token_ttl", "168h")
	v.SetDefault("predict_provider", PredictProviderHTTP)
	v.SetDefault("predict_url", "http://localhost:8000/predict")
	v.SetDefault("predict_timeout", "30s")
	v.SetDefault("predict_retries", 0)
	v.SetDefault("predict_retry_delay", "1s")
	v.SetDefault("cors_origins", "http://localhost:3000")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("s3_bucket", "")

	var cfg Config
	cfg.Port = v.GetString("port")
	cfg.Environment = v.GetString("environment")
	cfg.UploadDir = v.GetString("upload_dir")

	cfg.Database.URL = v.GetString("database_url")
	cfg.Database.Host = v.GetString("db_host")
	cfg.Database.User = v.GetString("db_user")
	cfg.Database.Password = v.GetString("db_password")
	cfg.Database.Name = v.GetString("db_name")
	cfg.Database.Port = v.GetString("db_port")

	cfg.Auth.JWTSecret = v.GetString("jwt_secret")
	cfg.Auth.TokenTTL = v.GetDuration("token_ttl")

	cfg.Predict.Provider = v.GetString("predict_provider")
	cfg.Predict.URL = v.GetString("predict_url")
	cfg.Predict.Timeout = v.GetDuration("predict_timeout")
	cfg.Predict.Retries = v.GetInt("predict_retries")
	cfg.Predict.RetryDelay = v.GetDuration("predict_retry_delay")

	for _, o := range strings.Split(v.GetString("cors_origins"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORS.Origins = append(cfg.CORS.Origins, o)
		}
	}

	cfg.AWS.Region = v.GetString("aws_region")
	cfg.AWS.Bucket = v.GetString("s3_bucket")

	switch cfg.Predict.Provider {
	case PredictProviderHTTP, PredictProviderRekognition:
	default:
		return Config{}, fmt.Errorf("unknown predict provider %q", cfg.Predict.Provider)
	}

	return cfg, nil
}

// DSN builds the postgres connection string, preferring DATABASE_URL
// when set.
func (c Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Database.Host,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.Port,
	)
}

// Production reports whether error detail should be withheld from
// responses.
func (c Config) Production() bool {
	return c.Environment == "production"
}
