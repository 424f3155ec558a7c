package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	KeyAPIBaseURL         = "api.base_url"
	KeyAuthProfile        = "auth.profile"
	KeyCredentialsBackend = "credentials.backend"
	KeyCredentialsDir     = "credentials.dir"
	KeyStatePath          = "state.path"
	KeyOutputDir          = "output.dir"
	KeyS3Bucket           = "output.s3.bucket"
	KeyS3Prefix           = "output.s3.prefix"
	KeyS3Region           = "output.s3.region"
	KeyS3Endpoint         = "output.s3.endpoint"
	KeySkeletonMinDisplay = "skeleton.min_display"
	KeyLogLevel           = "log.level"
	KeyLogFormat          = "log.format"
	KeyMetricsTextfile    = "metrics.textfile"

	EnvPrefix = "VTON"

	configDir  = ".vton"
	configName = "config"
	configType = "toml"
)

type S3 struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
}

type Settings struct {
	APIBaseURL         string
	AuthProfile        string
	CredentialsBackend string
	CredentialsDir     string
	StatePath          string
	OutputDir          string
	S3                 S3
	SkeletonMinDisplay time.Duration
	LogLevel           string
	LogFormat          string
	MetricsTextfile    string
}

// Load reads ~/.vton/config.toml when present and overlays VTON_* environment
// variables (VTON_API_BASE_URL for api.base_url). The returned viper instance
// is handed to adapters that read their own keys.
func Load() (Settings, *viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg := viper.New()
	setDefaults(cfg, filepath.Join(homeDir, configDir))

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetEnvPrefix(EnvPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, nil, fmt.Errorf("read config: %w", err)
		}
	}

	settings, err := fromViper(cfg)
	if err != nil {
		return Settings{}, nil, err
	}

	return settings, cfg, nil
}

func setDefaults(cfg *viper.Viper, root string) {
	cfg.SetDefault(KeyAPIBaseURL, "http://127.0.0.1:8000")
	cfg.SetDefault(KeyAuthProfile, "default")
	cfg.SetDefault(KeyCredentialsBackend, "auto")
	cfg.SetDefault(KeyCredentialsDir, filepath.Join(root, "credentials"))
	cfg.SetDefault(KeyStatePath, filepath.Join(root, "state.toml"))
	cfg.SetDefault(KeyOutputDir, ".")
	cfg.SetDefault(KeyS3Bucket, "")
	cfg.SetDefault(KeyS3Prefix, "")
	cfg.SetDefault(KeyS3Region, "")
	cfg.SetDefault(KeyS3Endpoint, "")
	cfg.SetDefault(KeySkeletonMinDisplay, "5s")
	cfg.SetDefault(KeyLogLevel, "warn")
	cfg.SetDefault(KeyLogFormat, "console")
	cfg.SetDefault(KeyMetricsTextfile, "")
}

func fromViper(cfg *viper.Viper) (Settings, error) {
	minDisplay, err := time.ParseDuration(cfg.GetString(KeySkeletonMinDisplay))
	if err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", KeySkeletonMinDisplay, err)
	}
	if minDisplay < 0 {
		return Settings{}, fmt.Errorf("%s must not be negative", KeySkeletonMinDisplay)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.GetString(KeyAPIBaseURL)), "/")
	if baseURL == "" {
		return Settings{}, fmt.Errorf("%s is required", KeyAPIBaseURL)
	}

	return Settings{
		APIBaseURL:         baseURL,
		AuthProfile:        strings.TrimSpace(cfg.GetString(KeyAuthProfile)),
		CredentialsBackend: strings.ToLower(strings.TrimSpace(cfg.GetString(KeyCredentialsBackend))),
		CredentialsDir:     cfg.GetString(KeyCredentialsDir),
		StatePath:          cfg.GetString(KeyStatePath),
		OutputDir:          cfg.GetString(KeyOutputDir),
		S3: S3{
			Bucket:   strings.TrimSpace(cfg.GetString(KeyS3Bucket)),
			Prefix:   cfg.GetString(KeyS3Prefix),
			Region:   cfg.GetString(KeyS3Region),
			Endpoint: cfg.GetString(KeyS3Endpoint),
		},
		SkeletonMinDisplay: minDisplay,
		LogLevel:           cfg.GetString(KeyLogLevel),
		LogFormat:          cfg.GetString(KeyLogFormat),
		MetricsTextfile:    cfg.GetString(KeyMetricsTextfile),
	}, nil
}
