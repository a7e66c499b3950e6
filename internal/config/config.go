package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// StorageBackend selects how label images referenced by URL are fetched.
type StorageBackend string

const (
	StorageBackendHTTP  StorageBackend = "http"
	StorageBackendAzure StorageBackend = "azure"
)

type Config struct {
	Host              string
	Port              string
	RequestTimeout    time.Duration
	OCRTimeout        time.Duration
	ImageFetchTimeout time.Duration
	MaxUploadSize     int64

	// MinTextLength is the OCR quality gate: extracted text shorter than
	// this after trimming cannot be verified.
	MinTextLength int

	OCRLanguage string

	CORSAllowedOrigins []string

	StorageBackend      StorageBackend
	AzureStorageAccount string
	AzureStorageKey     string
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:                getEnvOrDefault("HOST", "0.0.0.0"),
		Port:                getEnvOrDefault("PORT", "8080"),
		RequestTimeout:      parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		OCRTimeout:          parseDurationOrDefault("OCR_TIMEOUT", 20*time.Second),
		ImageFetchTimeout:   parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		MaxUploadSize:       parseIntOrDefault("MAX_UPLOAD_SIZE", 10*1024*1024), // 10MB
		MinTextLength:       int(parseIntOrDefault("MIN_TEXT_LENGTH", 10)),
		OCRLanguage:         getEnvOrDefault("OCR_LANGUAGE", "eng"),
		CORSAllowedOrigins:  parseListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
		StorageBackend:      StorageBackend(getEnvOrDefault("STORAGE_BACKEND", string(StorageBackendHTTP))),
		AzureStorageAccount: os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureStorageKey:     os.Getenv("AZURE_STORAGE_KEY"),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be > 0 (got %d)", cfg.MaxUploadSize)
	}
	if cfg.MinTextLength < 1 {
		return nil, fmt.Errorf("MIN_TEXT_LENGTH must be >= 1 (got %d)", cfg.MinTextLength)
	}
	if cfg.RequestTimeout <= 0 || cfg.OCRTimeout <= 0 || cfg.ImageFetchTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, ocr=%s, fetch=%s)",
			cfg.RequestTimeout, cfg.OCRTimeout, cfg.ImageFetchTimeout)
	}
	switch cfg.StorageBackend {
	case StorageBackendHTTP:
	case StorageBackendAzure:
		if cfg.AzureStorageAccount == "" || cfg.AzureStorageKey == "" {
			return nil, fmt.Errorf("azure storage backend requires AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY")
		}
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND: %q", cfg.StorageBackend)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
