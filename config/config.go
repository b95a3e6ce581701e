package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Geocoding providers.
const (
	ProviderBing   = "bing"
	ProviderGoogle = "google"
)

// Policies for localities the geocoding service cannot match.
const (
	PolicyContinue = "continue"
	PolicyAbort    = "abort"
)

const defaultSources = "../01_SOURCE/zomato_raw_data_1.csv,../01_SOURCE/zomato_raw_data_2.csv," +
	"../01_SOURCE/zomato_raw_data_3.csv,../01_SOURCE/zomato_raw_data_4.csv,../01_SOURCE/zomato_raw_data_5.csv"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	SourceFiles []string
	OutputPath  string

	GeocoderProvider string
	BingAPIKey       string
	GoogleAPIKey     string
	GeocodeTimeout   time.Duration
	GeocodeRPS       float64
	AddressSuffix    string
	NotFoundPolicy   string

	IDPrefix string
	IDOffset int

	LogLevel  string
	LogFormat string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		SourceFiles: splitList(getEnv("SOURCE_FILES", defaultSources)),
		OutputPath:  getEnv("OUTPUT_PATH", "../03_DATA/zomato_bengaluru_restaurants_data.csv"),

		GeocoderProvider: strings.ToLower(getEnv("GEOCODER_PROVIDER", ProviderBing)),
		BingAPIKey:       getEnv("BING_API_KEY", ""),
		GoogleAPIKey:     getEnv("GOOGLE_API_KEY", ""),
		GeocodeTimeout:   getEnvDuration("GEOCODE_TIMEOUT", 5*time.Second),
		GeocodeRPS:       getEnvFloat("GEOCODE_RPS", 5),
		AddressSuffix:    getEnv("ADDRESS_SUFFIX", "Bangalore, Karnataka, India"),
		NotFoundPolicy:   strings.ToLower(getEnv("GEOCODE_NOT_FOUND_POLICY", PolicyContinue)),

		IDPrefix: getEnv("ID_PREFIX", "ZM"),
		IDOffset: getEnvInt("ID_OFFSET", 1000),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
}

// Validate checks the settings a full run depends on.
func (c *Config) Validate() error {
	if len(c.SourceFiles) == 0 {
		return fmt.Errorf("config: no source files configured")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("config: output path is empty")
	}
	switch c.NotFoundPolicy {
	case PolicyContinue, PolicyAbort:
	default:
		return fmt.Errorf("config: unknown not-found policy %q", c.NotFoundPolicy)
	}
	switch c.GeocoderProvider {
	case ProviderBing:
		if c.BingAPIKey == "" {
			return fmt.Errorf("config: BING_API_KEY is required for provider %q", c.GeocoderProvider)
		}
	case ProviderGoogle:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("config: GOOGLE_API_KEY is required for provider %q", c.GeocoderProvider)
		}
	default:
		return fmt.Errorf("config: unknown geocoder provider %q", c.GeocoderProvider)
	}
	if c.GeocodeRPS <= 0 {
		return fmt.Errorf("config: GEOCODE_RPS must be positive, got %v", c.GeocodeRPS)
	}
	return nil
}

// APIKey returns the credential of the selected geocoding provider.
func (c *Config) APIKey() string {
	if c.GeocoderProvider == ProviderGoogle {
		return c.GoogleAPIKey
	}
	return c.BingAPIKey
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
