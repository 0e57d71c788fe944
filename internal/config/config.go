// Package config loads wayfinder settings from defaults, an optional YAML
// file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates a setting outside its allowed range.
var ErrInvalid = errors.New("config: invalid setting")

// Weather configures the OpenWeatherMap client.
type Weather struct {
	APIKey    string        `yaml:"apiKey"`
	Latitude  float64       `yaml:"latitude"`
	Longitude float64       `yaml:"longitude"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTries  int           `yaml:"maxTries"`
}

// Tracing configures span export.
type Tracing struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
	Endpoint string `yaml:"endpoint"`
}

type Config struct {
	Port             int      `yaml:"port"`
	GraphFile        string   `yaml:"graphFile"`
	LogLevel         string   `yaml:"logLevel"`
	LogFormat        string   `yaml:"logFormat"`
	OutdoorBuildings []string `yaml:"outdoorBuildings"`
	NearestK         int      `yaml:"nearestK"`
	CORSOrigins      []string `yaml:"corsOrigins"`
	Weather          Weather  `yaml:"weather"`
	Tracing          Tracing  `yaml:"tracing"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:             8080,
		GraphFile:        "testdata/campus.json",
		LogLevel:         "info",
		LogFormat:        "text",
		OutdoorBuildings: []string{"outside"},
		NearestK:         3,
		CORSOrigins:      []string{"*"},
		Weather: Weather{
			Latitude:  40.4433,
			Longitude: -79.9436,
			Timeout:   2 * time.Second,
			MaxTries:  3,
		},
		Tracing: Tracing{Exporter: "stdout"},
	}
}

// Load reads dotenv files (".env" when none are given; missing files are
// skipped), then the YAML file named by CONFIG_FILE, then environment
// variables.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.mergeEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() {
	c.Port = getEnvAsInt("PORT", c.Port)
	c.GraphFile = getEnv("GRAPH_FILE", c.GraphFile)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.OutdoorBuildings = getEnvAsList("OUTDOOR_BUILDINGS", c.OutdoorBuildings)
	c.NearestK = getEnvAsInt("NEAREST_K", c.NearestK)
	c.CORSOrigins = getEnvAsList("CORS_ORIGINS", c.CORSOrigins)

	c.Weather.APIKey = getEnv("OPENWEATHER_API_KEY", c.Weather.APIKey)
	c.Weather.Latitude = getEnvAsFloat("WEATHER_LAT", c.Weather.Latitude)
	c.Weather.Longitude = getEnvAsFloat("WEATHER_LON", c.Weather.Longitude)
	c.Weather.Timeout = getEnvAsDuration("WEATHER_TIMEOUT", c.Weather.Timeout)
	c.Weather.MaxTries = getEnvAsInt("WEATHER_MAX_TRIES", c.Weather.MaxTries)

	c.Tracing.Enabled = getEnvAsBool("TRACING_ENABLED", c.Tracing.Enabled)
	c.Tracing.Exporter = getEnv("TRACING_EXPORTER", c.Tracing.Exporter)
	c.Tracing.Endpoint = getEnv("OTLP_ENDPOINT", c.Tracing.Endpoint)
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("%w: port %d", ErrInvalid, c.Port)
	case c.GraphFile == "":
		return fmt.Errorf("%w: empty graph file", ErrInvalid)
	case c.NearestK <= 0:
		return fmt.Errorf("%w: nearestK %d", ErrInvalid, c.NearestK)
	case c.Weather.MaxTries <= 0:
		return fmt.Errorf("%w: weather maxTries %d", ErrInvalid, c.Weather.MaxTries)
	case c.Weather.Timeout <= 0:
		return fmt.Errorf("%w: weather timeout %s", ErrInvalid, c.Weather.Timeout)
	case c.Weather.Latitude < -90 || c.Weather.Latitude > 90:
		return fmt.Errorf("%w: weather latitude %g", ErrInvalid, c.Weather.Latitude)
	case c.Weather.Longitude < -180 || c.Weather.Longitude > 180:
		return fmt.Errorf("%w: weather longitude %g", ErrInvalid, c.Weather.Longitude)
	}
	return nil
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string { return ":" + strconv.Itoa(c.Port) }

// getEnv returns the value of key, or def when unset.
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvAsFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

// getEnvAsList splits a comma-separated value, dropping blanks.
func getEnvAsList(key string, def []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
