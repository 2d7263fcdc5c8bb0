package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Decoder settings.
	SchemaPath    string
	DecoderCmd    string
	DecodeFlags   []int
	DecodeTimeout time.Duration

	// Pipeline settings.
	CorrectDrift     bool
	CorrectTime      bool
	SurfacePressure  float64
	MissingValue     float64
	ValidLevelFlags  []string
	HeadingOffsetDeg float64
	EastNegative     bool

	// Watch-mode settings.
	InboxDir     string
	PollInterval time.Duration

	// Kafka sink settings.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	decodeTimeout, err := envDuration("DECODE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	pollInterval, err := envDuration("POLL_INTERVAL", 10*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	surfacePressure, err := envFloat("SURFACE_PRESSURE", 1070.0)
	if err != nil {
		return nil, err
	}
	missingValue, err := envFloat("MISSING_VALUE", -99.0)
	if err != nil {
		return nil, err
	}
	headingOffset, err := envFloat("HEADING_OFFSET_DEG", 90.0)
	if err != nil {
		return nil, err
	}
	decodeFlags, err := parseDecodeFlags(envOrDefault("DECODE_FLAGS", "2"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SchemaPath:    envOrDefault("SCHEMA_PATH", "configs/hsa_schema.yaml"),
		DecoderCmd:    envOrDefault("DECODER_CMD", "tempdrop-decoder"),
		DecodeFlags:   decodeFlags,
		DecodeTimeout: decodeTimeout,

		CorrectDrift:     envBool("CORRECT_DRIFT", true),
		CorrectTime:      envBool("CORRECT_TIME", false),
		SurfacePressure:  surfacePressure,
		MissingValue:     missingValue,
		ValidLevelFlags:  splitList(envOrDefault("VALID_LEVEL_FLAGS", "manl,sigl")),
		HeadingOffsetDeg: headingOffset,
		EastNegative:     envBool("EAST_NEGATIVE", true),

		InboxDir:     envOrDefault("INBOX_DIR", "data/inbox"),
		PollInterval: pollInterval,

		KafkaEnabled:   envBool("KAFKA_ENABLED", false),
		KafkaBrokers:   splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "decoded-soundings"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.DecoderCmd == "" {
		return nil, errors.New("DECODER_CMD is required")
	}
	if len(cfg.DecodeFlags) == 0 {
		return nil, errors.New("DECODE_FLAGS must name at least one decode variant")
	}
	if len(cfg.ValidLevelFlags) == 0 {
		return nil, errors.New("VALID_LEVEL_FLAGS must name at least one level type")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is empty")
		}
	}

	return cfg, nil
}

// envOrDefault returns the environment value for key, or def when unset.
func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true"
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}

// splitList parses a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDecodeFlags(s string) ([]int, error) {
	var flags []int
	for _, p := range splitList(s) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid DECODE_FLAGS entry %q", p)
		}
		flags = append(flags, n)
	}
	return flags, nil
}
