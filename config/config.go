package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SinkTerminal = "terminal"
	SinkLog      = "log"
	SinkKafka    = "kafka"
)

var (
	ErrAPIURLRequired     = errors.New("STUDENTCTL_API_URL is required")
	ErrKafkaBrokersNeeded = errors.New("STUDENTCTL_KAFKA_BROKERS and STUDENTCTL_KAFKA_TOPIC are required for the kafka sink")
)

type Config struct {
	APIURL       string
	APIToken     string
	Timeout      time.Duration
	Sinks        []string
	KafkaBrokers []string
	KafkaTopic   string
	JournalPath  string
}

// Load reads the environment, after applying envFiles (default ".env") when present.
// Variables already set in the environment win over the files.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		APIURL:       os.Getenv("STUDENTCTL_API_URL"),
		APIToken:     os.Getenv("STUDENTCTL_API_TOKEN"),
		Timeout:      5 * time.Second,
		Sinks:        splitList(os.Getenv("STUDENTCTL_NOTIFY")),
		KafkaBrokers: splitList(os.Getenv("STUDENTCTL_KAFKA_BROKERS")),
		KafkaTopic:   os.Getenv("STUDENTCTL_KAFKA_TOPIC"),
		JournalPath:  os.Getenv("STUDENTCTL_JOURNAL"),
	}

	if v := os.Getenv("STUDENTCTL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("STUDENTCTL_TIMEOUT: invalid duration %q", v)
		}
		cfg.Timeout = d
	}

	if len(cfg.Sinks) == 0 {
		cfg.Sinks = []string{SinkTerminal}
	}

	return cfg, nil
}

// Validate checks what is needed to talk to the backend and build the sinks.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return ErrAPIURLRequired
	}
	for _, s := range c.Sinks {
		switch s {
		case SinkTerminal, SinkLog:
		case SinkKafka:
			if len(c.KafkaBrokers) == 0 || c.KafkaTopic == "" {
				return ErrKafkaBrokersNeeded
			}
		default:
			return fmt.Errorf("STUDENTCTL_NOTIFY: unknown sink %q", s)
		}
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
