package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"STUDENTCTL_API_URL",
	"STUDENTCTL_API_TOKEN",
	"STUDENTCTL_TIMEOUT",
	"STUDENTCTL_NOTIFY",
	"STUDENTCTL_KAFKA_BROKERS",
	"STUDENTCTL_KAFKA_TOPIC",
	"STUDENTCTL_JOURNAL",
}

// clearEnv unsets every variable for the test and restores it afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STUDENTCTL_API_URL", "http://backend:8000")

	cfg, err := Load(missingFile(t))

	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://backend:8000", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, []string{SinkTerminal}, cfg.Sinks)
	assert.Empty(t, cfg.JournalPath)
}

func TestLoad_MissingAPIURLFailsValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("STUDENTCTL_JOURNAL", "/var/lib/studentctl/batches.jsonl")

	cfg, err := Load(missingFile(t))

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/studentctl/batches.jsonl", cfg.JournalPath)
	assert.ErrorIs(t, cfg.Validate(), ErrAPIURLRequired)
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "studentctl.env")
	content := "STUDENTCTL_API_URL=http://from-file\n" +
		"STUDENTCTL_TIMEOUT=750ms\n" +
		"STUDENTCTL_NOTIFY=terminal, kafka\n" +
		"STUDENTCTL_KAFKA_BROKERS=k1:9092,k2:9092\n" +
		"STUDENTCTL_KAFKA_TOPIC=notifications\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("STUDENTCTL_API_TOKEN", "tok")

	cfg, err := Load(path)

	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://from-file", cfg.APIURL)
	assert.Equal(t, "tok", cfg.APIToken)
	assert.Equal(t, 750*time.Millisecond, cfg.Timeout)
	assert.Equal(t, []string{SinkTerminal, SinkKafka}, cfg.Sinks)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "notifications", cfg.KafkaTopic)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STUDENTCTL_API_URL=http://file\n"), 0600))
	t.Setenv("STUDENTCTL_API_URL", "http://env")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "http://env", cfg.APIURL)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("STUDENTCTL_API_URL", "http://backend")
	t.Setenv("STUDENTCTL_TIMEOUT", "soon")

	_, err := Load(missingFile(t))

	assert.ErrorContains(t, err, "STUDENTCTL_TIMEOUT")
}

func TestValidate_Sinks(t *testing.T) {
	base := Config{APIURL: "http://backend"}

	kafkaMissing := base
	kafkaMissing.Sinks = []string{SinkKafka}
	assert.ErrorIs(t, kafkaMissing.Validate(), ErrKafkaBrokersNeeded)

	unknown := base
	unknown.Sinks = []string{"popup"}
	assert.ErrorContains(t, unknown.Validate(), "popup")

	ok := base
	ok.Sinks = []string{SinkLog, SinkTerminal}
	assert.NoError(t, ok.Validate())
}
