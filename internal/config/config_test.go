package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable Load reads so the host environment cannot
// leak into a test, and points ENV_FILE at an empty file.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT", "SERVER_METRICS_ENABLED", "SERVER_ALLOWED_ORIGINS",
		"GRAPH_URI", "GRAPH_DATABASE", "GRAPH_USERNAME", "GRAPH_PASSWORD", "GRAPH_MAX_CONNECTIONS",
		"DATA_SOURCE", "DATA_RELATIONS_PATH", "DATA_CHARACTERS_PATH", "DISPLAY_SEED",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_COLOR", "LOG_INCLUDE_CALLER",
	} {
		t.Setenv(key, "")
	}
	empty := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	t.Setenv("ENV_FILE", empty)
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.HTTP.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins())
	assert.Equal(t, SourceCSV, cfg.Data.Source)
	assert.Equal(t, "data/relation_message.csv", cfg.Data.RelationsPath)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
}

func TestLoad_FileThenEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: 9090
  readTimeout: 3s
  allowedOrigins: "http://a.test, http://b.test"
data:
  relationsPath: /srv/rels.csv
  displaySeed: 5
logging:
  format: json
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "8081")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port, "env overrides file")
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.AllowedOrigins())
	assert.Equal(t, "/srv/rels.csv", cfg.Data.RelationsPath)
	assert.Equal(t, "data/message.csv", cfg.Data.CharactersPath, "unset keys keep defaults")
	assert.Equal(t, int64(5), cfg.Data.DisplaySeed)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvFile(t *testing.T) {
	isolate(t)
	os.Unsetenv("LOG_LEVEL")
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("ENV_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"SERVER_PORT": "abc"}},
		{"port range", map[string]string{"SERVER_PORT": "70000"}},
		{"bad timeout", map[string]string{"SERVER_IDLE_TIMEOUT": "soon"}},
		{"unknown source", map[string]string{"DATA_SOURCE": "s3"}},
		{"neo4j without uri", map[string]string{"DATA_SOURCE": "neo4j"}},
		{"missing config file", map[string]string{"CONFIG_FILE": "/nonexistent/config.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_Neo4jSource(t *testing.T) {
	isolate(t)
	t.Setenv("DATA_SOURCE", "NEO4J")
	t.Setenv("GRAPH_URI", "bolt://localhost:7687")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SourceNeo4j, cfg.Data.Source)
	assert.Equal(t, "bolt://localhost:7687", cfg.Graph.URI)
}
