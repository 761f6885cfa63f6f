package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "square.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[loop]
tick_rate = "5ms"

[logging]
level = "debug"
format = "json"

[journal]
enabled = true
dsn = "postgres://x@y/z"
batch_size = 8

[seed]
path = "data/seed.yaml"
`)
	cfg, err := Load(path, false)
	require.NoError(t, err)
	require.Equal(t, 5*time.Millisecond, cfg.Loop.TickRate)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
	require.True(t, cfg.Journal.Enabled)
	require.Equal(t, 8, cfg.Journal.BatchSize)
	require.Equal(t, "data/seed.yaml", cfg.Seed.Path)

	require.Equal(t, 128, cfg.IPC.QueueSize, "untouched sections keep defaults")
	require.Equal(t, time.Second, cfg.Journal.FlushInterval)
	require.NotZero(t, cfg.Server.StartTime)
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, err := Load(missing, true)
	require.NoError(t, err)
	require.Equal(t, "square", cfg.Server.Name)
	require.Equal(t, time.Millisecond, cfg.Loop.TickRate)
	require.False(t, cfg.Journal.Enabled)

	_, err = Load(missing, false)
	require.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":       "[loop\n",
		"queue size":   "[ipc]\nqueue_size = 0\n",
		"line limit":   "[ipc]\nmax_line_bytes = 1\n",
		"negative":     "[loop]\ntick_rate = \"-1ms\"\n",
		"journal dsn":  "[journal]\nenabled = true\ndsn = \"\"\n",
		"journal size": "[journal]\nenabled = true\nbatch_size = 0\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body), false)
			require.Error(t, err)
		})
	}
}
