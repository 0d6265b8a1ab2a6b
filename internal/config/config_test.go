package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/stickprofile/internal/router"
	"github.com/soar/stickprofile/internal/store"
)

func flags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(flags(t))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "stick_profiles.yaml", cfg.ProfilesFile)
	assert.Equal(t, 64, cfg.Graph.Resolution)
	assert.Equal(t, store.DefaultTypes, cfg.Types())
	assert.Equal(t, router.DefaultConfig, cfg.Router())
	assert.Equal(t, logrus.InfoLevel, cfg.Level())
}

func TestLoadFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stickprofile.yaml")
	content := `listen: ":9000"
log_level: debug
profile_types: [Normal, precision, race]
graph:
  resolution: 128
input:
  repeat_delay_frames: 10
  deadzone_step: 0.02
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(flags(t, "--config", path, "--listen", ":7000", "-p", "/tmp/p.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Listen, "flag overrides file")
	assert.Equal(t, "/tmp/p.yaml", cfg.ProfilesFile)
	assert.Equal(t, logrus.DebugLevel, cfg.Level())
	assert.Equal(t, 128, cfg.Graph.Resolution)
	assert.Equal(t, []store.ProfileType{store.Normal, store.Precision, "race"}, cfg.Types())
	assert.Equal(t, 10, cfg.Router().RepeatDelay)
	assert.Equal(t, 4, cfg.Router().RepeatInterval)
	assert.Equal(t, 0.02, cfg.Router().DeadzoneStep)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero_resolution", "graph:\n  resolution: 0\n"},
		{"negative_repeat", "input:\n  repeat_interval_frames: -1\n"},
		{"zero_step", "input:\n  exponent_step: 0\n"},
		{"no_types", "profile_types: []\n"},
		{"bad_level", "log_level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(flags(t, "--config", path))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(flags(t, "--config", filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Error(t, err)
}
