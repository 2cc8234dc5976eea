package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	want := Config{
		WPM:                   450,
		ParagraphPauseSeconds: 2.5,
		Theme:                 "light",
		LogLevel:              "debug",
	}
	require.NoError(t, Save(dir, want))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadClampsOutOfRangeValues(t *testing.T) {
	dir := t.TempDir()
	toml := "wpm = 9000\nparagraph_pause_seconds = 60.0\ntheme = \"sepia\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(toml), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.WPM)
	assert.Equal(t, 5.0, cfg.ParagraphPauseSeconds)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("wpm = ["), 0644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Equal(t, Default(), cfg, "malformed config falls back to defaults")
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "below minimums",
			in:   Config{WPM: 10, ParagraphPauseSeconds: -1, Theme: ""},
			want: Config{WPM: 100, ParagraphPauseSeconds: 0, Theme: "dark"},
		},
		{
			name: "above maximums",
			in:   Config{WPM: 5000, ParagraphPauseSeconds: 9, Theme: "light"},
			want: Config{WPM: 1000, ParagraphPauseSeconds: 5, Theme: "light"},
		},
		{
			name: "in range untouched",
			in:   Config{WPM: 300, ParagraphPauseSeconds: 1, Theme: "dark", LogLevel: "warn"},
			want: Config{WPM: 300, ParagraphPauseSeconds: 1, Theme: "dark", LogLevel: "warn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestDirOverride(t *testing.T) {
	t.Setenv("BLINK_CONFIG_DIR", "/custom/path")
	assert.Equal(t, "/custom/path", Dir())
}
