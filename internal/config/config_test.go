package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), st.Mode().Perm())

	again, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

func TestLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bus: \"1\"\nstrict: true\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "1", cfg.Bus)
	require.True(t, cfg.Strict)
	require.Equal(t, uint16(0x3C), cfg.Address)
	require.Equal(t, "400kHz", cfg.BusSpeed)
	require.Equal(t, SourceText, cfg.Source.Kind)
	require.NotEmpty(t, cfg.Source.Text)
}

func TestLoadHexAddress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("address: 0x3d\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint16(0x3D), cfg.Address)
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "bus: [\n"},
		{"bad speed", "bus_speed: fast\n"},
		{"bad schedule", "refresh: every minute\n"},
		{"unknown source", "source:\n  kind: video\n"},
		{"frame without path", "source:\n  kind: frame\n"},
		{"image without path", "source:\n  kind: image\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.yaml), 0o600))
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
	require.Error(t, Save("", DefaultConfig()))
	require.Error(t, Save(filepath.Join(t.TempDir(), "c.yaml"), nil))
}

func TestSpeed(t *testing.T) {
	cfg := DefaultConfig()
	f, err := cfg.Speed()
	require.NoError(t, err)
	require.Equal(t, 400*physic.KiloHertz, f)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Source = SourceConfig{Kind: SourceFrame, Path: "/run/frame.bin"}
	cfg.Refresh = "*/5 * * * *"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}
