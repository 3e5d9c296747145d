package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	conf, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "0644", conf.FileMode)
	assert.Equal(t, "error", conf.Log.Level)
	assert.Empty(t, conf.Log.Filename)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("UUIDSTAMP_FILE_MODE", "0600")
	t.Setenv("UUIDSTAMP_LOG_LEVEL", "debug")

	conf, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "0600", conf.FileMode)
	assert.Equal(t, "debug", conf.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uuidstamp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("file_mode: \"0640\"\nlog:\n  level: info\n"), 0o600))

	conf, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "0640", conf.FileMode)
	assert.Equal(t, "info", conf.Log.Level)
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uuidstamp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("file_mode: \"0640\"\n"), 0o600))
	t.Setenv("UUIDSTAMP_FILE_MODE", "0600")

	conf, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "0600", conf.FileMode)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_InvalidFileMode(t *testing.T) {
	t.Setenv("UUIDSTAMP_FILE_MODE", "rw-r--r--")
	_, err := Load(viper.New(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file_mode")
}

func TestPerm(t *testing.T) {
	cases := []struct {
		mode    string
		want    os.FileMode
		wantErr bool
	}{
		{mode: "0644", want: 0o644},
		{mode: "600", want: 0o600},
		{mode: "0777", want: 0o777},
		{mode: "1777", wantErr: true},
		{mode: "0968", wantErr: true},
		{mode: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.mode, func(t *testing.T) {
			got, err := (&Config{FileMode: tc.mode}).Perm()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
