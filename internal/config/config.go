package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	coretypes "github.com/projecteru2/core/types"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every config key looked up in the environment,
// e.g. UUIDSTAMP_FILE_MODE or UUIDSTAMP_LOG_LEVEL.
const EnvPrefix = "UUIDSTAMP"

var envKeyReplacer = strings.NewReplacer(".", "_")

// Config holds global uuidstamp configuration.
type Config struct {
	// FileMode is the octal permission applied when the output file is created.
	// An existing file keeps its permission.
	// Env: UUIDSTAMP_FILE_MODE. Default: "0644".
	FileMode string `json:"file_mode" mapstructure:"file_mode"`
	// Log configuration, uses eru core's ServerLogConfig.
	// Logging is only enabled when Filename is set; stdout carries the stamp lines.
	Log coretypes.ServerLogConfig `json:"log" mapstructure:"log"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		FileMode: "0644",
		Log: coretypes.ServerLogConfig{
			Level: "error",
		},
	}
}

// Load builds a Config from defaults, an optional config file, the
// environment and any flags already bound to v.
// A non-empty cfgFile must exist and parse.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	conf := DefaultConfig()

	// AutomaticEnv only resolves keys viper already knows about.
	v.SetDefault("file_mode", conf.FileMode)
	v.SetDefault("log.level", conf.Log.Level)
	v.SetDefault("log.filename", conf.Log.Filename)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks values that cannot be caught by unmarshalling.
func (c *Config) Validate() error {
	if _, err := c.Perm(); err != nil {
		return err
	}
	return nil
}

// Perm parses FileMode as an octal permission.
func (c *Config) Perm() (os.FileMode, error) {
	n, err := strconv.ParseUint(c.FileMode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file_mode %q: %w", c.FileMode, err)
	}
	if n&^uint64(os.ModePerm) != 0 {
		return 0, fmt.Errorf("invalid file_mode %q: only permission bits are allowed", c.FileMode)
	}
	return os.FileMode(n), nil
}
