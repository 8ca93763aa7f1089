package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Config is the server's externally supplied configuration. The serving
// core treats every field as a validated input; nothing here is read
// from ambient process state.
type Config struct {
	ListenAddr string `json:"listen_addr"`
	Port       int    `json:"port"`
	Root       string `json:"root"`
	CORSOrigin string `json:"cors_origin"`

	ReadTimeoutSeconds  int `json:"read_timeout_seconds"`
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`

	// LogDB is the path of the sqlite access log. Empty disables
	// persistence; requests are still logged to stderr.
	LogDB    string `json:"log_db"`
	LogLevel string `json:"log_level"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		ListenAddr:          DefaultListenAddr,
		Port:                DefaultPort,
		Root:                DefaultRoot,
		CORSOrigin:          DefaultCORSOrigin,
		ReadTimeoutSeconds:  DefaultReadTimeout,
		WriteTimeoutSeconds: DefaultWriteTimeout,
		LogLevel:            DefaultLogLevel,
	}
}

// Load reads a TOML config file and merges it over the defaults; an
// empty path just returns the defaults. Load never validates: callers
// apply their overrides (flags) first and then call Validate on the
// final value.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to open configuration file")
	}
	defer file.Close()

	decoder := toml.NewDecoder(file).SetTagName("json")
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to decode TOML config")
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New(fmt.Sprintf("invalid port %d", c.Port))
	}
	if c.Root == "" {
		return errors.New("root directory must be set")
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		return errors.Wrapf(err, "root directory %s is not usable", c.Root)
	}
	if !info.IsDir() {
		return errors.New(fmt.Sprintf("root %s is not a directory", c.Root))
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ListenAddr, c.Port)
}
