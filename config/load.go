package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const rpcEnvPrefix = "HUMANIZER_RPC_"

// Config holds the settings of the humanizer cli.
type Config struct {
	// RPC maps a decimal chain id to a node url.
	RPC           map[string]string `mapstructure:"rpc" yaml:"rpc"`
	SignatureAPI  string            `mapstructure:"signature_api" yaml:"signature_api"`
	CachePath     string            `mapstructure:"cache_path" yaml:"cache_path"`
	AddressBook   string            `mapstructure:"address_book" yaml:"address_book"`
	NetworksDir   string            `mapstructure:"networks_dir" yaml:"networks_dir"`
	LogLevel      string            `mapstructure:"log_level" yaml:"log_level"`
	LookupTimeout time.Duration     `mapstructure:"lookup_timeout" yaml:"lookup_timeout"`
	MaxIterations int               `mapstructure:"max_iterations" yaml:"max_iterations"`
}

// RPCs returns the configured node urls keyed by chain id.
func (c *Config) RPCs() (map[uint64]string, error) {
	res := make(map[uint64]string, len(c.RPC))
	for k, url := range c.RPC {
		id, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("rpc key %q is not a chain id: %w", k, err)
		}
		res[id] = url
	}
	return res, nil
}

// DefaultDir is ~/.humanizer.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".humanizer"
	}
	return filepath.Join(home, ".humanizer")
}

// DefaultPath is the config file read when no --config is given.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

var (
	// envBindings maps a config key to the env vars that can provide it.
	// The first one set wins.
	envBindings = map[string][]string{
		"signature_api":  {"HUMANIZER_SIGNATURE_API"},
		"cache_path":     {"HUMANIZER_CACHE_PATH"},
		"address_book":   {"HUMANIZER_ADDRESS_BOOK"},
		"networks_dir":   {"HUMANIZER_NETWORKS_DIR"},
		"log_level":      {"HUMANIZER_LOG_LEVEL"},
		"lookup_timeout": {"HUMANIZER_LOOKUP_TIMEOUT"},
		"max_iterations": {"HUMANIZER_MAX_ITERATIONS"},
	}

	defaults = map[string]any{
		"signature_api":  "https://www.4byte.directory",
		"log_level":      "warn",
		"lookup_timeout": "5s",
		"max_iterations": 4,
	}
)

// Load reads the config file at filePath, falling back to defaults and env
// vars when it does not exist. Env vars override values from the file. A
// .env file next to the config provides env vars the process does not set.
func Load(filePath string) (*Config, error) {
	dotenv, err := readDotEnv(filepath.Join(filepath.Dir(filePath), ".env"))
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(filePath)

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", filePath, err)
		}
	}
	for key, envs := range envBindings {
		for _, env := range envs {
			if value, found := dotenv[env]; found {
				v.Set(key, value)
				break
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.RPC == nil {
		cfg.RPC = map[string]string{}
	}
	environ := []string{}
	for k, value := range dotenv {
		environ = append(environ, k+"="+value)
	}
	for k, url := range rpcEnvs(append(environ, os.Environ()...)) {
		cfg.RPC[k] = url
	}
	if cfg.NetworksDir == "" {
		cfg.NetworksDir = filepath.Join(DefaultDir(), "networks")
	}
	if cfg.CachePath == "" {
		cfg.CachePath = filepath.Join(DefaultDir(), "cache.json")
	}
	return cfg, nil
}

// readDotEnv returns the variables of a .env file that are not set in the
// process env. A missing file yields none.
func readDotEnv(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	for k := range vars {
		if _, set := os.LookupEnv(k); set {
			delete(vars, k)
		}
	}
	return vars, nil
}

// rpcEnvs collects HUMANIZER_RPC_<CHAINID> variables.
func rpcEnvs(environ []string) map[string]string {
	res := map[string]string{}
	for _, kv := range environ {
		key, value, found := strings.Cut(kv, "=")
		if !found || !strings.HasPrefix(key, rpcEnvPrefix) || strings.TrimSpace(value) == "" {
			continue
		}
		id := strings.TrimPrefix(key, rpcEnvPrefix)
		if _, err := strconv.ParseUint(id, 10, 64); err != nil {
			continue
		}
		res[id] = strings.TrimSpace(value)
	}
	return res
}

// bindEnvs binds the environment variables to the viper instance.
func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(envs, 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}
