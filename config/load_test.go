package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://www.4byte.directory", cfg.SignatureAPI)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.LookupTimeout)
	assert.Equal(t, 4, cfg.MaxIterations)
	assert.NotEmpty(t, cfg.CachePath)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rpc:
  "1": https://file.example/mainnet
  "10": https://file.example/optimism
log_level: info
lookup_timeout: 2s
cache_path: /tmp/humanizer-cache.json
`), 0o644))

	t.Setenv("HUMANIZER_LOG_LEVEL", "debug")
	t.Setenv("HUMANIZER_RPC_1", "https://env.example/mainnet")
	t.Setenv("HUMANIZER_RPC_NOTANID", "https://ignored.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.LookupTimeout)
	assert.Equal(t, "/tmp/humanizer-cache.json", cfg.CachePath)

	rpcs, err := cfg.RPCs()
	require.NoError(t, err)
	assert.Equal(t, map[uint64]string{
		1:  "https://env.example/mainnet",
		10: "https://file.example/optimism",
	}, rpcs)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rpc: [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestRPCsRejectsBadKeys(t *testing.T) {
	cfg := &Config{RPC: map[string]string{"mainnet": "https://x"}}
	_, err := cfg.RPCs()
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(`
HUMANIZER_LOG_LEVEL=error
HUMANIZER_SIGNATURE_API=https://sigs.example
HUMANIZER_RPC_5=https://dotenv.example/goerli
`), 0o644))
	t.Setenv("HUMANIZER_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://sigs.example", cfg.SignatureAPI)
	assert.Equal(t, "https://dotenv.example/goerli", cfg.RPC["5"])
}
