package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/dine/backend/internal/config"
)

// resolve runs the CLI with args and returns the configuration the action saw.
func resolve(t *testing.T, args ...string) config.Config {
	t.Helper()

	var got config.Config
	capture := func(c *cli.Context) error {
		got = loadConfig(c)
		return nil
	}

	require.NoError(t, newCLI(capture, capture).Run(append([]string{"dine"}, args...)))
	return got
}

// unsetenv removes keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetenv(t, "PORT", "MONGO_URI", "PROFILE", "DB_CONNECT_TIMEOUT", "BODY_LIMIT")

	cfg := resolve(t)

	assert.Equal(t, config.ProfileStandard, cfg.Profile)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017/dinedb", cfg.MongoURI)
	assert.Equal(t, config.DefaultConnectTimeout, cfg.ConnectTimeout)
	assert.Equal(t, int64(config.DefaultBodyLimit), cfg.BodyLimit)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_PortFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "3000")

	assert.Equal(t, "3000", resolve(t).Port)
	assert.Equal(t, "3000", resolve(t, "serve").Port)
}

func TestLoadConfig_MongoURIFromEnvironment(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db.internal:27017/dinedb")

	assert.Equal(t, "mongodb://db.internal:27017/dinedb", resolve(t).MongoURI)
}

func TestLoadConfig_ClassicProfile(t *testing.T) {
	unsetenv(t, "PORT")
	t.Setenv("PROFILE", "classic")

	cfg := resolve(t)

	assert.Equal(t, config.ProfileClassic, cfg.Profile)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Profile.ServesRoot())
}

func TestLoadConfig_FlagsOverrideEnvironment(t *testing.T) {
	unsetenv(t, "DB_CONNECT_TIMEOUT")
	t.Setenv("PORT", "3000")

	cfg := resolve(t, "--port", "4000", "--db-connect-timeout", "2s", "migrate")

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.ConnectTimeout)
}
