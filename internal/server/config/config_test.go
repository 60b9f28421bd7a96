package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8000", c.HTTPAddr)
	assert.Equal(t, "sqlite://todoweb.db", c.DatabaseDSN)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, bcrypt.DefaultCost, c.PasswordHashCost)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, c.AllowedOrigins)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "us-east-1", c.S3Region)
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	withArgs(t)
	t.Setenv("SECRET_KEY", "")

	c, err := LoadConfig(Production)
	require.ErrorIs(t, err, ErrMissingSecretKey)
	assert.Nil(t, c)
}

func TestLoadConfig_TestModeFallsBackToTestSecret(t *testing.T) {
	withArgs(t)
	t.Setenv("SECRET_KEY", "")

	c, err := LoadConfig(Test)
	require.NoError(t, err)
	assert.Equal(t, TestSecretKey, c.SecretKey)
}

func TestLoadConfig_ExplicitSecretWinsInBothModes(t *testing.T) {
	withArgs(t, "-s", "from-flag")
	t.Setenv("SECRET_KEY", "from-env")

	for _, mode := range []Mode{Production, Test} {
		c, err := LoadConfig(mode)
		require.NoError(t, err)
		assert.Equal(t, "from-flag", c.SecretKey)
	}
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	withArgs(t)
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("DATABASE_URL", "postgres://db/todoweb")
	t.Setenv("ALLOWED_ORIGINS", "https://todo.example")

	c, err := LoadConfig(Production)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, "postgres://db/todoweb", c.DatabaseDSN)
	assert.Equal(t, []string{"https://todo.example"}, c.AllowedOrigins)
}

func TestLoadConfig_ToolModeAllowsMissingSecret(t *testing.T) {
	withArgs(t)
	t.Setenv("SECRET_KEY", "")

	c, err := LoadConfig(Tool)
	require.NoError(t, err)
	assert.Empty(t, c.SecretKey)
}

func TestCommandArgs(t *testing.T) {
	args := []string{"-b", "assets", "-c", "cfg.json", "sync", "./dist", "-e=http://127.0.0.1:9000", "static"}
	assert.Equal(t, []string{"sync", "./dist", "static"}, CommandArgs(args))
}
