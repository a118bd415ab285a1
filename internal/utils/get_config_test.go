package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DB_DRIVER: sqlite\nJWT_SECRET: from-file\nJWT_TTL_MINUTES: 15\n"), 0o600))
	t.Setenv("JWT_SECRET", "from-env")

	LoadConfigFile(path)
	t.Cleanup(func() { config = defaultConfig() })

	assert.Equal(t, "sqlite", GetConfig("DB_DRIVER"))
	assert.Equal(t, "from-env", GetConfig("JWT_SECRET"))
	assert.Equal(t, 15, GetConfigInt("JWT_TTL_MINUTES", 0))
	assert.Equal(t, "8000", GetConfig("APP_PORT"))
	assert.Equal(t, "", GetConfig("UNKNOWN"))
}

func TestValidatorCustomTags(t *testing.T) {
	InitValidator()

	type sample struct {
		Username string `validate:"username"`
		Slug     string `validate:"slug"`
		Color    string `validate:"hexcolor"`
	}

	assert.NoError(t, Validate.Struct(sample{Username: "chef.anna+1", Slug: "break-fast_1", Color: "#E26C2D"}))
	assert.Error(t, Validate.Struct(sample{Username: "bad name", Slug: "ok", Color: "#fff"}))
	assert.Error(t, Validate.Struct(sample{Username: "ok", Slug: "no spaces", Color: "#fff"}))
	assert.Error(t, Validate.Struct(sample{Username: "ok", Slug: "ok", Color: "orange"}))
}
