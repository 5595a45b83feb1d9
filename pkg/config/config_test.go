package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Set test environment variables
	os.Setenv("SERVER_PORT", "8080")
	os.Setenv("DB_HOST", "localhost")
	os.Setenv("DB_PORT", "5432")
	os.Setenv("DB_USER", "testuser")
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("DB_NAME", "testdb")
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("DEFAULT_AUTHOR", "Test Author")
	os.Setenv("MAX_UPLOAD_BYTES", "1048576")

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Assertions
	assert.NotNil(t, cfg)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "Test Author", cfg.DefaultAuthor)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)

	// Cleanup
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_HOST")
	os.Unsetenv("DB_PORT")
	os.Unsetenv("DB_USER")
	os.Unsetenv("DB_PASSWORD")
	os.Unsetenv("DB_NAME")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("DEFAULT_AUTHOR")
	os.Unsetenv("MAX_UPLOAD_BYTES")
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Clear environment variables
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_HOST")
	os.Unsetenv("DB_PORT")
	os.Unsetenv("MAX_UPLOAD_BYTES")

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Assertions - check that defaults are used
	assert.NotNil(t, cfg)
	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, "inkpress", cfg.DBName)
	assert.Equal(t, "web/blogs.json", cfg.BlogsFile)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadBytes)
}

func TestLoadConfig_InvalidInt(t *testing.T) {
	os.Setenv("MAX_UPLOAD_BYTES", "not-a-number")
	defer os.Unsetenv("MAX_UPLOAD_BYTES")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadBytes)
}
