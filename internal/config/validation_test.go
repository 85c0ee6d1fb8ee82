package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateTimeout(t *testing.T) {
	assert.NoError(t, ValidateTimeout(time.Minute, "read"))
	assert.ErrorContains(t, ValidateTimeout(0, "read"), "must be positive")
	assert.ErrorContains(t, ValidateTimeout(time.Hour, "read"), "too large")
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://api.groq.com/openai/v1", "provider"))
	assert.NoError(t, ValidateURL("http://localhost:9000", "provider"))
	assert.ErrorContains(t, ValidateURL("", "provider"), "is required")
	assert.ErrorContains(t, ValidateURL("api.groq.com", "provider"), "must start with")
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort("8080", "server"))
	assert.Error(t, ValidatePort("", "server"))
	assert.Error(t, ValidatePort("0", "server"))
	assert.Error(t, ValidatePort("eighty", "server"))
	assert.Error(t, ValidatePort("65536", "server"))
}
