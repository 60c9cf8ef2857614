package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelAndFormat(t *testing.T) {
	log, closer, err := New(config.LogConfig{Level: "debug", Format: "json"})

	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "loud", Format: "text"})

	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "logs", "qarz.log")

	// Act
	log, closer, err := New(config.LogConfig{Level: "info", Format: "text", File: path})
	require.NoError(t, err)
	log.WithField("member_id", "abc").Info("hello")
	require.NoError(t, closer.Close())

	// Assert
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello")
	assert.Contains(t, string(content), "member_id=abc")
}
