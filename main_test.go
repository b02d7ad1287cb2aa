package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transport-senegal/api/logger"
)

func TestBootstrap_LoggersUseEnvFile(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=warn\nLOG_DIR="+logDir+"\n"), 0o600))

	for _, key := range []string{"LOG_LEVEL", "LOG_DIR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	bootstrap(envFile)
	t.Cleanup(func() {
		logger.InitLoggersWithOptions(logger.Options{Level: "info", Console: true})
	})

	assert.Equal(t, logrus.WarnLevel, logger.InfoLogger.GetLevel())
	assert.DirExists(t, logDir)
}
