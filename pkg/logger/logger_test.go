package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/book-circle/pkg/logger"
)

func TestNewLogger_Sink(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "lending.log")

	log, err := logger.NewLogger(logger.Log{LogLevel: zapcore.InfoLevel, Sink: path}, "test")
	require.NoError(t, err)
	log.Info("hello", zap.String("k", "v"))
	log.Debug("dropped")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"hello"`)
	require.Contains(t, string(data), `"logger":"test"`)
	require.NotContains(t, string(data), "dropped")
}

func TestNewLogger_BadSink(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "missing", "lending.log")

	log, err := logger.NewLogger(logger.Log{Sink: path}, "test")
	require.Error(t, err)
	require.Nil(t, log)
}
