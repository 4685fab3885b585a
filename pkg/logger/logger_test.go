package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcd386/WSM-File-System/pkg/logger"
)

func TestLogToWriter(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	log, err := logger.New().ToWriter(buff).Make()
	require.NoError(t, err)

	require.Equal(t, 0, buff.Len())
	log.Info().Msg("Test")
	require.Contains(t, buff.String(), "Test")
}

func TestLogLevelFilter(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	log, err := logger.New().ToWriter(buff).Level("warn").Make()
	require.NoError(t, err)

	log.Info().Msg("filtered")
	require.Equal(t, 0, buff.Len())
	log.Warn().Msg("kept")
	require.Contains(t, buff.String(), "kept")
}

func TestLogToPath(t *testing.T) {
	path := t.TempDir() + "/wsmfs.log"
	log, err := logger.New().ToPath(path).Make()
	require.NoError(t, err)

	log.Info().Msg("persisted")
}
