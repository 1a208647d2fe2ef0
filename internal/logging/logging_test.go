package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Debug("hidden")
	log.Info("[Update] index refreshed", zap.String("folder", "Neurology"))
	require.NoError(t, log.Sync())

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "INFO")
	require.Contains(t, out, "[Update] index refreshed")
	require.Contains(t, out, `{"folder": "Neurology"}`)
}

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)
	log.Debug("scanning")
	require.NoError(t, log.Sync())
	require.Contains(t, buf.String(), "DEBUG\tscanning")
}
