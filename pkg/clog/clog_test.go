package clog

import (
	"bytes"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/require"
)

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf)
	h.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	logger := &log.Logger{Handler: h, Level: log.InfoLevel}
	logger.WithFields(log.Fields{"parent_id": 7, "kind": "project"}).Warn("dangling")
	logger.Debug("hidden")

	require.Equal(t, " WARN 2024-05-01 12:30:00 dangling                  kind=project parent_id=7\n", buf.String())
}

func TestSetup(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Setup(&buf, "warn"))
	t.Cleanup(func() { _ = Setup(&bytes.Buffer{}, DefaultLevel) })

	log.Info("not shown")
	log.Warn("shown")

	require.NotContains(t, buf.String(), "not shown")
	require.Contains(t, buf.String(), "shown")

	require.Error(t, Setup(&buf, "loud"))
}
