package gpucmd

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerDefaultsToNop(t *testing.T) {
	log := Logger()
	assert.NotNil(t, log)
	assert.NotPanics(t, func() {
		log.Info("discarded", "key", "value")
	})
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("captured", "backend", "deferred")
	assert.Contains(t, buf.String(), "captured")
	assert.Contains(t, buf.String(), "deferred")

	// nil restores the nop logger.
	SetLogger(nil)
	buf.Reset()
	Logger().Info("discarded")
	assert.Empty(t, buf.String())
}
