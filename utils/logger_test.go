package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithOptions(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		l, err := NewLoggerWithOptions(LogOptions{Level: "debug", Format: format})
		require.NoError(t, err, format)
		l.With("run_id", "test").Debug("[test] %s logger ready", format)
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	_, err := NewLoggerWithOptions(LogOptions{Level: "loud"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse level")
}
