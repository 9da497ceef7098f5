package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WARN)
	l.Infof("hidden %d", 1)
	l.Warnf("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 2")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, TRACE).With("world").With("stream")
	l.Debugf("loaded %d columns", 9)
	assert.Contains(t, buf.String(), "[DEBUG] world.stream: loaded 9 columns")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("Debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Errorf("nothing") })
	assert.False(t, Discard().Enabled(ERROR))
}
