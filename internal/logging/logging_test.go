package logging

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "debug", false)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	l.WithField("chain", "c1").Debug("loaded")
	assert.Contains(t, buf.String(), "chain=c1")
	assert.Contains(t, buf.String(), "loaded")
}

func TestNew_Quiet(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "", true)
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, l.GetLevel())
	l.Info("hidden")
	assert.Empty(t, buf.String())

	l, err = New(&buf, "error", true)
	require.NoError(t, err)
	assert.Equal(t, log.ErrorLevel, l.GetLevel())
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", false)
	assert.ErrorContains(t, err, "invalid log level")
}
