package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	quiet, err := New(false)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, quiet.Core().Enabled(zapcore.WarnLevel))

	loud, err := New(true)
	require.NoError(t, err)
	assert.True(t, loud.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, loud.Core().Enabled(zapcore.DebugLevel))
}

func TestNewAtLevel_Debug(t *testing.T) {
	l, err := NewAtLevel(zapcore.DebugLevel)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
