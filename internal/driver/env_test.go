package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelDefaultsToInfo(t *testing.T) {
	t.Setenv("N2T_LOG_LEVEL", "")
	assert.Equal(t, "info", LogLevel())

	t.Setenv("N2T_LOG_LEVEL", "bogus")
	assert.Equal(t, "info", LogLevel())
}

func TestLogLevelRecognizesQuietAndDebug(t *testing.T) {
	t.Setenv("N2T_LOG_LEVEL", "quiet")
	assert.Equal(t, "quiet", LogLevel())

	t.Setenv("N2T_LOG_LEVEL", "DEBUG")
	assert.Equal(t, "debug", LogLevel())
}

func TestTraceEnabledRecognizesTruthyValues(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes"} {
		t.Setenv("N2T_TRACE", v)
		assert.True(t, TraceEnabled(), "expected %q to enable tracing", v)
	}
}

func TestTraceEnabledDefaultsFalse(t *testing.T) {
	t.Setenv("N2T_TRACE", "")
	assert.False(t, TraceEnabled())

	t.Setenv("N2T_TRACE", "0")
	assert.False(t, TraceEnabled())
}
