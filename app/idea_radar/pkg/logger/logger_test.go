package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Level:   logrus.WarnLevel,
		Message: "hello",
		Data:    logrus.Fields{"source": "r/startups", "context": "fetch"},
	}

	out, err := (&CustomFormatter{}).Format(entry)
	require.NoError(t, err)

	line := string(out)
	assert.Contains(t, line, "[WARN]")
	assert.True(t, strings.HasSuffix(line, "hello context=fetch source=r/startups\n"), line)
}

func TestInitLoggerAppends(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	path := filepath.Join(t.TempDir(), "logs", "diag.log")
	require.NoError(t, InitLogger("debug", path))
	Failure("first", errors.New("boom"))

	require.NoError(t, InitLogger("debug", path))
	Failure("second", errors.New("bang"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "boom context=first")
	assert.Contains(t, content, "bang context=second")
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
}

func TestInitLoggerBadLevel(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	require.NoError(t, InitLogger("loud", ""))
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}
