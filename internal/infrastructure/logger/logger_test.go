package logger

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogError(t *testing.T) {
	l, hook := test.NewNullLogger()

	LogError(l, "quote", "Sign", "quote_id=q-1", map[string]string{"step": "render"}, errors.New("boom"))

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "boom", entry.Message)
	assert.Equal(t, "quote", entry.Data["module"])
	assert.Equal(t, "Sign", entry.Data["funcName"])
	assert.Equal(t, "quote_id=q-1", entry.Data["context"])
	assert.NotNil(t, entry.Data["data"])
}

func TestSetLevel(t *testing.T) {
	prev := Get().GetLevel()
	t.Cleanup(func() { Get().SetLevel(prev) })

	SetLevel("debug")
	assert.Equal(t, logrus.DebugLevel, Get().GetLevel())

	SetLevel("not-a-level")
	assert.Equal(t, logrus.DebugLevel, Get().GetLevel())
}
