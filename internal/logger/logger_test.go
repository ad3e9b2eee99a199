package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() *observer.ObservedLogs {
	core, logs := observer.New(zap.DebugLevel)
	SetForTesting(zap.New(core).Sugar())
	return logs
}

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, log)
}

func TestInfo(t *testing.T) {
	logs := newObserved()

	Info("availability computed", "center_id", 3, "boxes", 12)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "availability computed", entries[0].Message)
	assert.Equal(t, int64(3), entries[0].ContextMap()["center_id"])
}

func TestInfof(t *testing.T) {
	logs := newObserved()

	Infof("server starting on port %s", "8080")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "server starting on port 8080", entries[0].Message)
}

func TestError(t *testing.T) {
	logs := newObserved()

	Error("booking failed", "box_id", 7)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
}

func TestDebug(t *testing.T) {
	logs := newObserved()

	Debug("query", "sql", "SELECT 1")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
}
