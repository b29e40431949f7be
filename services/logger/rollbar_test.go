package logsvc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/beautyschool/calculator/core"
)

func newObservedLogger(t *testing.T) (*RollbarLogger, *observer.ObservedLogs) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	logger := NewRollbarLogger(zap.New(obsCore).Sugar(), core.NewTestConfig())
	logger.Enable(false)
	return logger, logs
}

func TestRollbarLogger_levels(t *testing.T) {
	logger, logs := newObservedLogger(t)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	for i, lvl := range []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel} {
		assert.Equal(t, lvl, entries[i].Level)
		assert.Equal(t, lvl.String(), entries[i].Message)
	}
}

func TestRollbarLogger_fields(t *testing.T) {
	logger, logs := newObservedLogger(t)

	err := errors.Wrap(errors.New("connection refused"), "getting settings")
	logger.Error(
		"Internal Server Error",
		err,
		core.RequestInfo{ID: "req-1", Method: "POST", Path: "/v1/calculate/fafsa"},
		map[string]interface{}{"course": "cosmetology"},
	)

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	for k, v := range map[string]interface{}{
		"error":      "getting settings: connection refused",
		"request_id": "req-1",
		"method":     "POST",
		"path":       "/v1/calculate/fafsa",
		"course":     "cosmetology",
	} {
		assert.Equal(t, v, fields[k], k)
	}
	assert.NotContains(t, fields, "ip")
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger, _ := newObservedLogger(t)
	err := errors.New("boom")

	rbArgs, _ := logger.prepare("msg", []interface{}{err, core.RequestInfo{ID: "req-1", IP: "10.0.0.1"}})
	assert.Equal(t, []interface{}{
		"msg",
		err,
		map[string]interface{}{"request_id": "req-1", "ip": "10.0.0.1"},
	}, rbArgs)

	rbArgs, fields := logger.prepare("msg", nil)
	assert.Equal(t, []interface{}{"msg"}, rbArgs)
	assert.Empty(t, fields)
}
