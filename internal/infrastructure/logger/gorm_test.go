package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(t *testing.T, level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	t.Helper()
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func supplierQuery() (string, int64) {
	return "SELECT * FROM supplier_products WHERE tenant_id = $1", 3
}

func TestNewGormLoggerDefaults(t *testing.T) {
	gl, _ := newObservedGormLogger(t, gormlogger.Info)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, 200*time.Millisecond, gl.slowThreshold)
	assert.True(t, gl.ignoreNotFoundErrs)
}

func TestGormLoggerOptions(t *testing.T) {
	gl, _ := newObservedGormLogger(t, gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, 500*time.Millisecond, gl.slowThreshold)
	assert.False(t, gl.ignoreNotFoundErrs)
}

func TestGormLoggerLogMode(t *testing.T) {
	gl, _ := newObservedGormLogger(t, gormlogger.Info)

	clone := gl.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	cloned, ok := clone.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, cloned.logLevel)
}

func TestGormLoggerLeveledMessages(t *testing.T) {
	tests := []struct {
		name     string
		level    gormlogger.LogLevel
		log      func(*GormLogger)
		expected int
	}{
		{
			name:  "info emitted at info level",
			level: gormlogger.Info,
			log: func(gl *GormLogger) {
				gl.Info(context.Background(), "migrated %d rows", 7)
			},
			expected: 1,
		},
		{
			name:  "info suppressed at silent level",
			level: gormlogger.Silent,
			log: func(gl *GormLogger) {
				gl.Info(context.Background(), "migrated")
			},
			expected: 0,
		},
		{
			name:  "warn emitted at warn level",
			level: gormlogger.Warn,
			log: func(gl *GormLogger) {
				gl.Warn(context.Background(), "connection pool near limit")
			},
			expected: 1,
		},
		{
			name:  "error emitted at error level",
			level: gormlogger.Error,
			log: func(gl *GormLogger) {
				gl.Error(context.Background(), "constraint violated")
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl, recorded := newObservedGormLogger(t, tt.level)
			tt.log(gl)
			assert.Len(t, recorded.All(), tt.expected)
		})
	}
}

func TestGormLoggerTraceError(t *testing.T) {
	gl, recorded := newObservedGormLogger(t, gormlogger.Error)

	gl.Trace(context.Background(), time.Now(), supplierQuery, errors.New("deadlock detected"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "SQL Error", logs[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
}

func TestGormLoggerTraceNotFoundIgnored(t *testing.T) {
	gl, recorded := newObservedGormLogger(t, gormlogger.Error)

	gl.Trace(context.Background(), time.Now(), supplierQuery, gormlogger.ErrRecordNotFound)

	assert.Empty(t, recorded.All())
}

func TestGormLoggerTraceNotFoundLoggedWhenConfigured(t *testing.T) {
	gl, recorded := newObservedGormLogger(t, gormlogger.Error, WithIgnoreRecordNotFoundError(false))

	gl.Trace(context.Background(), time.Now(), supplierQuery, gormlogger.ErrRecordNotFound)

	require.Len(t, recorded.All(), 1)
}

func TestGormLoggerTraceSlowQuery(t *testing.T) {
	gl, recorded := newObservedGormLogger(t, gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

	begin := time.Now().Add(-time.Second)
	gl.Trace(context.Background(), begin, supplierQuery, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "SLOW SQL", logs[0].Message)
	assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
}

func TestGormLoggerTraceOrdinaryQuery(t *testing.T) {
	gl, recorded := newObservedGormLogger(t, gormlogger.Info)

	gl.Trace(context.Background(), time.Now(), supplierQuery, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "SQL Query", logs[0].Message)
	assert.Equal(t, zapcore.DebugLevel, logs[0].Level)
}

func TestGormLoggerTraceSilent(t *testing.T) {
	gl, recorded := newObservedGormLogger(t, gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), supplierQuery, nil)

	assert.Empty(t, recorded.All())
}

func TestGormLoggerTraceContextCorrelation(t *testing.T) {
	gl, recorded := newObservedGormLogger(t, gormlogger.Info)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-7")
	ctx = context.WithValue(ctx, TenantIDKey, "tenant-1")

	gl.Trace(ctx, time.Now(), supplierQuery, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)

	fields := make(map[string]string)
	for _, f := range logs[0].Context {
		fields[f.Key] = f.String
	}
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "tenant-1", fields["tenant_id"])
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"bogus", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}

func TestGormLoggerImplementsInterface(t *testing.T) {
	gl, _ := newObservedGormLogger(t, gormlogger.Info)
	var _ gormlogger.Interface = gl
}
