package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func serveLogged(t *testing.T, status int, configure func(*http.Request)) *observer.ObservedLogs {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-42")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/suppliers", func(c *gin.Context) {
		c.JSON(status, gin.H{})
	})

	req := httptest.NewRequest("GET", "/suppliers", nil)
	if configure != nil {
		configure(req)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return recorded
}

func findRequestLog(t *testing.T, recorded *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	for _, entry := range recorded.All() {
		if entry.Message == "HTTP Request" {
			return entry
		}
	}
	t.Fatal("no HTTP Request entry logged")
	return observer.LoggedEntry{}
}

func TestGinMiddlewareLogLevelByStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"2xx logs info", http.StatusOK, zapcore.InfoLevel},
		{"4xx logs warn", http.StatusNotFound, zapcore.WarnLevel},
		{"5xx logs error", http.StatusBadGateway, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := findRequestLog(t, serveLogged(t, tt.status, nil))
			assert.Equal(t, tt.level, entry.Level)
		})
	}
}

func TestGinMiddlewareRequestFields(t *testing.T) {
	recorded := serveLogged(t, http.StatusOK, func(req *http.Request) {
		req.URL.RawQuery = "filter_type=with_suggestions&page=2"
		req.Header.Set("User-Agent", "dashboard/1.0")
	})
	entry := findRequestLog(t, recorded)

	fields := make(map[string]zapcore.Field)
	for _, f := range entry.Context {
		fields[f.Key] = f
	}

	assert.Equal(t, "req-42", fields["request_id"].String)
	assert.Equal(t, "GET", fields["method"].String)
	assert.Equal(t, "/suppliers", fields["path"].String)
	assert.Equal(t, "dashboard/1.0", fields["user_agent"].String)
	assert.Contains(t, fields["query"].String, "filter_type=with_suggestions")
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "latency")
	assert.Contains(t, fields, "client_ip")
	assert.Contains(t, fields, "body_size")
}

func TestGinMiddlewareTenantField(t *testing.T) {
	recorded := serveLogged(t, http.StatusOK, func(req *http.Request) {
		req.Header.Set("X-Tenant-ID", "00000000-0000-0000-0000-000000000001")
	})
	entry := findRequestLog(t, recorded)

	found := false
	for _, f := range entry.Context {
		if f.Key == "tenant_id" {
			found = true
			assert.Equal(t, "00000000-0000-0000-0000-000000000001", f.String)
		}
	}
	assert.True(t, found, "tenant_id should be logged when the header is set")
}

func TestGinMiddlewareNoTenantHeader(t *testing.T) {
	entry := findRequestLog(t, serveLogged(t, http.StatusOK, nil))

	for _, f := range entry.Context {
		assert.NotEqual(t, "tenant_id", f.Key)
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		panic("scoring blew up")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/boom", nil)

	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Equal(t, "Panic recovered", logs[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, _ := observer.New(zapcore.InfoLevel)

	var fromHandler *zap.Logger
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/x", func(c *gin.Context) {
		fromHandler = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	assert.NotNil(t, fromHandler)
}

func TestGetGinLoggerWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var fromHandler *zap.Logger
	router := gin.New()
	router.GET("/x", func(c *gin.Context) {
		fromHandler = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	require.NotNil(t, fromHandler)
	assert.NotPanics(t, func() {
		fromHandler.Info("still usable")
	})
}
