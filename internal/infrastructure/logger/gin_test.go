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

// observedRouter wires GinMiddleware in front of the given handler and
// captures everything it logs.
func observedRouter(level zapcore.Level, method, path string, handler gin.HandlerFunc) (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(level)
	r := gin.New()
	r.Use(GinMiddleware(zap.New(core)))
	r.Handle(method, path, handler)
	return r, recorded
}

func accessEntry(t *testing.T, recorded *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	entries := recorded.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1, "expected exactly one access log entry")
	return entries[0]
}

func fieldByKey(entry observer.LoggedEntry, key string) (zapcore.Field, bool) {
	for _, f := range entry.Context {
		if f.Key == key {
			return f, true
		}
	}
	return zapcore.Field{}, false
}

func TestGinMiddleware(t *testing.T) {
	t.Run("successful request logs at info", func(t *testing.T) {
		r, recorded := observedRouter(zapcore.InfoLevel, http.MethodGet, "/guests", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guests", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, zapcore.InfoLevel, accessEntry(t, recorded).Level)
	})

	t.Run("client error logs at warn", func(t *testing.T) {
		r, recorded := observedRouter(zapcore.WarnLevel, http.MethodGet, "/guests", func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"success": false})
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guests", nil))

		assert.Equal(t, zapcore.WarnLevel, accessEntry(t, recorded).Level)
	})

	t.Run("server error logs at error", func(t *testing.T) {
		r, recorded := observedRouter(zapcore.ErrorLevel, http.MethodGet, "/guests", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guests", nil))

		assert.Equal(t, zapcore.ErrorLevel, accessEntry(t, recorded).Level)
	})

	t.Run("carries the request ID set upstream", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		core, recorded := observer.New(zapcore.InfoLevel)

		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set("request_id", "req-abc")
			c.Next()
		})
		r.Use(GinMiddleware(zap.New(core)))
		r.GET("/visits", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/visits", nil))

		entry := accessEntry(t, recorded)
		field, ok := fieldByKey(entry, "request_id")
		require.True(t, ok)
		assert.Equal(t, "req-abc", field.String)
	})

	t.Run("records the query string when present", func(t *testing.T) {
		r, recorded := observedRouter(zapcore.InfoLevel, http.MethodGet, "/guests", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guests?status=approved&page=2", nil))

		field, ok := fieldByKey(accessEntry(t, recorded), "query")
		require.True(t, ok)
		assert.Contains(t, field.String, "status=approved")
	})

	t.Run("emits the standard access fields", func(t *testing.T) {
		r, recorded := observedRouter(zapcore.InfoLevel, http.MethodPost, "/visits/sign-in", func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"success": true})
		})

		req := httptest.NewRequest(http.MethodPost, "/visits/sign-in", nil)
		req.Header.Set("User-Agent", "gatehouse-kiosk/2.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		entry := accessEntry(t, recorded)
		for _, key := range []string{"status", "latency", "client_ip", "user_agent", "body_size", "method", "path"} {
			_, ok := fieldByKey(entry, key)
			assert.True(t, ok, "missing field %q", key)
		}
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.ErrorLevel)

	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	entries := recorded.FilterMessage("Panic recovered").All()
	require.Len(t, entries, 1)
}

func TestGetGinLogger(t *testing.T) {
	t.Run("returns the request-scoped logger", func(t *testing.T) {
		var got *zap.Logger
		r, _ := observedRouter(zapcore.InfoLevel, http.MethodGet, "/guests", func(c *gin.Context) {
			got = GetGinLogger(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guests", nil))

		assert.NotNil(t, got)
	})

	t.Run("falls back to a nop without the middleware", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		var got *zap.Logger

		r := gin.New()
		r.GET("/guests", func(c *gin.Context) {
			got = GetGinLogger(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guests", nil))

		require.NotNil(t, got)
		assert.NotPanics(t, func() { got.Info("no middleware") })
	})
}
