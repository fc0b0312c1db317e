package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newBufferedLogger() (*zap.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)
	return zap.New(core), &buf
}

func TestContextRoundTrip(t *testing.T) {
	base, err := NewForEnvironment("development")
	require.NoError(t, err)

	t.Run("logger survives the context", func(t *testing.T) {
		ctx := WithContext(context.Background(), base)
		assert.NotNil(t, FromContext(ctx))
	})

	t.Run("missing logger yields a usable nop", func(t *testing.T) {
		l := FromContext(context.Background())
		require.NotNil(t, l)
		assert.NotPanics(t, func() {
			l.Info("no logger attached")
			l.With(zap.String("guest", "G-0001")).Warn("still fine")
		})
	})

	t.Run("wrong value type yields a usable nop", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), LoggerKey, 42)
		l := FromContext(ctx)
		require.NotNil(t, l)
		assert.NotPanics(t, func() { l.Info("ignored") })
	})

	t.Run("keys are distinct", func(t *testing.T) {
		assert.NotEqual(t, LoggerKey, RequestIDKey)
		assert.NotEqual(t, RequestIDKey, UserIDKey)
		assert.NotEqual(t, LoggerKey, UserIDKey)
	})
}

func TestCorrelationValues(t *testing.T) {
	base, err := NewForEnvironment("development")
	require.NoError(t, err)

	t.Run("request ID is stored and readable", func(t *testing.T) {
		ctx, enriched := WithRequestID(context.Background(), base, "req-42")
		assert.Equal(t, "req-42", GetRequestID(ctx))
		assert.NotNil(t, enriched)
		assert.NotEqual(t, base, enriched)
	})

	t.Run("user ID is stored and readable", func(t *testing.T) {
		ctx, enriched := WithUserID(context.Background(), base, "staff-7")
		assert.Equal(t, "staff-7", GetUserID(ctx))
		assert.NotNil(t, enriched)
	})

	t.Run("values chain", func(t *testing.T) {
		ctx := context.Background()
		ctx, l := WithRequestID(ctx, base, "req-1")
		ctx, l = WithUserID(ctx, l, "staff-1")

		assert.Equal(t, "req-1", GetRequestID(ctx))
		assert.Equal(t, "staff-1", GetUserID(ctx))
	})

	t.Run("later request ID wins", func(t *testing.T) {
		ctx := context.Background()
		ctx, _ = WithRequestID(ctx, base, "stale")
		ctx, _ = WithRequestID(ctx, base, "current")
		assert.Equal(t, "current", GetRequestID(ctx))
	})

	t.Run("empty context reads as empty strings", func(t *testing.T) {
		assert.Empty(t, GetRequestID(context.Background()))
		assert.Empty(t, GetUserID(context.Background()))
	})
}

func TestL(t *testing.T) {
	t.Run("always returns a working logger", func(t *testing.T) {
		cl := L(context.Background())
		require.NotNil(t, cl)
		assert.NotPanics(t, func() { cl.Info("bare context") })
	})

	t.Run("picks up the context logger", func(t *testing.T) {
		logged, buf := newBufferedLogger()
		ctx := WithContext(context.Background(), logged)

		L(ctx).Info("visit recorded")

		assert.Contains(t, buf.String(), `"msg":"visit recorded"`)
	})
}

func TestWithLogger(t *testing.T) {
	base, _ := newBufferedLogger()
	cl := WithLogger(context.Background(), base)

	require.NotNil(t, cl)
	assert.Equal(t, base, cl.logger)
}

func TestContextLoggerEnrichment(t *testing.T) {
	t.Run("stamps correlation fields on every entry", func(t *testing.T) {
		base, buf := newBufferedLogger()

		ctx := context.Background()
		ctx, _ = WithRequestID(ctx, base, "req-123")
		ctx, _ = WithUserID(ctx, base, "staff-9")
		ctx = WithContext(ctx, base)

		L(ctx).Info("sms queued", zap.String("provider", "smsleopard"))

		out := buf.String()
		assert.Contains(t, out, `"request_id":"req-123"`)
		assert.Contains(t, out, `"user_id":"staff-9"`)
		assert.Contains(t, out, `"provider":"smsleopard"`)
		assert.Contains(t, out, `"msg":"sms queued"`)
	})

	t.Run("reads raw context values too", func(t *testing.T) {
		base, buf := newBufferedLogger()

		ctx := context.WithValue(context.Background(), RequestIDKey, "req-raw")
		ctx = context.WithValue(ctx, UserIDKey, "staff-raw")

		WithLogger(ctx, base).Info("lookup")

		out := buf.String()
		assert.Contains(t, out, `"request_id":"req-raw"`)
		assert.Contains(t, out, `"user_id":"staff-raw"`)
	})

	t.Run("omits absent correlation fields entirely", func(t *testing.T) {
		base, buf := newBufferedLogger()

		WithLogger(context.Background(), base).Info("no correlation")

		out := buf.String()
		assert.Contains(t, out, `"msg":"no correlation"`)
		assert.NotContains(t, out, `"request_id"`)
		assert.NotContains(t, out, `"user_id"`)
	})

	t.Run("nil logger does not panic", func(t *testing.T) {
		cl := &ContextLogger{ctx: context.Background()}
		assert.NotPanics(t, func() { cl.Info("nil backing logger") })
	})
}

func TestContextLoggerWith(t *testing.T) {
	t.Run("child carries extra fields", func(t *testing.T) {
		base, buf := newBufferedLogger()

		WithLogger(context.Background(), base).
			With(zap.String("case_number", "HCCC-2026-015")).
			Info("task assigned")

		assert.Contains(t, buf.String(), `"case_number":"HCCC-2026-015"`)
	})

	t.Run("chaining keeps the context", func(t *testing.T) {
		ctx := context.Background()
		cl := WithLogger(ctx, zap.NewNop()).
			With(zap.String("a", "1")).
			With(zap.String("b", "2"))

		assert.Equal(t, ctx, cl.ctx)
		assert.NotPanics(t, func() { cl.Info("chained") })
	})
}

func TestContextLoggerLevels(t *testing.T) {
	cl := WithLogger(context.Background(), zap.NewNop())

	assert.NotPanics(t, func() {
		cl.Debug("d")
		cl.Info("i")
		cl.Warn("w")
		cl.Error("e")
	})
}

func TestContextLoggerAdapters(t *testing.T) {
	t.Run("zap form", func(t *testing.T) {
		z := WithLogger(context.Background(), zap.NewNop()).Zap()
		require.NotNil(t, z)
		assert.NotPanics(t, func() { z.Info("plain zap") })
	})

	t.Run("sugared form", func(t *testing.T) {
		s := WithLogger(context.Background(), zap.NewNop()).Sugar()
		require.NotNil(t, s)
		assert.NotPanics(t, func() { s.Infof("guest %s", "G-0002") })
	})
}
