package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

// installRecorder 安装内存Span记录器
func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	Install(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		Install(noop.NewTracerProvider())
	})
	return recorder
}

func TestStartSpan(t *testing.T) {
	recorder := installRecorder(t)

	t.Run("父子Span共享TraceID", func(t *testing.T) {
		ctx, parent := StartSpan(context.Background(), "bookshelf", "ListBooks")
		childCtx, child := StartSpan(ctx, "bookshelf", "ListCache.Fetch")

		assert.Equal(t, ExtractTraceID(ctx), ExtractTraceID(childCtx))
		assert.NotEqual(t, ExtractSpanID(ctx), ExtractSpanID(childCtx))

		child.End()
		parent.End()

		ended := recorder.Ended()
		require.Len(t, ended, 2)
		assert.Equal(t, "ListCache.Fetch", ended[0].Name())
		assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
	})
}

func TestExtractTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, ExtractTraceID(context.Background()))
	assert.Empty(t, ExtractSpanID(context.Background()))
}

func TestExtractTraceID_Format(t *testing.T) {
	installRecorder(t)

	ctx, span := StartSpan(context.Background(), "bookshelf", "op")
	defer span.End()

	assert.Len(t, ExtractTraceID(ctx), 32)
	assert.Len(t, ExtractSpanID(ctx), 16)
}
