package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.trai.ch/zsb/internal/adapters/telemetry"
)

func TestOTelTracer_RoutesSpansToRenderer(t *testing.T) {
	renderer := newRecordingRenderer()
	tp := telemetry.NewProvider(telemetry.NewBridge(renderer))
	tracer := telemetry.NewOTelTracer(tp, renderer)

	ctx, run := tracer.Start(context.Background(), "run")
	tracer.EmitPlan(ctx, []string{"qemu_x86/hello_world", "qemu_x86/shell"})

	_, ok := tracer.Start(ctx, "qemu_x86/hello_world")
	_, err := ok.Write([]byte("[1/120] Building C object\n"))
	require.NoError(t, err)
	ok.SetAttribute("attempts", 1)
	ok.End()

	_, failed := tracer.Start(ctx, "qemu_x86/shell")
	failed.RecordError(errors.New("exit status 1"))
	failed.End()
	run.End()

	plan, started, logs, completed := renderer.snapshot()
	assert.Equal(t, []string{"qemu_x86/hello_world", "qemu_x86/shell"}, plan)
	assert.Equal(t, []string{"run", "qemu_x86/hello_world", "qemu_x86/shell"}, started)
	assert.Equal(t, "[1/120] Building C object\n", logs)
	require.Len(t, completed, 3)

	var failures int
	for _, err := range completed {
		if err != nil {
			failures++
			assert.Equal(t, "exit status 1", err.Error())
		}
	}
	assert.Equal(t, 1, failures)
}

func TestOTelTracer_WithoutRenderer(t *testing.T) {
	tracer := telemetry.NewOTelTracer(noop.NewTracerProvider(), nil)

	ctx, span := tracer.Start(context.Background(), "quiet")
	tracer.EmitPlan(ctx, []string{"a"})

	n, err := span.Write([]byte("data"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	span.SetAttribute("board", "qemu_x86")
	span.SetAttribute("ok", true)
	span.SetAttribute("boards", []string{"a", "b"})
	span.SetAttribute("size", struct{}{})
	span.End()
}
