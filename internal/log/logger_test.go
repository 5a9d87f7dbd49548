package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	t.Run("implements Logger interface", func(t *testing.T) {
		var _ Logger = NopLogger{}
	})

	t.Run("Debug does nothing", func(t *testing.T) {
		NopLogger{}.Debug("test message", "key", "value")
	})

	t.Run("With returns same NopLogger", func(t *testing.T) {
		l2 := NopLogger{}.With("key", "value")
		if _, ok := l2.(NopLogger); !ok {
			t.Error("With should return NopLogger")
		}
	})
}

func TestSlogAdapter(t *testing.T) {
	t.Run("implements Logger interface", func(t *testing.T) {
		var _ Logger = (*SlogAdapter)(nil)
	})

	t.Run("NewSlogAdapter with nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		if adapter.logger == nil {
			t.Error("adapter.logger should not be nil")
		}
	})

	t.Run("Debug logs at debug level", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler))

		adapter.Debug("test debug", "foo", "bar")
		output := buf.String()
		if !strings.Contains(output, "DEBUG") || !strings.Contains(output, "foo=bar") {
			t.Errorf("expected DEBUG level with foo=bar, got: %s", output)
		}
	})

	t.Run("Warn logs at warn level", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
		adapter := NewSlogAdapter(slog.New(handler))

		adapter.Warn("test warn", "problem", "something")
		if !strings.Contains(buf.String(), "WARN") {
			t.Errorf("expected WARN level, got: %s", buf.String())
		}
	})

	t.Run("With adds attributes and chains", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler))

		l := adapter.With("package", "resolver").With("operation", "resolve")
		l.Debug("resolving reference", "ref", "#/schemas/Pet")

		output := buf.String()
		for _, want := range []string{"package=resolver", "operation=resolve", "ref=#/schemas/Pet"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output, got: %s", want, output)
			}
		}
	})
}
