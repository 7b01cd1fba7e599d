package logger

import (
	"bytes"
	"context"
	"testing"

	kit "numwash/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel_Table(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{" INFO ", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"", zerolog.DebugLevel},
		{"   shouty   ", zerolog.DebugLevel},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// Init wins exactly once per process, so this test sets up the root logger
// and the rest of the file lives with what it chose
func TestInitAndChildLoggers(t *testing.T) {
	var buf bytes.Buffer

	Init(Options{
		Level:        "info",
		Format:       "console",
		Service:      "numwash-api",
		Component:    "api",
		Writer:       &buf,
		WithCaller:   true,
		SampleEvery:  2,
		StaticFields: map[string]string{"build": "dev"},
	})

	// the root carries a 1-in-2 sampler; swap in an always-on one so every
	// line below is guaranteed to land in the buffer
	root := Get().Sample(&zerolog.BasicSampler{N: 1})
	root.Info().Str("k", "v").Msg("root line")

	sweep := Named("sweep").Sample(&zerolog.BasicSampler{N: 1})
	sweep.Info().Msg("sweep line")

	ctx := WithRequest(context.Background(), "req-cleanup-7")
	reqLog := C(ctx).Sample(&zerolog.BasicSampler{N: 1})
	reqLog.Info().Msg("request line")

	// a bare ctx child must not blow up
	bare := C(context.Background()).Sample(&zerolog.BasicSampler{N: 1})
	bare.Info().Msg("bare line")

	out := buf.String()
	kit.MustContain(t, out, "root line")
	kit.MustContain(t, out, "sweep line")
	kit.MustContain(t, out, "request line")
	kit.MustContain(t, out, "service=")
	kit.MustContain(t, out, "numwash-api")
	kit.MustContain(t, out, "build=")
	kit.MustContain(t, out, "dev")
	kit.MustContain(t, out, "component=")
	kit.MustContain(t, out, "sweep")
	kit.MustContain(t, out, "request_id=")
	kit.MustContain(t, out, "req-cleanup-7")
}

func TestFromEnv_ReadsLogKeys(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "numwash-api")
	t.Setenv("LOG_COMPONENT", "store")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "3")

	got := FromEnv()
	if got.Level != "warn" {
		t.Fatalf("Level = %q, want warn", got.Level)
	}
	if got.Format != "json" {
		t.Fatalf("Format = %q, want json", got.Format)
	}
	if got.Service != "numwash-api" || got.Component != "store" {
		t.Fatalf("service/component mismatch: %+v", got)
	}
	if !got.WithCaller || got.SampleEvery != 3 {
		t.Fatalf("caller/sample mismatch: %+v", got)
	}
}

func TestWithRequest_EmptyID(t *testing.T) {
	ctx := context.Background()
	if WithRequest(ctx, "") != ctx {
		t.Fatal("empty request id should leave ctx untouched")
	}

	child := C(ctx).Sample(&zerolog.BasicSampler{N: 1})
	child.Debug().Msg("no request fields")
}
