package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "github.com/gentlementlegen/assistive-pricing/internal/platform/testkit"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]string{
		"trace":          "trace",
		"debug":          "debug",
		"info":           "info",
		"warn":           "warn",
		"warning":        "warn",
		"ERROR":          "error",
		"fatal":          "fatal",
		"panic":          "panic",
		"":               "debug",
		"   nonsense   ": "debug",
	} {
		if got := parseLevel(in); strings.ToLower(got.String()) != want {
			t.Fatalf("parseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildComposesFields(t *testing.T) {
	var buf bytes.Buffer
	log := build(Options{
		Level:        "info",
		Format:       "json",
		Service:      "pricing-api",
		Component:    "root",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})

	log.Info().Str("label", "Price: 25 USD").Msg("hello")
	out := buf.String()

	kit.MustContain(t, out, `"service":"pricing-api"`)
	kit.MustContain(t, out, `"component":"root"`)
	kit.MustContain(t, out, `"build":"test"`)
	kit.MustContain(t, out, `"label":"Price: 25 USD"`)
	kit.MustContain(t, out, `"go_version"`)

	// below the configured level nothing emits
	before := buf.Len()
	log.Debug().Msg("quiet")
	if buf.Len() != before {
		t.Fatal("debug line emitted at info level")
	}
}

func TestBuildConsoleAndSampling(t *testing.T) {
	var buf bytes.Buffer
	log := build(Options{Level: "info", Format: "console", Writer: &buf, SampleEvery: 2})

	// with N=2 every other line is dropped
	for i := 0; i < 4; i++ {
		log.Info().Int("i", i).Msg("sampled")
	}
	out := buf.String()
	if n := strings.Count(out, "sampled"); n != 2 {
		t.Fatalf("want 2 sampled lines, got %d:\n%s", n, out)
	}
}

func TestBuildCaller(t *testing.T) {
	var buf bytes.Buffer
	log := build(Options{Level: "info", Format: "json", Writer: &buf, WithCaller: true})
	log.Info().Msg("located")
	kit.MustContain(t, buf.String(), `"caller"`)
	kit.MustContain(t, buf.String(), "logger_test.go")
}

func TestSingletonAndChildren(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Service: "pricing-api", Writer: &buf})

	Get().Info().Msg("root-msg")

	Named("hooks").Info().Msg("named-msg")
	if Named("") != Get() {
		t.Fatal("empty component must return the root")
	}

	ctx := WithRequest(context.Background(), "delivery-123", "acme")
	C(ctx).Info().Msg("ctx-msg")
	C(context.Background()).Debug().Msg("ctx-empty")

	// a second Init is a no-op, output stays on the first writer
	var other bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Writer: &other})
	Get().Info().Msg("still-first")
	if other.Len() != 0 {
		t.Fatal("second Init replaced the root logger")
	}

	out := buf.String()
	kit.MustContain(t, out, "root-msg")
	kit.MustContain(t, out, `"component":"hooks"`)
	kit.MustContain(t, out, "named-msg")
	kit.MustContain(t, out, `"request_id":"delivery-123"`)
	kit.MustContain(t, out, `"owner":"acme"`)
	kit.MustContain(t, out, "ctx-empty")
	kit.MustContain(t, out, "still-first")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "pricing-sweep")
	t.Setenv("LOG_COMPONENT", "runner")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" {
		t.Fatalf("level/format mismatch: %+v", opt)
	}
	if opt.Service != "pricing-sweep" || opt.Component != "runner" {
		t.Fatalf("identity fields mismatch: %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("caller/sample mismatch: %+v", opt)
	}
}
