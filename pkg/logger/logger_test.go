package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_JSONWithServiceField(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Output: &buf, Service: "newsgpt-api"})

	log.Info().Msg("dropped")
	log.Warn().Str("user_id", "u1").Msg("kept")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "newsgpt-api" || entry["user_id"] != "u1" || entry["level"] != "warn" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestInit_IsSingleton(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})
	l := Get()
	l.Info().Msg("hello")

	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("second Init should be ignored: first=%d second=%d", first.Len(), second.Len())
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{"": "info", "DEBUG": "debug", "warning": "warn", "nope": "info", " error ": "error"}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestWithRequest_TagsEntries(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	tagged := WithRequest(base, "req-42")
	tagged.Info().Msg("tagged")
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if entry[RequestIDField] != "req-42" {
		t.Fatalf("missing request id: %v", entry)
	}

	buf.Reset()
	untagged := WithRequest(base, "")
	untagged.Info().Msg("untagged")
	if bytes.Contains(buf.Bytes(), []byte(RequestIDField)) {
		t.Fatalf("empty id should not be attached: %s", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	var fallbackBuf, reqBuf bytes.Buffer
	fallback := zerolog.New(&fallbackBuf)

	fromBare := FromContext(context.Background(), fallback)
	fromBare.Info().Msg("fallback")
	if fallbackBuf.Len() == 0 {
		t.Fatal("expected fallback logger for a bare context")
	}

	ctx := WithRequest(zerolog.New(&reqBuf), "req-7").WithContext(context.Background())
	scoped := FromContext(ctx, fallback)
	scoped.Info().Msg("scoped")
	if !bytes.Contains(reqBuf.Bytes(), []byte(`"request_id":"req-7"`)) {
		t.Fatalf("expected context logger, got %q", reqBuf.String())
	}
}
