package redact_test

import (
	"bytes"
	"testing"

	"github.com/shpitdev/registry-officer-search/internal/redact"
)

func TestSecrets(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "basic auth", in: "Authorization: Basic a2V5Og==", want: "Authorization: Basic <redacted>"},
		{name: "bearer", in: "got Bearer abc.def.ghi back", want: "got Bearer <redacted> back"},
		{name: "kv", in: "config API_KEY=abc123 failed", want: "config <redacted_kv> failed"},
		{name: "userinfo", in: `Get "https://abc123:@api.example.test/company/1"`, want: `Get "https://<redacted>@api.example.test/company/1"`},
		{name: "untouched", in: "company 00000006 not found", want: "company 00000006 not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := redact.Secrets(tc.in); got != tc.want {
				t.Fatalf("Secrets(%q)=%q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestValue(t *testing.T) {
	t.Parallel()

	got := redact.Value("request with key s3cr3t-key failed", "s3cr3t-key")
	if got != "request with key <redacted> failed" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := redact.Value("nothing here", ""); got != "nothing here" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := redact.NewWriter(&buf, "s3cr3t-key")

	line := `{"level":"error","error":"Get \"http://h/s3cr3t-key/x\": refused","auth":"Basic a2V5Og=="}` + "\n"
	n, err := w.Write([]byte(line))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len(line) {
		t.Fatalf("Write returned n=%d, want %d", n, len(line))
	}
	want := `{"level":"error","error":"Get \"http://h/<redacted>/x\": refused","auth":"Basic <redacted>"}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
