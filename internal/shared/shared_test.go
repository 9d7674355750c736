package shared

import (
	"bytes"
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "first comment", want: "first comment"},
		{name: "surrounding whitespace", in: "  nice video  ", want: "nice video"},
		{name: "whitespace only", in: "   ", want: ""},
		{name: "tabs and newlines", in: "\t\n ", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	t.Run("Unique Across Calls", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := GenerateID()
			if seen[id] {
				t.Fatalf("duplicate ID generated: %s", id)
			}
			seen[id] = true
		}
	})

	t.Run("UUID Format", func(t *testing.T) {
		id := GenerateID()
		if len(id) != 36 || strings.Count(id, "-") != 4 {
			t.Errorf("expected v4 UUID format, got %s", id)
		}
	})
}

func TestMarshalJSON(t *testing.T) {
	t.Run("Compact", func(t *testing.T) {
		out, err := MarshalJSON(map[string]int{"views": 3}, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(out) != `{"views":3}` {
			t.Errorf("unexpected output: %s", out)
		}
	})

	t.Run("Pretty", func(t *testing.T) {
		out, err := MarshalJSON(map[string]int{"views": 3}, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(out), "\n") {
			t.Error("expected indented output")
		}
	})

	t.Run("Unmarshalable Value", func(t *testing.T) {
		if _, err := MarshalJSON(func() {}, false); err == nil {
			t.Error("expected error for func value")
		}
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	logger.Info("hello")

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected log output to contain message, got %q", buf.String())
	}
}
