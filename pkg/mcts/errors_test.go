package mcts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestViolateLogsTraceBeforePanicking(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger
	SetLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))
	defer SetLogger(prev)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("violate should panic")
		}
		if _, ok := r.(*ContractViolation); !ok {
			t.Fatalf("panic value = %T, want *ContractViolation", r)
		}

		logged := buf.String()
		if !strings.Contains(logged, "widget.Op") {
			t.Fatalf("trace log should record the failing op, got %q", logged)
		}
		if !strings.Contains(logged, "bad thing: 7") {
			t.Fatalf("trace log should record the formatted message, got %q", logged)
		}
	}()

	violate("widget.Op", "bad thing: %d", 7)
}
