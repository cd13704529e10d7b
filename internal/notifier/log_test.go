package notifier

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLogNotifier_Notify(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	n := NewLogNotifier(logger)

	if err := n.Notify(context.Background(), sampleMessage()); err != nil {
		t.Fatalf("Notify = %v, want nil", err)
	}

	out := buf.String()
	if !strings.Contains(out, "to=me@example.com") {
		t.Errorf("log missing recipient: %s", out)
	}
	if strings.Contains(out, "<h2>digest</h2>") {
		t.Error("html body should only be logged at debug level")
	}
}
