package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
)

func capture(t *testing.T, enabled bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(enabled)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("initialised %s session", "github")

	if got := buf.String(); got != "[DEBUG] initialised github session\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("Restore")

	if !strings.Contains(buf.String(), "=== Restore ===") {
		t.Errorf("expected section header, got %q", buf.String())
	}
}

func TestLevels(t *testing.T) {
	buf := capture(t, true)

	Info("one")
	Warn("two")

	out := buf.String()
	if !strings.Contains(out, "[INFO] one") || !strings.Contains(out, "[WARN] two") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestScoped(t *testing.T) {
	buf := capture(t, true)

	log := With("proxy")
	log.Debug("advancing to %s", "allorigins")
	log.Warn("strategy %d failed", 2)

	out := buf.String()
	if !strings.Contains(out, "[DEBUG] proxy: advancing to allorigins\n") {
		t.Errorf("missing scoped debug line in %q", out)
	}
	if !strings.Contains(out, "[WARN] proxy: strategy 2 failed\n") {
		t.Errorf("missing scoped warn line in %q", out)
	}
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, true)
	SetOutput(&safeBuffer{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Debug("message")
			With("jira").Info("message")
		}()
		go func() {
			defer wg.Done()
			_ = IsVerbose()
		}()
	}
	wg.Wait()
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}
