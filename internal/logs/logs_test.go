package logs

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVerboseGate(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	SetVerbose(false)
	V("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("expected no output when quiet, got %q", buf.String())
	}

	SetVerbose(true)
	defer SetVerbose(false)
	V("shown %d", 2)
	if !strings.Contains(buf.String(), "shown 2") {
		t.Errorf("expected verbose output, got %q", buf.String())
	}
	if !Verbose() {
		t.Error("Verbose should report true")
	}
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	c, err := Setup(path, "mandelterm")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	log.Print("frame done")
	c.Close()
	log.SetOutput(os.Stderr)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "frame done") {
		t.Errorf("expected log line in file, got %q", data)
	}
}

func TestSetupDiscard(t *testing.T) {
	c, err := Setup("", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("discard closer should not fail: %v", err)
	}
	log.SetOutput(os.Stderr)
}
