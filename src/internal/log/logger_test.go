package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(os.Stdout, os.Stderr)
		SetVerbose(false)
		SetForceStdErr(false)
	})
	return &out, &errOut
}

func TestInfofWritesToStdout(t *testing.T) {
	out, errOut := captureOutput(t)

	Infof("serving %d assets", 3)

	if !strings.Contains(out.String(), "[INF]") || !strings.Contains(out.String(), "serving 3 assets") {
		t.Errorf("Expected info line on stdout, got %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("Expected empty stderr, got %q", errOut.String())
	}
}

func TestErrorfWritesToStderr(t *testing.T) {
	out, errOut := captureOutput(t)

	Errorf("failed: %v", "boom")

	if !strings.Contains(errOut.String(), "[ERR]") || !strings.Contains(errOut.String(), "failed: boom") {
		t.Errorf("Expected error line on stderr, got %q", errOut.String())
	}
	if out.Len() != 0 {
		t.Errorf("Expected empty stdout, got %q", out.String())
	}
}

func TestDebugfRequiresVerbose(t *testing.T) {
	out, _ := captureOutput(t)

	Debugf("hidden")
	if out.Len() != 0 {
		t.Errorf("Expected no debug output without verbose, got %q", out.String())
	}

	SetVerbose(true)
	Debugf("shown")
	if !strings.Contains(out.String(), "shown") {
		t.Errorf("Expected debug output in verbose mode, got %q", out.String())
	}
}

func TestSetForceStdErr(t *testing.T) {
	out, errOut := captureOutput(t)

	SetForceStdErr(true)
	Warnf("careful")

	if out.Len() != 0 {
		t.Errorf("Expected empty stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "[WRN]") || !strings.Contains(errOut.String(), "careful") {
		t.Errorf("Expected warning on stderr, got %q", errOut.String())
	}
}
