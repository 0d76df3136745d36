package bootcfg

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "boot.cfg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "does-not-exist.cfg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts != (Options{}) {
		t.Fatalf("got %+v, want zero value", opts)
	}
}

func TestLoadParsesKnownKeys(t *testing.T) {
	path := writeTemp(t, "# comment\nlogfile = kernel.log\ndebug = true\nserial = /dev/ttyS0\nheartbeat0 = 400000\n")
	opts, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if opts.LogFile != "kernel.log" || !opts.Debug || opts.SerialPort != "/dev/ttyS0" || opts.Heartbeat0 != 400000 {
		t.Fatalf("got %+v", opts)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeTemp(t, "bogus = 1\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unknown option")
	}
}

func TestLoadRejectsMissingEquals(t *testing.T) {
	path := writeTemp(t, "logfile kernel.log\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a line without '='")
	}
}

func TestLoadIgnoresBlankAndCommentLines(t *testing.T) {
	path := writeTemp(t, "\n# just a comment\n   \nlogfile = a.log\n")
	opts, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if opts.LogFile != "a.log" {
		t.Fatalf("got %+v", opts)
	}
}
