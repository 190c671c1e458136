package statedir

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir_UsesXDGConfigHomeWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if want := filepath.Join(td, "winstate"); got != want {
		t.Fatalf("Dir() = %q, want %q", got, want)
	}
}

func TestDir_FallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if want := filepath.Join(home, ".config", "winstate"); got != want {
		t.Fatalf("Dir() = %q, want %q", got, want)
	}
	if _, err := os.Stat(got); !os.IsNotExist(err) {
		t.Fatalf("Dir() should not create %q", got)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath() error: %v", err)
	}
	if !strings.HasSuffix(path, "/winstate/config.yaml") {
		t.Fatalf("ConfigPath() = %q, missing suffix", path)
	}
}

func TestRuntimeDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := RuntimeDir()
	if err != nil {
		t.Fatalf("RuntimeDir() error: %v", err)
	}
	if got != td {
		t.Fatalf("RuntimeDir() = %q, want %q", got, td)
	}
}

func TestSocketPathAndTrackerSockets(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	path, err := SocketPath("0x2a00003")
	if err != nil {
		t.Fatalf("SocketPath() error: %v", err)
	}
	if want := filepath.Join(td, "winstate-0x2a00003.sock"); path != want {
		t.Fatalf("SocketPath() = %q, want %q", path, want)
	}

	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(td, "other.sock"), nil, 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	socks, err := TrackerSockets()
	if err != nil {
		t.Fatalf("TrackerSockets() error: %v", err)
	}
	if len(socks) != 1 || socks[0] != path {
		t.Fatalf("TrackerSockets() = %v, want [%s]", socks, path)
	}
}
