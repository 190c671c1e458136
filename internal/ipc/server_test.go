package ipc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/1broseidon/winstate/internal/geometry"
	"github.com/1broseidon/winstate/internal/winstate"
)

type fakeTarget struct {
	mu      sync.Mutex
	record  winstate.Record
	updates int
	saves   int
	resets  int
	saveErr error
}

func (f *fakeTarget) Snapshot() winstate.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.record.Clone()
}

func (f *fakeTarget) Phase() winstate.Phase { return winstate.PhaseManaged }

func (f *fakeTarget) UpdateState() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
}

func (f *fakeTarget) SaveState() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	return nil
}

func (f *fakeTarget) ResetStateToDefault() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	f.record = *winstate.DefaultRecord(winstate.DefaultSize())
}

func (f *fakeTarget) counts() (updates, saves, resets int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates, f.saves, f.resets
}

// startServer uses a short temp dir; unix socket paths are length limited.
func startServer(t *testing.T, target Target) (*Server, *Client) {
	t.Helper()
	dir, err := os.MkdirTemp("", "wsipc")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	sock := filepath.Join(dir, "t.sock")
	srv := NewServer(sock, "0x1", target, nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)
	return srv, NewClient(sock)
}

func TestServer_GetStatus(t *testing.T) {
	target := &fakeTarget{record: *winstate.RecordFromRect(geometry.Rect{X: 10, Y: 20, Width: 300, Height: 200})}
	target.record.IsMaximized = true
	_, client := startServer(t, target)

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Window != "0x1" || status.Phase != "managed" {
		t.Fatalf("unexpected status header: %+v", status)
	}
	bounds, ok := status.Record.Bounds()
	if !ok || bounds != (geometry.Rect{X: 10, Y: 20, Width: 300, Height: 200}) {
		t.Fatalf("bounds=%+v ok=%v", bounds, ok)
	}
	if !status.Record.IsMaximized {
		t.Fatalf("expected maximized flag in status")
	}
}

func TestServer_SaveAndReset(t *testing.T) {
	target := &fakeTarget{record: *winstate.RecordFromRect(geometry.Rect{X: 10, Y: 20, Width: 300, Height: 200})}
	_, client := startServer(t, target)

	if err := client.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if updates, saves, _ := target.counts(); updates != 1 || saves != 1 {
		t.Fatalf("updates=%d saves=%d, want 1 and 1", updates, saves)
	}

	if err := client.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, saves, resets := target.counts(); resets != 1 || saves != 2 {
		t.Fatalf("resets=%d saves=%d, want 1 and 2", resets, saves)
	}
	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if b, _ := status.Record.Bounds(); b != (geometry.Rect{Width: 800, Height: 600}) {
		t.Fatalf("expected default record after reset, got %+v", b)
	}
}

func TestServer_SaveErrorIsReported(t *testing.T) {
	target := &fakeTarget{saveErr: errors.New("read-only filesystem")}
	_, client := startServer(t, target)

	err := client.Save()
	if err == nil || !strings.Contains(err.Error(), "read-only filesystem") {
		t.Fatalf("expected save error to reach the client, got %v", err)
	}
}

func TestServer_UnknownCommand(t *testing.T) {
	_, client := startServer(t, &fakeTarget{})
	if _, err := client.sendRequest(&Request{Command: "UNDO"}); err == nil {
		t.Fatalf("expected unknown command error")
	}
}

func TestServer_StopRemovesSocket(t *testing.T) {
	srv, client := startServer(t, &fakeTarget{})
	srv.Stop()
	if _, err := os.Stat(srv.socketPath); !os.IsNotExist(err) {
		t.Fatalf("expected socket removed, stat err=%v", err)
	}
	if _, err := client.GetStatus(); err == nil {
		t.Fatalf("expected dial error after stop")
	}
}
