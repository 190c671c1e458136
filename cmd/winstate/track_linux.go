//go:build linux

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/winstate/internal/ipc"
	"github.com/1broseidon/winstate/internal/platform"
	"github.com/1broseidon/winstate/internal/statedir"
	"github.com/1broseidon/winstate/internal/winstate"
)

func runTrack(args []string) int {
	fs := flag.NewFlagSet("track", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/winstate/config.yaml)")
	windowFlag := fs.String("window", "", "Window id (decimal or 0x hex)")
	title := fs.String("title", "", "Track the first window whose title contains this text")
	active := fs.Bool("active", false, "Track the focused window (default when no window is given)")
	noRestore := fs.Bool("no-restore", false, "Do not apply the remembered state before tracking")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 || (fs.NArg() == 1 && *windowFlag != "") {
		fmt.Fprintln(os.Stderr, "track takes at most one window id")
		return 2
	}
	if fs.NArg() == 1 {
		*windowFlag = fs.Arg(0)
	}
	selector, err := parseWindowSelector(*windowFlag, *title, *active)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := newLogger(cfg)

	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to display: %v\n", err)
		return 1
	}
	defer backend.Disconnect()

	id, err := selector.resolve(backend)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	persister, closer, err := cfg.OpenPersister()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer.Close()

	ctrl := winstate.New(cfg.ControllerOptions(persister, backend, logger))

	if !*noRestore {
		if err := platform.Restore(backend, id, ctrl.Snapshot()); err != nil {
			logger.Warn("restore failed", "window", id.String(), "error", err)
		}
	}

	handle, err := backend.Window(id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	ctrl.Manage(handle)
	// Registered after Manage so the controller has saved by the time this runs.
	stop := handle.Subscribe(winstate.EventClosed, backend.Quit)
	defer stop()

	if sock, err := statedir.SocketPath(id.String()); err != nil {
		logger.Warn("control socket unavailable", "error", err)
	} else {
		srv := ipc.NewServer(sock, id.String(), ctrl, logger)
		if err := srv.Start(); err != nil {
			logger.Warn("control socket unavailable", "error", err)
		} else {
			defer srv.Stop()
		}
	}

	logger.Info("tracking window", "window", id.String())

	loopDone := make(chan struct{})
	go func() {
		backend.EventLoop()
		close(loopDone)
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	select {
	case <-ctx.Done():
		// The loop only notices Quit after its next event; Disconnect (deferred)
		// unblocks it. Requests below do not depend on the loop.
		backend.Quit()
	case <-loopDone:
	}

	if ctrl.Phase() == winstate.PhaseClosed {
		logger.Info("window closed; state saved", "window", id.String())
		return 0
	}

	ctrl.UpdateState()
	ctrl.Unmanage()
	if err := ctrl.SaveState(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save state: %v\n", err)
		return 1
	}
	logger.Info("state saved", "window", id.String())
	return 0
}

func runDisplays(args []string) int {
	fs := flag.NewFlagSet("displays", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/winstate/config.yaml)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to display: %v\n", err)
		return 1
	}
	defer backend.Disconnect()

	monitors, err := backend.Monitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, m := range monitors {
		primary := ""
		if m.Primary {
			primary = " (primary)"
		}
		b := m.Bounds
		fmt.Printf("%d: %-10s %d,%d %dx%d%s\n", m.ID, m.Name, b.X, b.Y, b.Width, b.Height, primary)
	}
	return 0
}

func (s windowSelector) resolve(b platform.Backend) (platform.WindowID, error) {
	switch {
	case s.ID != 0:
		return s.ID, nil
	case s.Title != "":
		return b.FindWindow(s.Title)
	default:
		return b.ActiveWindow()
	}
}
