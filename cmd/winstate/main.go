package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/winstate/internal/config"
	"github.com/1broseidon/winstate/internal/geometry"
	"github.com/1broseidon/winstate/internal/ipc"
	"github.com/1broseidon/winstate/internal/platform"
	"github.com/1broseidon/winstate/internal/statedir"
	"github.com/1broseidon/winstate/internal/winstate"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "show":
		os.Exit(runShow(os.Args[2:]))
	case "reset":
		os.Exit(runReset(os.Args[2:]))
	case "track":
		os.Exit(runTrack(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "save":
		os.Exit(runSave(os.Args[2:]))
	case "displays":
		os.Exit(runDisplays(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winstate <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  show                Show the remembered window state")
	fmt.Fprintln(w, "  reset               Reset the remembered state to defaults (-forget deletes it)")
	fmt.Fprintln(w, "  track               Restore a window and remember its geometry until it closes")
	fmt.Fprintln(w, "  status              Show windows being tracked")
	fmt.Fprintln(w, "  save                Ask a tracker to save its window now")
	fmt.Fprintln(w, "  displays            List attached displays")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'winstate <command> -h' for command options.")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

func runShow(args []string) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/winstate/config.yaml)")
	asJSON := fs.Bool("json", false, "Print the record as JSON")
	displaysFlag := fs.String("displays", "", `Validate against displays, e.g. "0,0,1920x1080;1920,0,1280x1024"`)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var displays winstate.DisplayLister
	if *displaysFlag != "" {
		rects, err := parseDisplays(*displaysFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		displays = winstate.StaticDisplays(rects)
	}

	persister, closer, err := cfg.OpenPersister()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer.Close()

	ctrl := winstate.New(cfg.ControllerOptions(persister, displays, newLogger(cfg)))
	rec := ctrl.Snapshot()

	pretty := !*asJSON && term.IsTerminal(int(os.Stdout.Fd()))
	if err := writeRecord(os.Stdout, &rec, pretty); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func writeRecord(w io.Writer, rec *winstate.Record, pretty bool) error {
	if !pretty {
		data, err := winstate.EncodeRecord(rec)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	if bounds, ok := rec.Bounds(); ok {
		fmt.Fprintf(w, "Position:    %d,%d\n", bounds.X, bounds.Y)
	} else {
		fmt.Fprintln(w, "Position:    (window manager default)")
	}
	fmt.Fprintf(w, "Size:        %dx%d\n", deref(rec.Width), deref(rec.Height))
	fmt.Fprintf(w, "Maximized:   %t\n", rec.IsMaximized)
	fmt.Fprintf(w, "Full screen: %t\n", rec.IsFullScreen)
	if rec.DisplayBounds != nil {
		d := rec.DisplayBounds
		fmt.Fprintf(w, "Display:     %d,%d %dx%d\n", d.X, d.Y, d.Width, d.Height)
	}
	return nil
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func runReset(args []string) int {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/winstate/config.yaml)")
	window := fs.String("window", "", "Reset through the tracker of this window instead of the state file")
	forget := fs.Bool("forget", false, "Delete the saved state instead of writing defaults")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *forget && *window != "" {
		fmt.Fprintln(os.Stderr, "-forget cannot be combined with -window")
		return 2
	}

	if *window != "" {
		client, err := trackerClient(*window)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		if err := client.Reset(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("state: reset")
		return 0
	}

	cfg, err := loadConfig(*path)
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

	if *forget {
		c, ok := persister.(winstate.Clearer)
		if !ok {
			fmt.Fprintf(os.Stderr, "backend %q cannot forget state\n", cfg.Backend)
			return 1
		}
		if err := c.Clear(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("state: forgotten")
		return 0
	}

	ctrl := winstate.New(cfg.ControllerOptions(persister, nil, newLogger(cfg)))
	ctrl.ResetStateToDefault()
	if err := ctrl.SaveState(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save state: %v\n", err)
		return 1
	}
	fmt.Printf("state: reset to %dx%d at 0,0\n", ctrl.Width(), ctrl.Height())
	return 0
}

func trackerClient(window string) (*ipc.Client, error) {
	id, err := platform.ParseWindowID(window)
	if err != nil {
		return nil, err
	}
	sock, err := statedir.SocketPath(id.String())
	if err != nil {
		return nil, err
	}
	return ipc.NewClient(sock), nil
}

// windowSelector names the window to track. The zero value selects the
// focused window.
type windowSelector struct {
	ID    platform.WindowID
	Title string
}

func parseWindowSelector(window, title string, active bool) (windowSelector, error) {
	n := 0
	for _, set := range []bool{window != "", title != "", active} {
		if set {
			n++
		}
	}
	if n > 1 {
		return windowSelector{}, fmt.Errorf("choose only one of -window, -title or -active")
	}
	if window != "" {
		id, err := platform.ParseWindowID(window)
		if err != nil {
			return windowSelector{}, err
		}
		return windowSelector{ID: id}, nil
	}
	return windowSelector{Title: title}, nil
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	window := fs.String("window", "", "Only query the tracker of this window")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var clients []*ipc.Client
	if *window != "" {
		client, err := trackerClient(*window)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		clients = append(clients, client)
	} else {
		socks, err := statedir.TrackerSockets()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, sock := range socks {
			clients = append(clients, ipc.NewClient(sock))
		}
	}

	if len(clients) == 0 {
		fmt.Println("No windows are being tracked")
		return 0
	}

	rc := 0
	for _, client := range clients {
		status, err := client.GetStatus()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			rc = 1
			continue
		}
		fmt.Printf("%s  %-9s  %s  (up %ds)\n", status.Window, status.Phase, formatRecord(&status.Record), status.UptimeSeconds)
	}
	return rc
}

func formatRecord(rec *winstate.Record) string {
	var b strings.Builder
	if bounds, ok := rec.Bounds(); ok {
		fmt.Fprintf(&b, "%d,%d %dx%d", bounds.X, bounds.Y, bounds.Width, bounds.Height)
	} else {
		fmt.Fprintf(&b, "%dx%d", deref(rec.Width), deref(rec.Height))
	}
	if rec.IsMaximized {
		b.WriteString(" maximized")
	}
	if rec.IsFullScreen {
		b.WriteString(" fullscreen")
	}
	return b.String()
}

func runSave(args []string) int {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	window := fs.String("window", "", "Window whose tracker should save (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *window == "" && fs.NArg() > 0 {
		*window = fs.Arg(0)
	}
	if *window == "" {
		fmt.Fprintln(os.Stderr, "save requires -window")
		return 2
	}

	client, err := trackerClient(*window)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := client.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("state: saved")
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  winstate config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  winstate config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/winstate/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/winstate/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		if *printDefaults {
			cfg = config.DefaultConfig()
		} else {
			var err error
			if cfg, err = loadConfig(*path); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

// parseDisplays parses a ';'-separated list of "x,y,WxH" display bounds.
func parseDisplays(s string) ([]geometry.Rect, error) {
	var out []geometry.Rect
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("invalid display %q: want x,y,WIDTHxHEIGHT", part)
		}
		w, h, ok := strings.Cut(fields[2], "x")
		if !ok {
			return nil, fmt.Errorf("invalid display %q: want x,y,WIDTHxHEIGHT", part)
		}
		var vals [4]int
		for i, raw := range []string{fields[0], fields[1], w, h} {
			v, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("invalid display %q: %w", part, err)
			}
			vals[i] = v
		}
		r := geometry.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
		if r.Empty() {
			return nil, fmt.Errorf("invalid display %q: size must be positive", part)
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no displays given")
	}
	return out, nil
}
