package statedir

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "winstate"

// Dir returns the directory holding winstate configuration and saved window
// state. Priority:
// 1) XDG_CONFIG_HOME/winstate (if XDG_CONFIG_HOME is set)
// 2) ~/.config/winstate
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

// ConfigPath returns the default config file path.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// RuntimeDir returns the directory for per-session files such as tracker
// sockets. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
// 3) /tmp/winstate-runtime-<uid> (created)
func RuntimeDir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	uid := os.Getuid()
	runUserDir := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}

	tmpDir := fmt.Sprintf("/tmp/%s-runtime-%d", appName, uid)
	if err := os.MkdirAll(tmpDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return tmpDir, nil
}

// SocketPath returns the control socket of the tracker for window.
func SocketPath(window string) (string, error) {
	runtimeDir, err := RuntimeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(runtimeDir, appName+"-"+window+".sock"), nil
}

// TrackerSockets lists the control sockets of running trackers.
func TrackerSockets() ([]string, error) {
	runtimeDir, err := RuntimeDir()
	if err != nil {
		return nil, err
	}
	return filepath.Glob(filepath.Join(runtimeDir, appName+"-*.sock"))
}
