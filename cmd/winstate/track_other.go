//go:build !linux

package main

import (
	"fmt"
	"os"
)

func runTrack(args []string) int {
	fmt.Fprintln(os.Stderr, "track is only supported on Linux (X11)")
	return 1
}

func runDisplays(args []string) int {
	fmt.Fprintln(os.Stderr, "displays is only supported on Linux (X11)")
	return 1
}
