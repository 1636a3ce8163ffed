//go:build !windows

package main

import (
	"errors"

	"github.com/openscreens/desktopdup/internal/config"
)

var errWindowsOnly = errors.New("desktop duplication requires Windows")

func runCapture(_ *config.Config, _ int, _ string) error {
	return errWindowsOnly
}

func listDisplays() error {
	return errWindowsOnly
}
