//go:build windows

package main

import (
	"fmt"

	"github.com/openscreens/desktopdup/pkg/display"
)

func listDisplays() error {
	if err := display.InitializeCOM(); err != nil {
		return err
	}

	factory, err := display.NewFactory()
	if err != nil {
		return err
	}
	defer factory.Release()

	adapters, err := factory.Adapters()
	if err != nil {
		return err
	}
	for i, adapter := range adapters {
		fmt.Printf("adapter %d: %s\n", i, adapter.Name())

		displays, err := adapter.Displays()
		if err != nil {
			adapter.Release()
			return err
		}
		for j, dp := range displays {
			line := fmt.Sprintf("  display %d: %s", j, dp.Name())
			if mode, err := dp.CurrentMode(); err == nil {
				line += fmt.Sprintf(" %dx%d @ %d Hz", mode.Width, mode.Height, mode.Refresh())
				if mode.HDR {
					line += " (HDR)"
				}
			}
			fmt.Println(line)
			dp.Release()
		}
		adapter.Release()
	}
	return nil
}
