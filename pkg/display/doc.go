// Package display enumerates GPU adapters and the display outputs attached
// to them, exposes display geometry (bounds, orientation, refresh rate) and
// provides a vsync signal source used to pace frame acquisition.
//
// Everything in this package is Windows-only; the capture core consumes it
// through the opaque handles it hands out.
package display
