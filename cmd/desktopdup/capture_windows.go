//go:build windows

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openscreens/desktopdup/internal/config"
	"github.com/openscreens/desktopdup/internal/logging"
	"github.com/openscreens/desktopdup/pkg/display"
	"github.com/openscreens/desktopdup/pkg/dupl"
	"github.com/openscreens/desktopdup/pkg/reader"
	"github.com/openscreens/desktopdup/pkg/texture"
)

func runCapture(cfg *config.Config, frames int, output string) error {
	if err := display.InitializeCOM(); err != nil {
		return err
	}
	if err := display.SetProcessDPIAware(); err != nil {
		return err
	}

	log := logging.WithDisplay(logging.L("capture"), cfg.AdapterIndex, cfg.DisplayIndex)

	ctrl, err := dupl.New(cfg.AdapterIndex, cfg.DisplayIndex, dupl.Options{
		SkipCursor:          cfg.SkipCursor,
		AcquireTimeout:      time.Duration(cfg.AcquireTimeoutMs) * time.Millisecond,
		MaxRecoveryAttempts: cfg.MaxRecoveryAttempts,
		RecoveryDelay:       time.Duration(cfg.RecoveryDelayMs) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("start capture: %w", err)
	}
	defer ctrl.Close()

	rd := reader.New(ctrl.DeviceAndContext())
	defer rd.Close()

	var sink *os.File
	if output != "" {
		sink, err = os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer sink.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("capture started", "vsync", cfg.VSync)

	var buf []byte
	captured := 0
	lastReport := time.Now()
	reported := 0
	for ctx.Err() == nil && (frames == 0 || captured < frames) {
		tex, info, aerr := acquire(ctx, ctrl, cfg.VSync)
		if aerr != nil {
			if errors.Is(aerr, dupl.ErrNoFrame) {
				continue
			}
			if errors.Is(aerr, context.Canceled) {
				break
			}
			return aerr
		}

		if sink != nil {
			if rerr := rd.GetData(&buf, tex); rerr != nil {
				tex.Release()
				return rerr
			}
			if _, werr := sink.Write(buf); werr != nil {
				tex.Release()
				return werr
			}
		}
		tex.Release()
		captured++

		if time.Since(lastReport) >= time.Second {
			log.Info("capturing",
				"fps", captured-reported,
				"accumulated", info.AccumulatedFrames)
			reported = captured
			lastReport = time.Now()
		}
	}

	log.Info("capture finished", "frames", captured)
	return nil
}

func acquire(ctx context.Context, ctrl *dupl.Controller, vsync bool) (*texture.Texture, dupl.FrameInfo, error) {
	if vsync {
		return ctrl.AcquireNextVSyncFrame(ctx)
	}
	return ctrl.AcquireNextFrameNow(ctx)
}
