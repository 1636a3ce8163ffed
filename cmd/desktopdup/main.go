package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openscreens/desktopdup/internal/config"
	"github.com/openscreens/desktopdup/internal/logging"
)

var (
	version = "0.1.0"
	cfgFile string
	logFile string

	flagAdapter  int
	flagDisplay  int
	flagFrames   int
	flagOutput   string
	flagNoVSync  bool
	flagNoCursor bool
)

var rootCmd = &cobra.Command{
	Use:   "desktopdup",
	Short: "Desktop duplication capture tool",
	Long:  `desktopdup captures desktop frames through the DXGI Desktop Duplication API`,
}

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture desktop frames from a display",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if cmd.Flags().Changed("adapter") {
			cfg.AdapterIndex = flagAdapter
		}
		if cmd.Flags().Changed("display") {
			cfg.DisplayIndex = flagDisplay
		}
		if flagNoVSync {
			cfg.VSync = false
		}
		if flagNoCursor {
			cfg.SkipCursor = true
		}
		if err := runCapture(cfg, flagFrames, flagOutput); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

var displaysCmd = &cobra.Command{
	Use:   "displays",
	Short: "List graphics adapters and attached displays",
	Run: func(cmd *cobra.Command, args []string) {
		if err := listDisplays(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("desktopdup v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is desktopdup.yaml in the system config dir)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also log to this file, with rotation")

	captureCmd.Flags().IntVar(&flagAdapter, "adapter", 0, "graphics adapter index")
	captureCmd.Flags().IntVar(&flagDisplay, "display", 0, "display index on the adapter")
	captureCmd.Flags().IntVar(&flagFrames, "frames", 0, "stop after this many frames (0 = until interrupted)")
	captureCmd.Flags().StringVar(&flagOutput, "output", "", "append raw frame bytes to this file")
	captureCmd.Flags().BoolVar(&flagNoVSync, "no-vsync", false, "acquire as fast as possible instead of pacing to vblank")
	captureCmd.Flags().BoolVar(&flagNoCursor, "no-cursor", false, "do not draw the cursor onto frames")

	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(displaysCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.Validate()
	initLogging(cfg)
	return cfg
}

func initLogging(cfg *config.Config) {
	if logFile == "" {
		logging.Init(cfg.LogFormat, cfg.LogLevel, nil)
		return
	}
	rw, err := logging.NewRotatingWriter(logFile, 0, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	logging.Init(cfg.LogFormat, cfg.LogLevel, logging.TeeWriter(os.Stderr, rw))
}
