package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"gallery-zoom/config"
	"gallery-zoom/engine"
)

// Version is set via ldflags at build time.
var Version = "dev"

var (
	cfgFile string
	verbose bool
	outFile string
)

var rootCmd = &cobra.Command{
	Use:   "gallery-zoom",
	Short: "Pointer-driven pan and zoom for a single gallery image",
	Long: `Gallery Zoom shows one image fitted to the window. Clicking enters a
zoomed view where the pointer position pans the image; the wheel or the
+/- keys change the magnification. Scenarios written in Starlark can drive
the same zoom session without a window.`,
	SilenceUsage: true,
}

var viewCmd = &cobra.Command{
	Use:   "view <image>",
	Short: "Open an image in the zoom viewer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		v, err := NewViewer(cfg, args[0], logger)
		if err != nil {
			return err
		}
		defer v.Close()

		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		return ebiten.RunGame(v)
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay <script.star>",
	Short: "Run a Starlark zoom scenario and print the state trace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		trace, runErr := engine.NewScenario(args[0], logger, cfg.ZoomOptions()...).Run(string(src))

		if outFile != "" {
			if err := SaveTrace(trace, outFile); err != nil {
				return err
			}
			logger.Info("trace saved", "file", outFile, "steps", len(trace.Steps))
		} else if err := WriteTrace(cmd.OutOrStdout(), trace); err != nil {
			return err
		}
		return runErr
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the viewer configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of gallery-zoom",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gallery-zoom %s\n", Version)
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	replayCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the trace to a YAML file instead of stdout")
	rootCmd.SilenceErrors = true

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(viewCmd, replayCmd, configCmd, versionCmd)
}

// setup loads and validates the configuration and installs the logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}
