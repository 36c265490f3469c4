package main

import (
	"context"
	"fmt"
	"os"

	"slidemenu/internal/app"

	"github.com/spf13/cobra"
)

var cfg = app.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "slidemenu",
	Short: "An interruptible slide-out menu for the terminal",
	Long: `slidemenu shows a list with a side menu that can be opened, closed,
dragged and flicked with the mouse, and interrupted at any point.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		defer a.Close()
		return a.Run(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Environment variables are applied before flag parsing, so flags win.
func Execute() {
	if err := app.LoadEnv(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.BoolVar(&cfg.Dev, "dev", cfg.Dev, "enable the dev HTTP control server")
	f.StringVar(&cfg.DevHTTP, "dev-http", cfg.DevHTTP, "dev HTTP listen address")
	f.StringVar(&cfg.LogPath, "log", cfg.LogPath, "append JSON logs to this file")
	f.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log UI debug messages to stderr")
	f.StringVar(&cfg.DemoScenario, "demo", cfg.DemoScenario, "demo scenario to apply at startup (dev mode)")
	f.BoolVar(&cfg.ASCIIOnly, "ascii", cfg.ASCIIOnly, "draw with ASCII only")
	f.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for the interaction journal")
	f.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "YAML content document")
	f.StringVar(&cfg.UI.StyleVariant, "style", cfg.UI.StyleVariant, "modern_arcade, cozy_clean or retro_terminal")
	f.StringVar(&cfg.UI.MotionLevel, "motion", cfg.UI.MotionLevel, "full, reduced or off")
	f.StringVar(&cfg.UI.MouseScope, "mouse", cfg.UI.MouseScope, "full, scoped or off")
	f.Float64Var(&cfg.Drawer.DecelerationRate, "deceleration-rate", cfg.Drawer.DecelerationRate, "flick projection rate in (0,1)")
	f.Float64Var(&cfg.Drawer.EdgeMargin, "edge-margin", cfg.Drawer.EdgeMargin, "extra cells left of the menu's leading edge that still grab it")
	f.BoolVar(&cfg.Drawer.NoStore, "no-store", cfg.Drawer.NoStore, "do not write the interaction journal")
}
