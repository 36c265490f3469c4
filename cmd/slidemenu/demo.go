package main

import (
	"fmt"
	"strings"

	"slidemenu/internal/devtools"
	"slidemenu/internal/drawer"
	"slidemenu/internal/motion"

	"github.com/spf13/cobra"
)

var (
	demoCols int
	demoRows int
)

var demoCmd = &cobra.Command{
	Use:   "demo [scenario]",
	Short: "Replay a scripted drawer scenario headlessly and print every frame",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		m := devtools.NewManager()
		name := "present"
		if len(args) == 1 {
			name = strings.TrimSpace(args[0])
		}
		if !m.Known(name) {
			return fmt.Errorf("unknown demo %q (known: %s)", name, strings.Join(m.Names(), ", "))
		}
		s := m.Resolve(name)

		spring := motion.DefaultSpringConfig()
		if cfg.UI.MotionLevel == "reduced" {
			spring = motion.ReducedSpringConfig()
		}
		ctrl := drawer.New(drawer.Options{
			Size:             drawer.Size{Width: float64(demoCols), Height: float64(demoRows)},
			Spring:           spring,
			DecelerationRate: cfg.Drawer.DecelerationRate,
			Immediate:        cfg.UI.MotionLevel == "off",
		})
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s: %s\n", s.Name, s.Description)
		for i, f := range m.Run(ctrl, s) {
			fmt.Fprintln(out, devtools.FormatFrame(i, f))
		}
		return nil
	},
}

func init() {
	demoCmd.Flags().IntVar(&demoCols, "cols", 100, "container width in cells")
	demoCmd.Flags().IntVar(&demoRows, "rows", 30, "container height in cells")
	rootCmd.AddCommand(demoCmd)
}
