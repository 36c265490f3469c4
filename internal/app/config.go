package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"slidemenu/internal/motion"
	"slidemenu/internal/ui"

	"github.com/caarlos0/env/v11"
)

const EnvPrefix = "SLIDEMENU_"

// Config controls runtime behavior for the TUI app.
type Config struct {
	Dev          bool   `env:"DEV"`
	DevHTTP      string `env:"DEV_HTTP"`
	LogPath      string `env:"LOG"`
	Debug        bool   `env:"DEBUG"`
	DemoScenario string `env:"DEMO"`
	ASCIIOnly    bool   `env:"ASCII"`
	DataDir      string `env:"DATA_DIR"`
	ContentPath  string `env:"CONTENT"`
	UI           UIConfig
	Drawer       DrawerConfig
}

type UIConfig struct {
	StyleVariant string `env:"STYLE"`
	MotionLevel  string `env:"MOTION"`
	MouseScope   string `env:"MOUSE"`
}

type DrawerConfig struct {
	DecelerationRate float64 `env:"DECELERATION_RATE"`
	EdgeMargin       float64 `env:"EDGE_MARGIN"`
	NoStore          bool    `env:"NO_STORE"`
}

func DefaultConfig() Config {
	return Config{
		DevHTTP: "127.0.0.1:17322",
		UI: UIConfig{
			StyleVariant: "modern_arcade",
			MotionLevel:  "full",
			MouseScope:   "scoped",
		},
		Drawer: DrawerConfig{
			DecelerationRate: motion.DecelerationRateFast,
			EdgeMargin:       ui.DefaultEdgeMargin,
		},
	}
}

// LoadEnv overlays SLIDEMENU_* variables onto c. Unset variables leave
// fields untouched.
func LoadEnv(c *Config) error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.UI.StyleVariant {
	case "", "modern_arcade", "cozy_clean", "retro_terminal":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "modern_arcade"
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}
	switch c.UI.MouseScope {
	case "", "off", "scoped", "full":
	default:
		return fmt.Errorf("invalid ui mouse scope %q", c.UI.MouseScope)
	}
	if c.UI.MouseScope == "" {
		c.UI.MouseScope = "scoped"
	}

	if c.Drawer.DecelerationRate == 0 {
		c.Drawer.DecelerationRate = motion.DecelerationRateFast
	}
	if err := motion.ValidateDecelerationRate(c.Drawer.DecelerationRate); err != nil {
		return fmt.Errorf("invalid deceleration rate: %w", err)
	}
	if c.Drawer.EdgeMargin < 0 {
		return fmt.Errorf("invalid edge margin %v", c.Drawer.EdgeMargin)
	}
	if c.Dev && c.DevHTTP == "" {
		return errors.New("dev mode requires a dev http address")
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "slidemenu")
	}

	return nil
}
