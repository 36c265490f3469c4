package devtools

import (
	"context"

	"slidemenu/internal/drawer"
)

type Demo interface {
	Resolve(name string) Scenario
	Names() []string
	Run(ctrl *drawer.Controller, s Scenario) []drawer.Frame
	Apply(ctrl *drawer.Controller, name string) Scenario
	SetState(ctx context.Context, dir string, state DevState) error
}

// DevState is written to dev_state.json for external harnesses.
type DevState struct {
	Demo     string  `json:"demo"`
	State    string  `json:"state"`
	Progress float64 `json:"progress"`
	Rendered bool    `json:"rendered"`
}
