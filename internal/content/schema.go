package content

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	DocumentKind           = "slidemenu"
	SupportedSchemaVersion = 1

	defaultRows      = 20
	defaultRowFormat = "Row %d"
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,63}$`)

type Action string

const (
	ActionInfo  Action = "info"
	ActionStats Action = "stats"
	ActionAbout Action = "about"
	ActionQuit  Action = "quit"
)

// Document describes what the host shows behind and inside the drawer.
type Document struct {
	Kind          string     `yaml:"kind"`
	SchemaVersion int        `yaml:"schema_version"`
	Title         string     `yaml:"title"`
	Rows          int        `yaml:"rows"`
	RowFormat     string     `yaml:"row_format"`
	AboutMD       string     `yaml:"about_md"`
	Menu          []MenuItem `yaml:"menu"`

	Path string `yaml:"-"`
}

type MenuItem struct {
	ID            string `yaml:"id"`
	Label         string `yaml:"label"`
	Action        Action `yaml:"action"`
	DescriptionMD string `yaml:"description_md"`
}

func (d Document) Validate() error {
	if d.Kind != DocumentKind {
		return fmt.Errorf("kind must be %q", DocumentKind)
	}
	if d.SchemaVersion == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if d.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported schema_version %d (max supported %d)", d.SchemaVersion, SupportedSchemaVersion)
	}
	if d.Rows < 0 {
		return fmt.Errorf("rows must be >=0")
	}
	if d.RowFormat != "" && !strings.Contains(d.RowFormat, "%d") {
		return fmt.Errorf("row_format must contain %%d")
	}
	if len(d.Menu) == 0 {
		return fmt.Errorf("menu must have at least one item")
	}
	seen := map[string]struct{}{}
	for _, item := range d.Menu {
		if !idPattern.MatchString(item.ID) {
			return fmt.Errorf("invalid menu item id %q", item.ID)
		}
		if _, ok := seen[item.ID]; ok {
			return fmt.Errorf("duplicate menu item id %q", item.ID)
		}
		seen[item.ID] = struct{}{}
		if strings.TrimSpace(item.Label) == "" {
			return fmt.Errorf("menu item %q: label is required", item.ID)
		}
		switch item.Action {
		case "", ActionInfo, ActionStats, ActionAbout, ActionQuit:
		default:
			return fmt.Errorf("menu item %q: invalid action %q", item.ID, item.Action)
		}
	}
	return nil
}

func applyDefaults(d *Document) {
	if d.Rows == 0 {
		d.Rows = defaultRows
	}
	if d.RowFormat == "" {
		d.RowFormat = defaultRowFormat
	}
	if d.Title == "" {
		d.Title = "Inbox"
	}
	for i := range d.Menu {
		if d.Menu[i].Action == "" {
			d.Menu[i].Action = ActionInfo
		}
	}
}

// RowLabels renders the background list.
func (d Document) RowLabels() []string {
	out := make([]string, 0, d.Rows)
	for i := 0; i < d.Rows; i++ {
		out = append(out, fmt.Sprintf(d.RowFormat, i))
	}
	return out
}

func (d Document) Item(id string) (MenuItem, bool) {
	for _, item := range d.Menu {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}
