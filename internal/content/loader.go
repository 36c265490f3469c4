// Package content loads the YAML document describing the background list and
// the drawer's menu items.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDocument []byte

// Default returns the built-in document.
func Default() (Document, error) {
	return parse(defaultDocument)
}

// Load reads path, or the built-in document when path is empty.
func Load(path string) (Document, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	doc, err := parse(b)
	if err != nil {
		return Document{}, fmt.Errorf("load content %s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

func parse(b []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return doc, err
	}
	if err := doc.Validate(); err != nil {
		return doc, err
	}
	applyDefaults(&doc)
	return doc, nil
}
