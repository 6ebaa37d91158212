package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlCell struct {
	Name   string `yaml:"name"`
	Offset int    `yaml:"offset"`
	Role   string `yaml:"role"`
}

type yamlWorkspace struct {
	Prefix string `yaml:"prefix"`
	Base   int    `yaml:"base"`
	Slots  int    `yaml:"slots"`
}

type yamlLayout struct {
	Name      string         `yaml:"name"`
	Cells     []yamlCell     `yaml:"cells"`
	Workspace *yamlWorkspace `yaml:"workspace"`
}

// ParseYAML builds a layout from a YAML document of the form
//
//	name: shifted
//	cells:
//	  - {name: loop, offset: 10, role: loop-flag}
//	  ...
//	workspace: {prefix: ws, base: 20, slots: 9}
//
// Workspace cells may also be listed individually under cells with the
// workspace role.
func ParseYAML(data []byte) (*Layout, error) {
	var doc yamlLayout
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	b := Builder{}
	for _, c := range doc.Cells {
		role, err := ParseRole(c.Role)
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", c.Name, err)
		}
		b = b.WithCell(c.Name, c.Offset, role)
	}

	if ws := doc.Workspace; ws != nil {
		prefix := ws.Prefix
		if prefix == "" {
			prefix = "ws"
		}
		b = b.WithWorkspace(prefix, ws.Base, ws.Slots)
	}

	name := doc.Name
	if name == "" {
		name = "unnamed"
	}

	return b.Build(name)
}

// LoadFromYAML reads and parses a layout file.
func LoadFromYAML(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}

	return ParseYAML(data)
}
