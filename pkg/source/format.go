package source

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Format identifies the document encoding of a translation source.
type Format int

const (
	// JSON matches .json documents.
	JSON Format = iota
	// YAML matches .yaml and .yml documents.
	YAML
)

// Extension returns the primary file extension for the format,
// including the dot.
func (f Format) Extension() string {
	if f == YAML {
		return ".yaml"
	}
	return ".json"
}

// extensions returns every extension the format matches, primary first.
func (f Format) extensions() []string {
	if f == YAML {
		return []string{".yaml", ".yml"}
	}
	return []string{".json"}
}

func (f Format) unmarshal(data []byte, v any) error {
	if f == YAML {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}
