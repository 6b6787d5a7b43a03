// Package formats provides pluggable artifact file formats.
// Each format registers itself with the registry on import.
package formats

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vovakirdan/levelgen/internal/registry"
)

// JSONIndent is the indentation of JSON artifacts.
const JSONIndent = "    "

func init() {
	registry.Register("json", func() registry.Codec { return JSONCodec{} })
}

// JSONCodec reads and writes indented JSON artifacts.
type JSONCodec struct{}

func (JSONCodec) ID() string { return "json" }

func (JSONCodec) Extensions() []string { return []string{".json"} }

// Encode writes v as indented JSON followed by a newline.
func (JSONCodec) Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", JSONIndent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func (JSONCodec) Decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}
