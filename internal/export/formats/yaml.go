package formats

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/levelgen/internal/registry"
)

func init() {
	registry.Register("yaml", func() registry.Codec { return YAMLCodec{} })
}

// YAMLCodec reads and writes YAML artifacts.
type YAMLCodec struct{}

func (YAMLCodec) ID() string { return "yaml" }

func (YAMLCodec) Extensions() []string { return []string{".yaml", ".yml"} }

func (YAMLCodec) Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return nil
}

func (YAMLCodec) Decode(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	return nil
}
