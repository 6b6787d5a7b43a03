package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/levelgen/internal/levelgen"
	"github.com/vovakirdan/levelgen/internal/registry"
)

// ReadArtifact loads an artifact file, choosing the format by extension.
func ReadArtifact(path string) (Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	codec, err := registry.ForExtension(filepath.Ext(path))
	if err != nil {
		return Artifact{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	var a Artifact
	if err := codec.Decode(data, &a); err != nil {
		return Artifact{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return a, nil
}

// ReadSpec loads an artifact file and converts it into a level.
func ReadSpec(path string) (levelgen.LevelSpec, error) {
	a, err := ReadArtifact(path)
	if err != nil {
		return levelgen.LevelSpec{}, err
	}
	return a.Spec()
}
