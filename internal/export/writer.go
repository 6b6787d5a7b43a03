package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/vovakirdan/levelgen/internal/export/formats" // Register built-in formats
	"github.com/vovakirdan/levelgen/internal/levelgen"
	"github.com/vovakirdan/levelgen/internal/registry"
)

// DefaultNamePattern names artifacts level1.json, level2.json, ...
const DefaultNamePattern = "level%d"

// ArtifactWriter writes one artifact file per level into a directory.
type ArtifactWriter struct {
	dir     string
	pattern string
	codec   registry.Codec
}

// NewArtifactWriter creates a writer for the given directory, file name
// pattern (one %d verb for the level number) and format ID.
func NewArtifactWriter(dir, pattern, format string) (*ArtifactWriter, error) {
	if pattern == "" {
		pattern = DefaultNamePattern
	}
	if strings.Count(pattern, "%d") != 1 || strings.Count(pattern, "%") != 1 {
		return nil, fmt.Errorf("export: name pattern %q must contain exactly one %%d", pattern)
	}
	if strings.ContainsRune(pattern, os.PathSeparator) {
		return nil, fmt.Errorf("export: name pattern %q must not contain a path separator", pattern)
	}

	codec, err := registry.Create(format)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	return &ArtifactWriter{dir: dir, pattern: pattern, codec: codec}, nil
}

// Dir returns the output directory.
func (w *ArtifactWriter) Dir() string {
	return w.dir
}

// Format returns the format ID of written artifacts.
func (w *ArtifactWriter) Format() string {
	return w.codec.ID()
}

// Path returns the file path of a level's artifact.
func (w *ArtifactWriter) Path(level int) string {
	name := fmt.Sprintf(w.pattern, level) + w.codec.Extensions()[0]
	return filepath.Join(w.dir, name)
}

// Write stores the artifact of one level and returns its path.
// Failures are reported as levelgen.ErrSinkWrite for that level.
func (w *ArtifactWriter) Write(spec levelgen.LevelSpec) (string, error) {
	path := w.Path(spec.Level)
	artifact := FromSpec(spec)

	err := writeFileAtomic(path, func(out io.Writer) error {
		return w.codec.Encode(out, artifact)
	})
	if err != nil {
		return "", levelgen.WrapSinkWrite(spec.Level, "write artifact", err)
	}
	return path, nil
}

// Encode writes the artifact of one level to out in the writer's format.
func (w *ArtifactWriter) Encode(out io.Writer, spec levelgen.LevelSpec) error {
	return w.codec.Encode(out, FromSpec(spec))
}

// Formats returns the IDs of all available artifact formats.
func Formats() []string {
	infos := registry.List()
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}
