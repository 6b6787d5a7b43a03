// Package export writes generated levels to disk: one artifact file per
// level and an aggregate summary table for the whole run.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/levelgen/internal/levelgen"
)

// Artifact is the on-disk representation of one level.
// Field names are part of the file format consumed by the game client.
type Artifact struct {
	Level      int           `json:"Level" yaml:"Level"`
	Difficulty Difficulty    `json:"Difficulty" yaml:"Difficulty"`
	GridHeight int           `json:"GridHeight" yaml:"GridHeight"`
	GridWidth  int           `json:"GridWidth" yaml:"GridWidth"`
	Theme      string        `json:"Theme" yaml:"Theme"`
	Tiles      ArtifactTiles `json:"Tiles" yaml:"Tiles"`
	Time       int           `json:"Time" yaml:"Time"`
	Gravity    int           `json:"Gravity" yaml:"Gravity"`
	Circle     bool          `json:"Circle" yaml:"Circle"`
}

// ArtifactTiles is the tile budget section of an artifact.
type ArtifactTiles struct {
	TotalTiles  int         `json:"TotalTiles" yaml:"TotalTiles"`
	RocketTiles int         `json:"RocketTiles" yaml:"RocketTiles"`
	BombEffects int         `json:"BombEffects" yaml:"BombEffects"`
	NormalTiles map[int]int `json:"NormalTiles" yaml:"NormalTiles"`
}

// Difficulty is a difficulty value that always prints with a decimal
// point (5.0 rather than 5).
type Difficulty float64

// MarshalJSON implements json.Marshaler.
func (d Difficulty) MarshalJSON() ([]byte, error) {
	return []byte(FormatDifficulty(float64(d))), nil
}

// MarshalYAML implements yaml.Marshaler with the same text as MarshalJSON.
func (d Difficulty) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: FormatDifficulty(float64(d))}, nil
}

// FormatDifficulty formats a difficulty with at least one decimal.
func FormatDifficulty(d float64) string {
	s := strconv.FormatFloat(d, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// FromSpec converts a generated level to its artifact form.
func FromSpec(s levelgen.LevelSpec) Artifact {
	return Artifact{
		Level:      s.Level,
		Difficulty: Difficulty(s.Difficulty),
		GridHeight: s.GridHeight,
		GridWidth:  s.GridWidth,
		Theme:      s.Theme.String(),
		Tiles: ArtifactTiles{
			TotalTiles:  s.Tiles.TotalTiles,
			RocketTiles: s.Tiles.RocketTiles,
			BombEffects: s.Tiles.BombEffects,
			NormalTiles: s.Tiles.NormalTiles(),
		},
		Time:    s.Time,
		Gravity: s.Gravity,
		Circle:  s.Circle,
	}
}

// Spec converts an artifact back into a level.
func (a Artifact) Spec() (levelgen.LevelSpec, error) {
	theme, err := levelgen.ParseTheme(a.Theme)
	if err != nil {
		return levelgen.LevelSpec{}, fmt.Errorf("level %d: %w", a.Level, err)
	}

	return levelgen.LevelSpec{
		Level:      a.Level,
		Difficulty: float64(a.Difficulty),
		GridHeight: a.GridHeight,
		GridWidth:  a.GridWidth,
		Theme:      theme,
		Tiles: levelgen.NewTileBudget(
			a.Tiles.TotalTiles,
			a.Tiles.RocketTiles,
			a.Tiles.BombEffects,
			a.Tiles.NormalTiles,
		),
		Time:    a.Time,
		Gravity: a.Gravity,
		Circle:  a.Circle,
	}, nil
}

// NormalTilesSum returns the sum of the normal tile counts.
func (a Artifact) NormalTilesSum() int {
	sum := 0
	for _, c := range a.Tiles.NormalTiles {
		sum += c
	}
	return sum
}
