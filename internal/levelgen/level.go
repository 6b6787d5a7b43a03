// Package levelgen derives tile-matching puzzle levels from a level number.
//
// Generation is a pipeline: level -> difficulty -> grid size -> theme ->
// tile budget -> time -> gravity -> circle modifier. Each stage only reads
// the outputs of earlier stages. Randomness comes from an injected Rand so
// the same source always produces the same level.
package levelgen

import (
	"maps"
	"slices"
)

// TileBudget is the content allocation of one level.
type TileBudget struct {
	TotalTiles  int
	RocketTiles int
	BombEffects int

	normal map[int]int
}

// NewTileBudget builds a budget from its parts. The distribution is copied.
func NewTileBudget(total, rockets, bombs int, normal map[int]int) TileBudget {
	return TileBudget{
		TotalTiles:  total,
		RocketTiles: rockets,
		BombEffects: bombs,
		normal:      maps.Clone(normal),
	}
}

// NormalTiles returns a copy of the tile type -> count distribution.
func (b TileBudget) NormalTiles() map[int]int {
	return maps.Clone(b.normal)
}

// NormalTilesSum returns the number of normal tiles over all types.
func (b TileBudget) NormalTilesSum() int {
	sum := 0
	for _, count := range b.normal {
		sum += count
	}
	return sum
}

// TileTypes returns the tile type ids in ascending order.
func (b TileBudget) TileTypes() []int {
	return slices.Sorted(maps.Keys(b.normal))
}

// Count returns the number of tiles of one type.
func (b TileBudget) Count(tileType int) int {
	return b.normal[tileType]
}

// LevelSpec is a fully derived level.
type LevelSpec struct {
	Level      int
	Difficulty float64
	GridHeight int
	GridWidth  int
	Theme      Theme
	Tiles      TileBudget
	Time       int // seconds
	Gravity    int
	Circle     bool
}

// Area returns the number of cells on the board.
func (s LevelSpec) Area() int {
	return s.GridHeight * s.GridWidth
}

// Generate derives the level with the given number, drawing all random
// choices from rng.
func Generate(level int, rng Rand) (LevelSpec, error) {
	if level < 1 {
		return LevelSpec{}, InvalidLevelf(level, "level number must be positive")
	}

	difficulty := Difficulty(level)
	height, width := GridSize(level, difficulty, rng)
	theme := PickTheme(rng)

	tiles, err := allocateTiles(level, difficulty, height*width, rng)
	if err != nil {
		return LevelSpec{}, &LevelError{Level: level, Op: "allocate", Err: err}
	}

	return LevelSpec{
		Level:      level,
		Difficulty: difficulty,
		GridHeight: height,
		GridWidth:  width,
		Theme:      theme,
		Tiles:      tiles,
		Time:       TimeEstimate(height, width),
		Gravity:    Gravity(level, difficulty, rng),
		Circle:     CircleModifier(difficulty),
	}, nil
}

// allocateTiles computes specials and the normal tile distribution.
func allocateTiles(level int, difficulty float64, totalTiles int, rng Rand) (TileBudget, error) {
	rockets, bombs := Specials(level, difficulty, totalTiles)

	numTypes := NumTileTypes(level, difficulty)
	ids := make([]int, numTypes)
	for i := range ids {
		ids[i] = i
	}

	normal, err := DistributeNormalTiles(totalTiles-rockets, ids, rng)
	if err != nil {
		return TileBudget{}, err
	}

	return TileBudget{
		TotalTiles:  totalTiles,
		RocketTiles: rockets,
		BombEffects: bombs,
		normal:      normal,
	}, nil
}
