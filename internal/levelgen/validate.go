package levelgen

import (
	"errors"
	"fmt"
)

// ErrInvariant is returned by Validate for a level that breaks a
// generation invariant.
var ErrInvariant = errors.New("invariant violated")

// Validate checks a level against the invariants every generated level
// satisfies. It is used on levels read back from disk.
func Validate(s LevelSpec) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...)))
	}

	if s.Level < 1 {
		fail("level %d is not positive", s.Level)
	}
	if s.Difficulty < 0 || s.Difficulty > MaxDifficulty {
		fail("difficulty %.1f outside [0,%d]", s.Difficulty, MaxDifficulty)
	}
	if s.Level >= 1 && s.Difficulty != Difficulty(s.Level) {
		fail("difficulty %.1f does not match level (want %.1f)", s.Difficulty, Difficulty(s.Level))
	}
	if s.GridHeight < MinGridHeight || s.GridHeight > MaxGridHeight {
		fail("grid height %d outside [%d,%d]", s.GridHeight, MinGridHeight, MaxGridHeight)
	}
	if s.GridWidth < MinGridWidth || s.GridWidth > MaxGridWidth {
		fail("grid width %d outside [%d,%d]", s.GridWidth, MinGridWidth, MaxGridWidth)
	}
	if s.Area()%2 != 0 {
		fail("grid %dx%d has an odd number of tiles", s.GridHeight, s.GridWidth)
	}
	if !s.Theme.Valid() {
		fail("unknown theme %q", s.Theme)
	}

	t := s.Tiles
	if t.TotalTiles != s.Area() {
		fail("total tiles %d != grid area %d", t.TotalTiles, s.Area())
	}
	if t.RocketTiles < 0 || t.RocketTiles%2 != 0 || t.RocketTiles > t.TotalTiles {
		fail("rocket tiles %d must be even and within [0,%d]", t.RocketTiles, t.TotalTiles)
	}
	if t.BombEffects < 0 {
		fail("bomb effects %d is negative", t.BombEffects)
	}
	if s.Level < 4 && t.BombEffects != 0 {
		fail("bomb effects %d before level 4", t.BombEffects)
	}
	for _, id := range t.TileTypes() {
		if c := t.Count(id); c < 0 || c%2 != 0 {
			fail("tile type %d has odd or negative count %d", id, c)
		}
	}
	if sum := t.NormalTilesSum(); sum != t.TotalTiles-t.RocketTiles {
		fail("normal tiles sum %d != %d", sum, t.TotalTiles-t.RocketTiles)
	}

	if want := TimeEstimate(s.GridHeight, s.GridWidth); s.Time != want {
		fail("time %d does not match grid (want %d)", s.Time, want)
	}
	if s.Gravity < 0 || s.Gravity > 4 {
		fail("gravity %d outside [0,4]", s.Gravity)
	}
	if (s.Level <= 5 || s.Difficulty < 2) && s.Gravity != 0 {
		fail("gravity %d on an early or easy level", s.Gravity)
	}
	if s.Circle != CircleModifier(s.Difficulty) {
		fail("circle modifier %v does not match difficulty %.1f", s.Circle, s.Difficulty)
	}

	return errors.Join(errs...)
}
