package levelgen

// DifficultyCycle is the length of the difficulty wave in levels.
const DifficultyCycle = 20

// MaxDifficulty is the peak of the difficulty wave.
const MaxDifficulty = DifficultyCycle / 4

// Difficulty returns the difficulty of a level.
// It rises by 0.5 per level to 5.0 at the middle of each 20-level cycle
// and falls back to 0.0 at its end.
func Difficulty(level int) float64 {
	pos := level % DifficultyCycle
	if pos <= DifficultyCycle/2 {
		return float64(pos) / 2.0
	}
	return float64(DifficultyCycle-pos) / 2.0
}

// TimeEstimate returns the time budget in seconds for a grid.
func TimeEstimate(height, width int) int {
	area := height * width
	switch {
	case area < 20:
		return 60
	case area < 40:
		return 90
	default:
		return 120
	}
}

// Gravity returns the gravity variant of a level, 0 meaning none.
// Early levels and easy levels never get gravity.
func Gravity(level int, difficulty float64, rng Rand) int {
	if level <= 5 {
		return 0
	}
	if difficulty < 2 {
		return 0
	}
	return 1 + rng.IntN(4)
}

// CircleModifier reports whether the circular board variant is enabled.
func CircleModifier(difficulty float64) bool {
	return difficulty >= MaxDifficulty
}
