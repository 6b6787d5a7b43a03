package levelgen

// Grid bounds. The per-level maximum grows with the level number up to
// MaxGridHeight x MaxGridWidth.
const (
	MinGridHeight = 3
	MaxGridHeight = 8
	MinGridWidth  = 4
	MaxGridWidth  = 12
)

// jitterProbability is the chance that a grid gets a random +0/+1 per side.
const jitterProbability = 0.3

// GridSize derives the board dimensions of a level.
// The returned height*width is always even.
func GridSize(level int, difficulty float64, rng Rand) (height, width int) {
	baseHeight := MinGridHeight + int(difficulty*0.8)
	baseWidth := MinGridWidth + int(difficulty*0.8)

	heightAdj, widthAdj := milestoneAdjustment(level)

	switch phase := level % 10; {
	case phase <= 2:
		heightAdj -= 0.3
		widthAdj -= 0.2
	case phase >= 7:
		heightAdj += 0.3
		widthAdj += 0.5
	}

	height = int(float64(baseHeight) + heightAdj)
	width = int(float64(baseWidth) + widthAdj)

	if rng.Float64() < jitterProbability {
		height += rng.IntN(2)
		width += rng.IntN(2)
	}

	maxHeight, maxWidth := gridLimits(level)
	height = clamp(height, MinGridHeight, maxHeight)
	width = clamp(width, MinGridWidth, maxWidth)

	return evenTiles(height, width, maxHeight, maxWidth, rng)
}

// milestoneAdjustment grows boards every 20 levels past level 20.
func milestoneAdjustment(level int) (height, width float64) {
	switch {
	case level > 80:
		return 2, 2
	case level > 60:
		return 1.5, 1.5
	case level > 40:
		return 1, 1
	case level > 20:
		return 0.5, 0.5
	default:
		return 0, 0
	}
}

// gridLimits returns the largest board allowed for a level.
func gridLimits(level int) (maxHeight, maxWidth int) {
	return min(MaxGridHeight, 6+level/25), min(MaxGridWidth, 8+level/20)
}

// evenTiles adjusts the grid until it holds an even number of tiles,
// growing first and shrinking the dominant side once both are at max.
func evenTiles(height, width, maxHeight, maxWidth int, rng Rand) (int, int) {
	for height*width%2 != 0 {
		switch {
		case width < maxWidth:
			width++
		case height < maxHeight:
			height++
		case width > height+2:
			width = max(MinGridWidth, width-1)
		case height > width+1:
			height = max(MinGridHeight, height-1)
		case rng.IntN(2) == 0:
			width = max(MinGridWidth, width-1)
		default:
			height = max(MinGridHeight, height-1)
		}
	}
	return height, width
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
