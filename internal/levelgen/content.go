package levelgen

import (
	"fmt"
	"math"
)

// Tile type bounds.
const (
	MinTileTypes = 3
	MaxTileTypes = 8
)

// Special tile limits.
const (
	maxSpecialTiles = 8
	maxBombEffects  = 10
	maxRocketRatio  = 0.4
	maxBombRatio    = 0.5
)

// NumTileTypes returns how many distinct tile types a level uses.
func NumTileTypes(level int, difficulty float64) int {
	var types int
	switch {
	case level <= 5:
		types = 3
	case level <= 15:
		types = 4
	case level <= 30:
		types = 5
	case level <= 50:
		types = 6
	case level <= 75:
		types = 7
	default:
		types = 8
	}

	types += int(difficulty * 0.5)

	switch phase := level % 10; {
	case phase <= 2:
		types--
	case phase >= 8:
		types++
	}

	return clamp(types, MinTileTypes, MaxTileTypes)
}

// Specials returns the number of rocket tiles and bomb effects of a level.
// Rocket tiles are taken out of the tile budget and always come in pairs;
// bombs are effects layered on normal tiles.
func Specials(level int, difficulty float64, totalTiles int) (rockets, bombs int) {
	maxSpecials := min(totalTiles/4, maxSpecialTiles)

	rocketRatio := math.Min(maxRocketRatio, 0.2+0.05*difficulty+math.Min(0.1, float64(level)*0.001))
	rockets = max(0, roundHalfEven(float64(maxSpecials)*rocketRatio))
	if rockets%2 != 0 {
		rockets = max(0, rockets-1)
	}

	bombRatio := 0.1 + 0.06*difficulty
	if level > 50 {
		bombRatio += 0.05
	}
	bombRatio = math.Min(bombRatio, maxBombRatio)

	maxBombs := min((totalTiles-rockets)/4, maxBombEffects)
	bombs = roundHalfEven(float64(maxBombs) * bombRatio)
	if level < 4 {
		bombs = 0
	}

	return rockets, bombs
}

// DistributeNormalTiles splits a budget of normal tiles over the given
// tile types. Every count is even and the counts sum to remaining.
//
// Each type gets one pair when the budget allows. Pairs left over after an
// equal split go to randomly chosen types, at most one extra pair each.
// When the budget is smaller than one pair per type, pairs are handed out
// in id order and the remaining types get none.
func DistributeNormalTiles(remaining int, ids []int, rng Rand) (map[int]int, error) {
	n := len(ids)
	if n == 0 {
		return nil, fmt.Errorf("%w: no tile types", ErrInvalidInput)
	}
	if remaining < 0 || remaining%2 != 0 {
		return nil, fmt.Errorf("%w: tile budget %d is not a non-negative even number", ErrInvalidInput, remaining)
	}

	pairs := make([]int, n)
	baseTiles := 2 * n

	if remaining < baseTiles {
		for i := 0; i < remaining/2; i++ {
			pairs[i] = 1
		}
	} else {
		extraPairs := (remaining - baseTiles) / 2
		perType := 1 + extraPairs/n
		for i := range pairs {
			pairs[i] = perType
		}
		for _, i := range sampleIndices(n, extraPairs%n, rng) {
			pairs[i]++
		}
	}

	distribution := make(map[int]int, n)
	for i, id := range ids {
		if _, dup := distribution[id]; dup {
			return nil, fmt.Errorf("%w: duplicate tile type %d", ErrInvalidInput, id)
		}
		distribution[id] = pairs[i] * 2
	}
	return distribution, nil
}

// sampleIndices picks k distinct indices from [0, n) uniformly
// using a partial Fisher-Yates shuffle.
func sampleIndices(n, k int, rng Rand) []int {
	if k <= 0 {
		return nil
	}
	k = min(k, n)
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// roundHalfEven rounds to the nearest integer, ties to even.
func roundHalfEven(x float64) int {
	return int(math.RoundToEven(x))
}
