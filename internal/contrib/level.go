// Package contrib builds the contribution calendar shown on a profile page,
// either from GitHub's contribution calendar or from a deterministic
// synthetic generator when no real data is available.
package contrib

import "fmt"

// Level is the visual intensity bucket of a day, from LevelNone to LevelMax.
type Level int

const (
	LevelNone   Level = iota // 0 contributions
	LevelLow                 // 1-3 contributions
	LevelMedium              // 4-6 contributions
	LevelHigh                // 7-9 contributions
	LevelMax                 // 10+ contributions
)

// Levels is the number of distinct intensity levels.
const Levels = int(LevelMax) + 1

// Classify maps a contribution count to an intensity level (0-4).
// The thresholds match GitHub's legend and must not change.
// Counts must be non-negative; a negative count is a programming error.
func Classify(count int) Level {
	switch {
	case count < 0:
		panic(fmt.Sprintf("contrib: negative contribution count %d", count))
	case count == 0:
		return LevelNone
	case count <= 3:
		return LevelLow
	case count <= 6:
		return LevelMedium
	case count <= 9:
		return LevelHigh
	default:
		return LevelMax
	}
}
