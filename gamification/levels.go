package gamification

// LevelThresholds maps cumulative weighted XP to levels. Index i is the
// minimum weighted XP for level i+1. The frontend renders progress from the
// same table; any change here must ship with the matching client constant.
var LevelThresholds = []int{0, 100, 300, 600, 1000, 1500, 2100, 2800, 3600, 5000}

// MaxLevel is the highest attainable level. Weighted XP beyond the last
// threshold does not level further.
var MaxLevel = len(LevelThresholds)

// LevelFor returns the 1-based level for a cumulative weighted XP total.
func LevelFor(weightedXP int) int {
	for i := len(LevelThresholds) - 1; i >= 0; i-- {
		if weightedXP >= LevelThresholds[i] {
			return i + 1
		}
	}
	return 1
}
