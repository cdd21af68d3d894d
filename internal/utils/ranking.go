package utils

import (
	"math"
	"time"
)

type RankConfig struct {
	Gravity        float64 // time gravity
	WeightFavorite float64
	WeightComment  float64
	WeightPoint    float64
	ScaleFactor    float64
}

var DefaultConfig = RankConfig{
	Gravity:        1.8,
	WeightFavorite: 3.0,
	WeightComment:  2.0,
	WeightPoint:    1.0,
	ScaleFactor:    100.0, // keep scores in a 0-100 band
}

// CalculateScore derives an item's ranking score from its points, favorite
// and comment counts, decayed by age. Log smoothing keeps a burst of votes
// from dominating; (hours+2)^gravity is the Hacker News style decay.
func CalculateScore(created time.Time, points, favorites, comments int) float64 {
	hours := time.Since(created).Hours()

	weightedSum := float64(points)*DefaultConfig.WeightPoint +
		float64(comments)*DefaultConfig.WeightComment +
		float64(favorites)*DefaultConfig.WeightFavorite

	if weightedSum < 0 {
		weightedSum = 0 // heavily downvoted items rank as zero, not NaN
	}

	numerator := math.Log10(weightedSum+1) * DefaultConfig.ScaleFactor
	decay := math.Pow(hours+2, DefaultConfig.Gravity)

	return numerator / decay
}
