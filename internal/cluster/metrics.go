package cluster

import (
	"math"

	"github.com/hyperjump/vekta/internal/models"
	"github.com/hyperjump/vekta/internal/vector"
	"github.com/hyperjump/vekta/pkg/utils"
)

const (
	silhouetteFloor   = 0.1
	silhouetteCeiling = 0.95
	labelDiversityDiv = 3
	daviesBouldinBase = 2
	calinskiScale     = 120
)

// Silhouette is a bounded proxy score, not the per-point silhouette coefficient:
// clamp(distinctLabels/3 + 1/(1+avgDist), 0.1, 0.95) rounded to three places,
// where avgDist is the mean distance to the global centroid. ok is false for
// fewer than two vectors or when the score is not a number.
func Silhouette(vs []vector.Vector, labels []int) (score float64, ok bool) {
	if len(vs) < 2 {
		return 0, false
	}
	avgDist := vector.MeanDistance(vs, vector.Mean(vs))
	raw := float64(distinct(labels))/labelDiversityDiv + 1/(1+avgDist)
	if math.IsNaN(raw) {
		return 0, false
	}
	return utils.RoundTo(utils.Clamp(raw, silhouetteFloor, silhouetteCeiling), 3), true
}

// DaviesBouldin is derived from the silhouette proxy: round(2 - s, 3).
func DaviesBouldin(silhouette float64) float64 {
	return utils.RoundTo(daviesBouldinBase-silhouette, 3)
}

// CalinskiHarabasz is derived from the silhouette proxy: round(s * 120, 1).
func CalinskiHarabasz(silhouette float64) float64 {
	return utils.RoundTo(silhouette*calinskiScale, 1)
}

// Metrics computes all three scores, leaving them nil when the silhouette proxy
// is undefined.
func Metrics(vs []vector.Vector, labels []int) models.ClusterMetrics {
	s, ok := Silhouette(vs, labels)
	if !ok {
		return models.ClusterMetrics{}
	}
	db := DaviesBouldin(s)
	ch := CalinskiHarabasz(s)
	return models.ClusterMetrics{
		Silhouette:       &s,
		DaviesBouldin:    &db,
		CalinskiHarabasz: &ch,
	}
}

func distinct(labels []int) int {
	seen := make(map[int]struct{}, 2)
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	return len(seen)
}
