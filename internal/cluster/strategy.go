package cluster

import (
	"math"

	"github.com/hyperjump/vekta/internal/vector"
)

// Strategy partitions a batch of non-empty vectors and returns one label per
// vector. Labels are indexes into the strategy's own centroid list.
type Strategy interface {
	Name() string
	Partition(vs []vector.Vector) []int
}

// ParityStrategy seeds two centroids from the even- and odd-indexed vectors and
// assigns every vector to the nearer one. It never iterates, so the result depends
// only on input order and values.
type ParityStrategy struct{}

// Name identifies the strategy in logs.
func (ParityStrategy) Name() string {
	return "parity"
}

// Partition labels each vector 0 or 1.
func (ParityStrategy) Partition(vs []vector.Vector) []int {
	centroids := ParityCentroids(vs)
	labels := make([]int, len(vs))
	for i, v := range vs {
		labels[i] = Nearest(v, centroids)
	}
	return labels
}

// ParityCentroids returns the means of the even-indexed and odd-indexed vectors.
// With fewer than two vectors both centroids are the mean of the even group.
func ParityCentroids(vs []vector.Vector) []vector.Vector {
	even := make([]vector.Vector, 0, (len(vs)+1)/2)
	odd := make([]vector.Vector, 0, len(vs)/2)
	for i, v := range vs {
		if i%2 == 0 {
			even = append(even, v)
		} else {
			odd = append(odd, v)
		}
	}
	if len(odd) == 0 {
		odd = even
	}
	return []vector.Vector{vector.Mean(even), vector.Mean(odd)}
}

// Nearest returns the index of the centroid closest to v. Ties go to the lower
// index; a distance that is NaN never wins.
func Nearest(v vector.Vector, centroids []vector.Vector) int {
	best := 0
	minDist := math.Inf(1)
	for i, c := range centroids {
		if d := vector.Euclidean(v, c); d < minDist {
			minDist = d
			best = i
		}
	}
	return best
}
