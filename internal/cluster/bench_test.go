package cluster

import (
	"testing"

	"github.com/hyperjump/vekta/internal/vector"
)

func BenchmarkEngineCluster(b *testing.B) {
	vs := make([]vector.Vector, 1000)
	for i := range vs {
		vs[i] = vector.Vector{float64(i) / 1000, float64(i%7) / 7, 0.2, 0.18, float64(i%3) / 3}
	}
	e := NewEngine()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Cluster(vs)
	}
}

func BenchmarkNearest(b *testing.B) {
	centroids := []vector.Vector{{0.1, 0.2, 0.3, 0.4, 0.5}, {0.9, 0.8, 0.7, 0.6, 0.5}}
	v := vector.Vector{0.5, 0.5, 0.5, 0.5, 0.5}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Nearest(v, centroids)
	}
}
