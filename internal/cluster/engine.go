// Package cluster partitions batches of vectors into centroid-defined groups and
// reports quality metrics for the partition. Engines hold no mutable state; every
// call recomputes centroids, labels and metrics from its input.
package cluster

import (
	"github.com/hyperjump/vekta/internal/models"
	"github.com/hyperjump/vekta/internal/vector"
)

// Engine runs a partition strategy and summarizes its result.
type Engine struct {
	strategy Strategy
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithStrategy replaces the default parity strategy.
func WithStrategy(s Strategy) EngineOption {
	return func(e *Engine) {
		if s != nil {
			e.strategy = s
		}
	}
}

// NewEngine returns an engine using ParityStrategy unless overridden.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{strategy: ParityStrategy{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strategy returns the partition strategy in use.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Cluster labels every non-empty vector in vs, summarizes the clusters in
// first-seen label order and computes metrics. Empty vectors are dropped before
// labelling, so labels align with the filtered batch.
func (e *Engine) Cluster(vs []vector.Vector) *models.ClusterResponse {
	batch := nonEmpty(vs)
	if len(batch) == 0 {
		return models.EmptyClusterResponse()
	}

	labels := e.strategy.Partition(batch)
	return &models.ClusterResponse{
		Labels:     labels,
		Clusters:   Summarize(labels),
		NoiseCount: 0,
		Metrics:    Metrics(batch, labels),
	}
}

// Summarize counts members per label, ordered by each label's first appearance.
func Summarize(labels []int) []models.ClusterSummary {
	index := make(map[int]int)
	summaries := make([]models.ClusterSummary, 0, 2)
	for _, label := range labels {
		i, ok := index[label]
		if !ok {
			i = len(summaries)
			index[label] = i
			summaries = append(summaries, models.ClusterSummary{ID: label})
		}
		summaries[i].Size++
	}
	return summaries
}

func nonEmpty(vs []vector.Vector) []vector.Vector {
	out := make([]vector.Vector, 0, len(vs))
	for _, v := range vs {
		if len(v) > 0 {
			out = append(out, v)
		}
	}
	return out
}
