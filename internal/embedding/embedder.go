// Package embedding turns raw text, graph and image inputs into fixed-length
// feature vectors with deterministic heuristics. Every function here is total:
// malformed input yields a fallback vector, never an error.
package embedding

import (
	"github.com/hyperjump/vekta/internal/models"
	"github.com/hyperjump/vekta/internal/vector"
)

// Dimensions is the length of every vector produced by this package.
const Dimensions = 5

// Embedder produces feature vectors for vectorize requests.
type Embedder interface {
	Vectorize(req *models.VectorizeRequest) *models.VectorizeResponse
	Dimensions() int
}

// HeuristicEmbedder is the stateless Embedder backed by TextEmbedding,
// GraphEmbedding and ImageEmbedding. The zero value is ready to use.
type HeuristicEmbedder struct{}

// NewHeuristicEmbedder returns a HeuristicEmbedder.
func NewHeuristicEmbedder() *HeuristicEmbedder {
	return &HeuristicEmbedder{}
}

// Vectorize extracts one vector per modality present in req.
func (e *HeuristicEmbedder) Vectorize(req *models.VectorizeRequest) *models.VectorizeResponse {
	resp := &models.VectorizeResponse{}
	if req == nil {
		return resp
	}
	if req.HasText() {
		resp.Text = []vector.Vector{TextEmbedding(req.Text)}
	}
	if req.HasGraph() {
		resp.Graph = []vector.Vector{GraphEmbedding(ParseGraph(req.Graph))}
	}
	if req.HasImage() {
		resp.Image = []vector.Vector{ImageEmbedding(req.ImageBase64)}
	}
	return resp
}

// Dimensions returns the vector length.
func (e *HeuristicEmbedder) Dimensions() int {
	return Dimensions
}
