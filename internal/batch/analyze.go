package batch

import (
	"github.com/hyperjump/vekta/internal/cluster"
	"github.com/hyperjump/vekta/internal/embedding"
	"github.com/hyperjump/vekta/internal/models"
	"github.com/hyperjump/vekta/internal/vector"
)

// Analyze vectorizes every input and clusters the concatenated vectors, in
// input order and text, graph, image order within an input.
func Analyze(embedder embedding.Embedder, engine *cluster.Engine, req *models.AnalyzeRequest) *models.AnalyzeResponse {
	resp := &models.AnalyzeResponse{Vectors: make([]*models.VectorizeResponse, 0, len(req.Inputs))}
	var all []vector.Vector
	for i := range req.Inputs {
		out := embedder.Vectorize(&req.Inputs[i])
		resp.Vectors = append(resp.Vectors, out)
		all = append(all, out.Vectors()...)
	}
	resp.Cluster = engine.Cluster(all)
	return resp
}
