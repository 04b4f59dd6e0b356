package models

import "fmt"

// maxAnalyzeInputs caps the number of inputs accepted by one analyze request.
const maxAnalyzeInputs = 1000

// AnalyzeRequest vectorizes every input and clusters all resulting vectors.
type AnalyzeRequest struct {
	Inputs         []VectorizeRequest `json:"inputs"`
	MinClusterSize *float64           `json:"minClusterSize,omitempty"`
	MinSamples     *float64           `json:"minSamples,omitempty"`
}

// Validate rejects requests that exceed the input cap.
func (r *AnalyzeRequest) Validate() error {
	if len(r.Inputs) > maxAnalyzeInputs {
		return fmt.Errorf("too many inputs: %d (max %d)", len(r.Inputs), maxAnalyzeInputs)
	}
	return nil
}

// AnalyzeResponse pairs the per-input vectorize results with the cluster result
// over their concatenated vectors.
type AnalyzeResponse struct {
	Vectors []*VectorizeResponse `json:"vectors"`
	Cluster *ClusterResponse     `json:"cluster"`
}
