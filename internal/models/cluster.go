package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hyperjump/vekta/internal/vector"
)

// ClusterRequest is the input of the cluster operation. Vectors stays raw until
// ParseVectors so that non-array entries can be discarded rather than rejected.
type ClusterRequest struct {
	Vectors json.RawMessage `json:"vectors"`
	// MinClusterSize is accepted for forward compatibility and ignored.
	MinClusterSize *float64 `json:"minClusterSize,omitempty"`
	// MinSamples is accepted for forward compatibility and ignored.
	MinSamples *float64 `json:"minSamples,omitempty"`
}

// NewClusterRequest builds a request from already parsed vectors.
func NewClusterRequest(vs []vector.Vector) (*ClusterRequest, error) {
	if vs == nil {
		vs = []vector.Vector{}
	}
	raw, err := json.Marshal(vs)
	if err != nil {
		return nil, fmt.Errorf("encode vectors: %w", err)
	}
	return &ClusterRequest{Vectors: raw}, nil
}

// ParseVectors decodes the vectors field. A missing or null field is an empty
// batch. A field that is not an array, or a vector with a non-numeric component,
// is an error. Entries that are not arrays are skipped; empty arrays are kept and
// left for the engine to discard.
func (r *ClusterRequest) ParseVectors() ([]vector.Vector, error) {
	raw := bytes.TrimSpace(r.Vectors)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []vector.Vector{}, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("vectors must be an array of number arrays")
	}
	out := make([]vector.Vector, 0, len(entries))
	for i, entry := range entries {
		entry = bytes.TrimSpace(entry)
		if len(entry) == 0 || entry[0] != '[' {
			continue
		}
		var v vector.Vector
		if err := json.Unmarshal(entry, &v); err != nil {
			return nil, fmt.Errorf("vectors[%d] must contain only numbers", i)
		}
		out = append(out, v)
	}
	return out, nil
}

// ClusterSummary describes one cluster by label and member count.
type ClusterSummary struct {
	ID   int `json:"id"`
	Size int `json:"size"`
}

// ClusterMetrics holds the quality scores. A nil field means the score is
// undefined for the batch.
type ClusterMetrics struct {
	Silhouette       *float64 `json:"silhouette"`
	DaviesBouldin    *float64 `json:"daviesBouldin"`
	CalinskiHarabasz *float64 `json:"calinskiHarabasz"`
}

// ClusterResponse is the output of the cluster operation.
type ClusterResponse struct {
	Labels     []int            `json:"labels"`
	Clusters   []ClusterSummary `json:"clusters"`
	NoiseCount int              `json:"noiseCount"`
	Metrics    ClusterMetrics   `json:"metrics"`
}

// EmptyClusterResponse is the result for a batch with no usable vectors.
func EmptyClusterResponse() *ClusterResponse {
	return &ClusterResponse{
		Labels:   []int{},
		Clusters: []ClusterSummary{},
	}
}
