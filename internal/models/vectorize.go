// Package models defines the request and response shapes of the vectorize and
// cluster operations.
package models

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/hyperjump/vekta/internal/vector"
)

// VectorizeRequest carries at most one raw input per modality.
type VectorizeRequest struct {
	Text        string          `json:"text,omitempty"`
	Graph       json.RawMessage `json:"graph,omitempty"`
	ImageBase64 string          `json:"imageBase64,omitempty"`
}

// UnmarshalJSON decodes a request object. Text and imageBase64 values that are
// not strings are treated as absent; graph is kept raw whatever its type.
func (r *VectorizeRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return errors.New("request must be a JSON object")
	}
	*r = VectorizeRequest{
		Text:        stringField(fields["text"]),
		Graph:       fields["graph"],
		ImageBase64: stringField(fields["imageBase64"]),
	}
	return nil
}

func stringField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// HasText reports whether a text input was supplied. Empty text counts as absent.
func (r *VectorizeRequest) HasText() bool {
	return r.Text != ""
}

// HasImage reports whether an image payload was supplied.
func (r *VectorizeRequest) HasImage() bool {
	return r.ImageBase64 != ""
}

// HasGraph reports whether a graph input was supplied. Absent fields and the JSON
// values null, false, 0 and "" count as absent; any other value, including an
// invalid graph shape, is present.
func (r *VectorizeRequest) HasGraph() bool {
	raw := bytes.TrimSpace(r.Graph)
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	}
	return true
}

// Empty reports whether no modality is present.
func (r *VectorizeRequest) Empty() bool {
	return !r.HasText() && !r.HasGraph() && !r.HasImage()
}

// VectorizeResponse holds one vector list per modality present in the request.
type VectorizeResponse struct {
	Text  []vector.Vector `json:"text,omitempty"`
	Graph []vector.Vector `json:"graph,omitempty"`
	Image []vector.Vector `json:"image,omitempty"`
}

// Vectors returns every vector in the response in text, graph, image order.
func (r *VectorizeResponse) Vectors() []vector.Vector {
	out := make([]vector.Vector, 0, len(r.Text)+len(r.Graph)+len(r.Image))
	out = append(out, r.Text...)
	out = append(out, r.Graph...)
	out = append(out, r.Image...)
	return out
}
