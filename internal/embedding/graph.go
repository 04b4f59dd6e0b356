package embedding

import (
	"encoding/json"
	"math"

	"github.com/hyperjump/vekta/internal/vector"
	"github.com/hyperjump/vekta/pkg/utils"
)

const (
	graphNodeScale      = 12
	graphEdgeScale      = 20
	graphSaturation     = 40
	graphPlaceholder    = 0.12
	graphFallbackFiller = 0.05
)

// GraphKind tags the shape a graph input was parsed as.
type GraphKind int

const (
	// GraphInvalid is anything that is neither an edge list nor an object with an
	// edge list.
	GraphInvalid GraphKind = iota
	// GraphEdgeList is a bare JSON array of edges.
	GraphEdgeList
	// GraphObject is an object whose "edges" field is an edge list.
	GraphObject
)

func (k GraphKind) String() string {
	switch k {
	case GraphEdgeList:
		return "edge-list"
	case GraphObject:
		return "graph-object"
	default:
		return "invalid"
	}
}

// Edge connects two numeric node identifiers.
type Edge [2]float64

// Graph is a parsed graph input. Entries counts every element of the edge
// sequence, including elements that are not well-formed pairs; Edges holds only
// the well-formed pairs.
type Graph struct {
	Kind    GraphKind
	Edges   []Edge
	Entries int
}

// NewEdgeList builds a graph from well-formed edges.
func NewEdgeList(edges []Edge) Graph {
	return Graph{Kind: GraphEdgeList, Edges: edges, Entries: len(edges)}
}

// ParseGraph decodes raw JSON into a Graph. It never fails: undecodable input and
// unexpected shapes parse as GraphInvalid.
func ParseGraph(raw json.RawMessage) Graph {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Graph{Kind: GraphInvalid}
	}
	switch x := v.(type) {
	case []any:
		return parseEdgeList(x, GraphEdgeList)
	case map[string]any:
		if edges, ok := x["edges"].([]any); ok {
			return parseEdgeList(edges, GraphObject)
		}
	}
	return Graph{Kind: GraphInvalid}
}

func parseEdgeList(items []any, kind GraphKind) Graph {
	g := Graph{Kind: kind, Entries: len(items)}
	for _, item := range items {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			continue
		}
		g.Edges = append(g.Edges, Edge{utils.ToNumber(pair[0]), utils.ToNumber(pair[1])})
	}
	return g
}

// NodeCount returns the number of distinct endpoints. All NaN identifiers count
// as one node and -0 equals 0.
func (g Graph) NodeCount() int {
	nodes := make(map[float64]struct{}, len(g.Edges)*2)
	hasNaN := false
	for _, e := range g.Edges {
		for _, id := range e {
			if math.IsNaN(id) {
				hasNaN = true
				continue
			}
			nodes[id+0] = struct{}{}
		}
	}
	n := len(nodes)
	if hasNaN {
		n++
	}
	return n
}

// GraphEmbedding returns
// [nodes/12, edges/20, edges/nodes, min(1, edges/40), 0.12]
// for edge lists and graph objects, and [0.05 x5] for invalid input.
func GraphEmbedding(g Graph) vector.Vector {
	if g.Kind == GraphInvalid {
		return vector.Fill(Dimensions, graphFallbackFiller)
	}
	edges := float64(g.Entries)
	nodes := float64(g.NodeCount())
	density := 0.0
	if nodes > 0 {
		density = edges / nodes
	}
	return vector.Vector{
		nodes / graphNodeScale,
		edges / graphEdgeScale,
		density,
		math.Min(1, edges/graphSaturation),
		graphPlaceholder,
	}
}
