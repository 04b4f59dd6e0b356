package embedding

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/vekta/internal/models"
)

func BenchmarkTextEmbedding(b *testing.B) {
	text := strings.Repeat("benchmark query text for embedding ", 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = TextEmbedding(text)
	}
}

func BenchmarkGraphEmbedding(b *testing.B) {
	edges := make([][2]int, 500)
	for i := range edges {
		edges[i] = [2]int{i, (i * 7) % 500}
	}
	raw, _ := json.Marshal(map[string]any{"edges": edges})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GraphEmbedding(ParseGraph(raw))
	}
}

func BenchmarkImageEmbedding(b *testing.B) {
	data := make([]byte, 64<<10)
	for i := range data {
		data[i] = byte(i)
	}
	uri := EncodeDataURI("image/png", data)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ImageEmbedding(uri)
	}
}

func BenchmarkVectorize(b *testing.B) {
	e := NewHeuristicEmbedder()
	req := &models.VectorizeRequest{
		Text:        "benchmark query text for embedding",
		Graph:       json.RawMessage(`[[1,2],[2,3],[3,4]]`),
		ImageBase64: "data:image/png;base64,AAECAwQFBgc=",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Vectorize(req)
	}
}
