package embedding

import (
	"encoding/json"
	"reflect"
	"sync"
	"testing"

	"github.com/hyperjump/vekta/internal/models"
	"github.com/hyperjump/vekta/internal/vector"
)

type countingEmbedder struct {
	mu    sync.Mutex
	calls int
}

func (c *countingEmbedder) Vectorize(req *models.VectorizeRequest) *models.VectorizeResponse {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return NewHeuristicEmbedder().Vectorize(req)
}

func (c *countingEmbedder) Dimensions() int { return Dimensions }

func TestResponseCache_GetSet(t *testing.T) {
	c := NewResponseCache(2)
	a := requestKey(&models.VectorizeRequest{Text: "a"})
	b := requestKey(&models.VectorizeRequest{Text: "b"})
	d := requestKey(&models.VectorizeRequest{Text: "c"})

	if v, ok := c.get(a); ok || v != nil {
		t.Fatal("expected miss")
	}
	c.set(a, &models.VectorizeResponse{Text: []vector.Vector{{1, 2, 3}}})
	v, ok := c.get(a)
	if !ok || len(v.Text) != 1 || v.Text[0][0] != 1 {
		t.Errorf("get: got %v, %v", v, ok)
	}
	c.set(b, &models.VectorizeResponse{})
	c.get(a)
	c.set(d, &models.VectorizeResponse{}) // evicts b
	if _, ok := c.get(b); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.get(a); !ok {
		t.Error("expected a to remain")
	}
	if c.Len() != 2 {
		t.Errorf("Len: got %d, want 2", c.Len())
	}
}

func TestNewResponseCache_defaultCapacity(t *testing.T) {
	if c := NewResponseCache(0); c.capacity != DefaultCacheSize {
		t.Errorf("capacity: got %d, want %d", c.capacity, DefaultCacheSize)
	}
}

func TestRequestKey_fieldBoundaries(t *testing.T) {
	k1 := requestKey(&models.VectorizeRequest{Text: "ab", ImageBase64: "c"})
	k2 := requestKey(&models.VectorizeRequest{Text: "a", ImageBase64: "bc"})
	if k1 == k2 {
		t.Error("keys for different field splits must differ")
	}
}

func TestCachingEmbedder(t *testing.T) {
	next := &countingEmbedder{}
	e := NewCachingEmbedder(next, 8)
	req := &models.VectorizeRequest{Text: "hello world", Graph: json.RawMessage(`[[1,2]]`)}

	first := e.Vectorize(req)
	second := e.Vectorize(&models.VectorizeRequest{Text: "hello world", Graph: json.RawMessage(`[[1,2]]`)})
	if next.calls != 1 {
		t.Errorf("calls: got %d, want 1", next.calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached response differs: %v vs %v", first, second)
	}
	second.Text = nil
	if third := e.Vectorize(req); len(third.Text) != 1 {
		t.Error("mutating a returned response must not affect the cache")
	}
	if e.Dimensions() != Dimensions {
		t.Errorf("Dimensions: got %d", e.Dimensions())
	}
	if e.Vectorize(nil) == nil {
		t.Error("nil request should yield an empty response")
	}
}

func TestCachingEmbedder_concurrent(t *testing.T) {
	e := NewCachingEmbedder(NewHeuristicEmbedder(), 4)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := &models.VectorizeRequest{Text: string(rune('a' + i%6))}
			if got := e.Vectorize(req); len(got.Text) != 1 {
				t.Errorf("missing text vector for %q", req.Text)
			}
		}(i)
	}
	wg.Wait()
	if e.Cache().Len() > 4 {
		t.Errorf("Len: got %d, want <= 4", e.Cache().Len())
	}
}
