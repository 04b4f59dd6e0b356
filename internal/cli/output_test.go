package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/vekta/internal/batch"
	"github.com/hyperjump/vekta/internal/models"
	"github.com/hyperjump/vekta/internal/vector"
)

func ptr(f float64) *float64 { return &f }

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"JSON", OutputJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestFormatVector(t *testing.T) {
	if got := FormatVector(vector.Vector{0.5, 1.0 / 3, 0}); got != "[0.5000, 0.3333, 0.0000]" {
		t.Errorf("got %s", got)
	}
	if got := FormatVector(nil); got != "[]" {
		t.Errorf("got %s", got)
	}
}

func TestWriteVectorize_text(t *testing.T) {
	var buf bytes.Buffer
	resp := &models.VectorizeResponse{
		Text:  []vector.Vector{{0.1, 0.2}},
		Image: []vector.Vector{{0, 0}},
	}
	if err := WriteVectorize(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	want := "text:  [0.1000, 0.2000]\nimage: [0.0000, 0.0000]\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()
	_ = WriteVectorize(&buf, &models.VectorizeResponse{}, OutputText)
	if buf.String() != "(no inputs)\n" {
		t.Errorf("empty: got %q", buf.String())
	}
}

func TestWriteVectorize_JSON(t *testing.T) {
	var buf bytes.Buffer
	resp := &models.VectorizeResponse{Graph: []vector.Vector{{0.05, 0.05}}}
	if err := WriteVectorize(&buf, resp, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := out["graph"]; !ok || len(out) != 1 {
		t.Errorf("got %v", out)
	}
}

func TestWriteCluster_text(t *testing.T) {
	var buf bytes.Buffer
	resp := &models.ClusterResponse{
		Labels:   []int{0, 0, 1},
		Clusters: []models.ClusterSummary{{ID: 0, Size: 2}, {ID: 1, Size: 1}},
		Metrics: models.ClusterMetrics{
			Silhouette:       ptr(0.95),
			DaviesBouldin:    ptr(1.05),
			CalinskiHarabasz: ptr(114),
		},
	}
	if err := WriteCluster(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Clustered 3 vectors into 2 clusters (noise: 0)",
		"Labels: 0 0 1",
		"cluster 0: 2 vectors",
		"silhouette:        0.95",
		"davies-bouldin:    1.05",
		"calinski-harabasz: 114",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCluster_emptyShowsUndefinedMetrics(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCluster(&buf, models.EmptyClusterResponse(), OutputText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "n/a") != 3 {
		t.Errorf("got %s", buf.String())
	}
	if strings.Contains(buf.String(), "Labels:") {
		t.Error("no labels line expected for an empty batch")
	}
}

func TestWriteCluster_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCluster(&buf, models.EmptyClusterResponse(), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var out models.ClusterResponse
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Labels == nil || len(out.Labels) != 0 || out.Metrics.Silhouette != nil {
		t.Errorf("got %+v", out)
	}
}

func TestWriteFileResults(t *testing.T) {
	results := []batch.Result{
		{ID: "file:1", Path: "a.txt", Response: &models.VectorizeResponse{Text: []vector.Vector{{1}}}},
		{ID: "file:2", Path: "b.pdf", Err: errors.New(strings.Repeat("x", 200))},
	}
	var buf bytes.Buffer
	if err := WriteFileResults(&buf, results, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "a.txt\n  text:  [1.0000]\n") {
		t.Errorf("got %q", out)
	}
	if !strings.Contains(out, "  error: "+strings.Repeat("x", maxErrorLen)+"...\n") {
		t.Errorf("error line should be truncated: %q", out)
	}

	buf.Reset()
	if err := WriteFileResults(&buf, results, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var recs []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &recs); err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || recs[0]["id"] != "file:1" || recs[1]["error"] == nil || recs[1]["vectors"] != nil {
		t.Errorf("got %v", recs)
	}
}

func TestWriteAnalyze_text(t *testing.T) {
	resp := &models.AnalyzeResponse{
		Vectors: []*models.VectorizeResponse{{Text: []vector.Vector{{0.5}}}, {}},
		Cluster: models.EmptyClusterResponse(),
	}
	var buf bytes.Buffer
	if err := WriteAnalyze(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"input 0\n  text:  [0.5000]\n", "input 1\n  (no inputs)\n", "Clustered 0 vectors"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteWatchRecord(t *testing.T) {
	var buf bytes.Buffer
	rec := &WatchRecord{ID: "file:ab", Path: "/d/a.txt", Op: "removed", Time: time.Unix(0, 0).UTC()}
	if err := WriteWatchRecord(&buf, rec); err != nil {
		t.Fatal(err)
	}
	want := `{"id":"file:ab","path":"/d/a.txt","op":"removed","time":"1970-01-01T00:00:00Z"}` + "\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
