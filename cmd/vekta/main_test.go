package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperjump/vekta/internal/cluster"
	"github.com/hyperjump/vekta/internal/config"
	"github.com/hyperjump/vekta/internal/embedding"
	"github.com/hyperjump/vekta/internal/extract"
	"github.com/hyperjump/vekta/internal/models"
	"github.com/hyperjump/vekta/internal/server"
)

// run executes the CLI with a throwaway config path and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "vekta version dev\n" {
		t.Errorf("got %q", out)
	}
}

func TestVectorize_text(t *testing.T) {
	out, err := run(t, "", "vectorize", "--text", "hello world", "-o", "json")
	if err != nil {
		t.Fatal(err)
	}
	var resp models.VectorizeResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	want := embedding.TextEmbedding("hello world")
	if len(resp.Text) != 1 || len(resp.Text[0]) != len(want) {
		t.Fatalf("got %+v", resp)
	}
	for i := range want {
		if resp.Text[0][i] != want[i] {
			t.Errorf("text[%d] = %v, want %v", i, resp.Text[0][i], want[i])
		}
	}
	if resp.Graph != nil || resp.Image != nil {
		t.Errorf("only text expected: %+v", resp)
	}
}

func TestVectorize_nothingToDo(t *testing.T) {
	if _, err := run(t, "", "vectorize"); err == nil {
		t.Error("expected error without inputs")
	}
}

func TestVectorize_badOutputFormat(t *testing.T) {
	if _, err := run(t, "", "vectorize", "--text", "x", "-o", "xml"); err == nil {
		t.Error("expected error for unknown output format")
	}
}

func TestVectorizeSaveThenCluster(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "the quick brown fox")
	writeFile(t, filepath.Join(dir, "b.md"), "jumps over")
	writeFile(t, filepath.Join(dir, "nested", "g.json"), `{"edges":[[0,1],[1,2],[2,3]]}`)
	saved := filepath.Join(dir, "out", "vectors.json.gz")

	out, err := run(t, "", "vectorize", dir, "--save", saved)
	if err != nil {
		t.Fatalf("vectorize: %v\n%s", err, out)
	}
	for _, name := range []string{"a.txt", "b.md", "g.json"} {
		if !strings.Contains(out, name) {
			t.Errorf("output missing %s:\n%s", name, out)
		}
	}

	out, err = run(t, "", "cluster", saved, "-o", "json")
	if err != nil {
		t.Fatalf("cluster: %v", err)
	}
	var resp models.ClusterResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Labels) != 3 || resp.Metrics.Silhouette == nil {
		t.Errorf("got %+v", resp)
	}
}

func TestVectorize_failedFileIsReported(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, "{not json")
	out, err := run(t, "", "vectorize", bad)
	if err == nil {
		t.Error("expected non-nil error when a file fails")
	}
	if !strings.Contains(out, "error:") {
		t.Errorf("expected error line in output: %q", out)
	}
}

func TestCluster_stdin(t *testing.T) {
	out, err := run(t, `[[0,1],[0,-1],[5,0],[5,0]]`, "cluster", "-o", "json", "--min-samples", "3")
	if err != nil {
		t.Fatal(err)
	}
	var resp models.ClusterResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	want := []int{0, 1, 0, 0}
	for i, l := range want {
		if resp.Labels[i] != l {
			t.Errorf("labels = %v, want %v", resp.Labels, want)
			break
		}
	}
}

func TestCluster_emptyStdin(t *testing.T) {
	out, err := run(t, "", "cluster")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Clustered 0 vectors into 0 clusters") {
		t.Errorf("got %q", out)
	}
}

func TestCluster_invalidVectors(t *testing.T) {
	if _, err := run(t, `{"vectors":[[1,"x"]]}`, "cluster"); err == nil {
		t.Error("expected error for non-numeric component")
	}
}

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "alpha")
	writeFile(t, filepath.Join(dir, "b.txt"), "beta gamma")
	writeFile(t, filepath.Join(dir, "c.json"), "[[1,2]]")
	out, err := run(t, "", "analyze", dir, "-o", "json")
	if err != nil {
		t.Fatal(err)
	}
	var resp models.AnalyzeResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Vectors) != 3 || resp.Cluster == nil || len(resp.Cluster.Labels) != 3 {
		t.Errorf("got %+v", resp)
	}
}

func TestRemoteCommands(t *testing.T) {
	cfg := &config.ServerConfig{MaxBodyBytes: 1 << 20}
	srv := server.NewServer(embedding.NewHeuristicEmbedder(), cluster.NewEngine(), cfg, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	out, err := run(t, "", "vectorize", "--server", ts.URL, "--graph", "[[0,1],[1,2],[2,3]]", "-o", "json")
	if err != nil {
		t.Fatal(err)
	}
	var vr models.VectorizeResponse
	if err := json.Unmarshal([]byte(out), &vr); err != nil {
		t.Fatal(err)
	}
	if len(vr.Graph) != 1 || vr.Graph[0][0] != 4.0/12 {
		t.Errorf("graph vector: got %+v", vr.Graph)
	}

	out, err = run(t, `[[1,2],[3,4]]`, "cluster", "--server", ts.URL, "--min-cluster-size", "2", "-o", "json")
	if err != nil {
		t.Fatal(err)
	}
	var cr models.ClusterResponse
	if err := json.Unmarshal([]byte(out), &cr); err != nil {
		t.Fatal(err)
	}
	if len(cr.Labels) != 2 {
		t.Errorf("cluster: got %+v", cr)
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "remote text")
	if _, err := run(t, "", "analyze", dir, "--server", ts.URL); err != nil {
		t.Errorf("analyze: %v", err)
	}

	if _, err := run(t, "", "vectorize", "--server", ts.URL+"/missing", "--text", "x"); err == nil {
		t.Error("expected error for a non-200 response")
	}
}

func TestBuildInlineRequest(t *testing.T) {
	e := extract.NewExtractor()
	req, err := buildInlineRequest(e, "", "", "")
	if err != nil || req != nil {
		t.Errorf("no flags: got %v, %v", req, err)
	}

	dir := t.TempDir()
	graphFile := filepath.Join(dir, "g.json")
	writeFile(t, graphFile, `{"edges":[[1,2]]}`)
	req, err = buildInlineRequest(e, "hi", "@"+graphFile, "data:image/png;base64,AAAA")
	if err != nil {
		t.Fatal(err)
	}
	if req.Text != "hi" || !req.HasGraph() || req.ImageBase64 != "data:image/png;base64,AAAA" {
		t.Errorf("got %+v", req)
	}

	png := filepath.Join(dir, "p.png")
	writeFile(t, png, "\x89PNG\r\n\x1a\n")
	req, err = buildInlineRequest(e, "", "", png)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(req.ImageBase64, "data:image/png;base64,") {
		t.Errorf("image: got %q", req.ImageBase64)
	}

	if _, err := buildInlineRequest(e, "", "{bad", ""); err == nil {
		t.Error("expected error for invalid graph JSON")
	}
	if _, err := buildInlineRequest(e, "", "", graphFile); err == nil {
		t.Error("expected error for non-image --image file")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "server:\n  port: 9999\n")
	cfg, loaded, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded != path || cfg.Server.Port != 9999 {
		t.Errorf("got %s, port %d", loaded, cfg.Server.Port)
	}
}
