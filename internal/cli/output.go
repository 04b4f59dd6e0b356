// Package cli formats vectorize, cluster and analyze results for the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hyperjump/vekta/internal/batch"
	"github.com/hyperjump/vekta/internal/models"
	"github.com/hyperjump/vekta/internal/vector"
	"github.com/hyperjump/vekta/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// maxErrorLen bounds error messages printed in text output.
const maxErrorLen = 120

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case OutputText, "":
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text or json)", s)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatVector renders v with four decimals per component.
func FormatVector(v vector.Vector) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'f', 4, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// WriteVectorize writes one vectorize response.
func WriteVectorize(w io.Writer, resp *models.VectorizeResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	writeVectorizeText(w, resp, "")
	return nil
}

func writeVectorizeText(w io.Writer, resp *models.VectorizeResponse, indent string) {
	if resp == nil || len(resp.Vectors()) == 0 {
		fmt.Fprintf(w, "%s(no inputs)\n", indent)
		return
	}
	for _, m := range []struct {
		name string
		vs   []vector.Vector
	}{{"text", resp.Text}, {"graph", resp.Graph}, {"image", resp.Image}} {
		for _, v := range m.vs {
			fmt.Fprintf(w, "%s%-6s %s\n", indent, m.name+":", FormatVector(v))
		}
	}
}

// WriteFileResults writes per-file vectorize results. Failed files are listed
// with their error.
func WriteFileResults(w io.Writer, results []batch.Result, format OutputFormat) error {
	if format == OutputJSON {
		out := make([]fileRecord, 0, len(results))
		for _, r := range results {
			out = append(out, newFileRecord(r))
		}
		return writeJSON(w, out)
	}
	for _, r := range results {
		fmt.Fprintf(w, "%s\n", r.Path)
		if r.Err != nil {
			fmt.Fprintf(w, "  error: %s\n", utils.Truncate(r.Err.Error(), maxErrorLen))
			continue
		}
		writeVectorizeText(w, r.Response, "  ")
	}
	return nil
}

type fileRecord struct {
	ID      string                    `json:"id"`
	Path    string                    `json:"path"`
	Vectors *models.VectorizeResponse `json:"vectors,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

func newFileRecord(r batch.Result) fileRecord {
	rec := fileRecord{ID: r.ID, Path: r.Path, Vectors: r.Response}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return rec
}

// WriteCluster writes a cluster response.
func WriteCluster(w io.Writer, resp *models.ClusterResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	writeClusterText(w, resp)
	return nil
}

func writeClusterText(w io.Writer, resp *models.ClusterResponse) {
	fmt.Fprintf(w, "Clustered %d vectors into %d clusters (noise: %d)\n",
		len(resp.Labels), len(resp.Clusters), resp.NoiseCount)
	if len(resp.Labels) > 0 {
		labels := make([]string, len(resp.Labels))
		for i, l := range resp.Labels {
			labels[i] = strconv.Itoa(l)
		}
		fmt.Fprintf(w, "Labels: %s\n", strings.Join(labels, " "))
	}
	for _, c := range resp.Clusters {
		fmt.Fprintf(w, "  cluster %d: %d vectors\n", c.ID, c.Size)
	}
	fmt.Fprintln(w, "Metrics:")
	fmt.Fprintf(w, "  silhouette:        %s\n", formatMetric(resp.Metrics.Silhouette))
	fmt.Fprintf(w, "  davies-bouldin:    %s\n", formatMetric(resp.Metrics.DaviesBouldin))
	fmt.Fprintf(w, "  calinski-harabasz: %s\n", formatMetric(resp.Metrics.CalinskiHarabasz))
}

func formatMetric(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// WriteAnalyze writes an analyze response: each input's vectors followed by the
// cluster result.
func WriteAnalyze(w io.Writer, resp *models.AnalyzeResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	for i, v := range resp.Vectors {
		fmt.Fprintf(w, "input %d\n", i)
		writeVectorizeText(w, v, "  ")
	}
	if resp.Cluster != nil {
		fmt.Fprintln(w)
		writeClusterText(w, resp.Cluster)
	}
	return nil
}
