package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperjump/vekta/internal/batch"
	"github.com/hyperjump/vekta/internal/cli"
	"github.com/hyperjump/vekta/internal/extract"
	"github.com/hyperjump/vekta/internal/fileid"
	"github.com/hyperjump/vekta/internal/models"
)

// inlinePath labels the flag-built input in per-file output.
const inlinePath = "<inline>"

type vectorizeOptions struct {
	text      string
	graph     string
	image     string
	serverURL string
	output    string
	save      string
	recursive bool
}

func newVectorizeCmd(a *app) *cobra.Command {
	o := &vectorizeOptions{}
	cmd := &cobra.Command{
		Use:   "vectorize [file|dir ...]",
		Short: "Vectorize text, a graph, an image or files",
		Long: `Vectorize inline inputs given by flags and/or files.

Documents (.txt .md .rst .pdf .docx .xlsx .pptx .odp .ods) are vectorized as
text, .json files as graphs and pictures (.png .jpg .jpeg .gif .webp .bmp) as
images. Directories are expanded to the supported files they contain.`,
		Example: `  vekta vectorize --text "hello world"
  vekta vectorize --graph '{"edges":[[0,1],[1,2]]}' --output json
  vekta vectorize --image photo.png docs/ --save vectors.json.gz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVectorize(cmd, a, o, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.text, "text", "", "text input")
	f.StringVar(&o.graph, "graph", "", "graph input as JSON, or @file to read it from a file")
	f.StringVar(&o.image, "image", "", "image file path or data URI")
	f.StringVar(&o.serverURL, "server", "", "vectorize through a running server at this URL")
	f.StringVarP(&o.output, "output", "o", "text", "output format: text or json")
	f.StringVar(&o.save, "save", "", "also write all vectors to this file (.json, .gz or .zst)")
	f.BoolVarP(&o.recursive, "recursive", "r", true, "descend into subdirectories")
	return cmd
}

func runVectorize(cmd *cobra.Command, a *app, o *vectorizeOptions, args []string) error {
	format, err := cli.ParseOutputFormat(o.output)
	if err != nil {
		return err
	}
	c := a.components()
	inline, err := buildInlineRequest(c.Extractor, o.text, o.graph, o.image)
	if err != nil {
		return err
	}
	if inline == nil && len(args) == 0 {
		return errors.New("nothing to vectorize: pass --text, --graph, --image or files")
	}

	ctx := cmd.Context()
	var client *apiClient
	if o.serverURL != "" {
		client = newAPIClient(o.serverURL)
	}

	var results []batch.Result
	if inline != nil {
		resp, err := vectorizeOne(ctx, c, client, inline)
		if err != nil {
			return err
		}
		results = append(results, batch.Result{Path: inlinePath, Response: resp})
	}
	if len(args) > 0 {
		files, err := batch.CollectFiles(args, nil, o.recursive)
		if err != nil {
			return err
		}
		fileResults, err := vectorizeFiles(ctx, c, client, files)
		if err != nil {
			return err
		}
		results = append(results, fileResults...)
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		err = cli.WriteVectorize(out, results[0].Response, format)
	} else {
		err = cli.WriteFileResults(out, results, format)
	}
	if err != nil {
		return err
	}
	if o.save != "" {
		if err := batch.SaveVectors(o.save, batch.Vectors(results)); err != nil {
			return err
		}
	}
	return failedFiles(results)
}

func vectorizeOne(ctx context.Context, c *components, client *apiClient, req *models.VectorizeRequest) (*models.VectorizeResponse, error) {
	if client != nil {
		return client.Vectorize(ctx, req)
	}
	return c.Embedder.Vectorize(req), nil
}

// vectorizeFiles runs locally through the batch vectorizer, or extracts each
// file and sends it to the server one by one.
func vectorizeFiles(ctx context.Context, c *components, client *apiClient, files []string) ([]batch.Result, error) {
	if client == nil {
		return c.Vectorizer.VectorizeFiles(ctx, files)
	}
	results := make([]batch.Result, 0, len(files))
	for _, path := range files {
		r := batch.Result{ID: fileid.ID(path), Path: path}
		req, err := c.Extractor.Request(path)
		if err == nil {
			r.Response, err = client.Vectorize(ctx, req)
		}
		r.Err = err
		results = append(results, r)
	}
	return results, nil
}

func failedFiles(results []batch.Result) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}

// buildInlineRequest assembles a request from the --text, --graph and --image
// flags. It returns nil when none is set.
func buildInlineRequest(extractor *extract.Extractor, text, graph, image string) (*models.VectorizeRequest, error) {
	if text == "" && graph == "" && image == "" {
		return nil, nil
	}
	req := &models.VectorizeRequest{Text: text}
	if graph != "" {
		raw := []byte(graph)
		if path, ok := strings.CutPrefix(graph, "@"); ok {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read graph: %w", err)
			}
			raw = data
		}
		if !json.Valid(raw) {
			return nil, errors.New("--graph must be valid JSON")
		}
		req.Graph = json.RawMessage(raw)
	}
	if image != "" {
		if strings.HasPrefix(image, "data:") {
			req.ImageBase64 = image
		} else {
			if extract.KindOf(image) != extract.KindImage {
				return nil, fmt.Errorf("--image %s: not a supported image file", image)
			}
			img, err := extractor.Request(image)
			if err != nil {
				return nil, err
			}
			req.ImageBase64 = img.ImageBase64
		}
	}
	return req, nil
}
