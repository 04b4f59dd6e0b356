// Package batch vectorizes many files concurrently and reads and writes vector
// files for later clustering.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/vekta/internal/embedding"
	"github.com/hyperjump/vekta/internal/extract"
	"github.com/hyperjump/vekta/internal/fileid"
	"github.com/hyperjump/vekta/internal/models"
	"github.com/hyperjump/vekta/internal/vector"
)

// DefaultConcurrency is used when no positive concurrency is configured.
const DefaultConcurrency = 4

// Result is the outcome of vectorizing one file. Err is set when the file could
// not be read or extracted; Response is nil in that case.
type Result struct {
	ID       string                    `json:"id"`
	Path     string                    `json:"path"`
	Response *models.VectorizeResponse `json:"vectors,omitempty"`
	Err      error                     `json:"-"`
}

// Vectorizer runs extraction and embedding over a set of files.
type Vectorizer struct {
	extractor   *extract.Extractor
	embedder    embedding.Embedder
	concurrency int
	logger      *zap.Logger
}

// Option configures a Vectorizer.
type Option func(*Vectorizer)

// WithConcurrency bounds the number of files processed at once.
func WithConcurrency(n int) Option {
	return func(v *Vectorizer) {
		if n > 0 {
			v.concurrency = n
		}
	}
}

// WithLogger sets the logger for per-file failures.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Vectorizer) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewVectorizer returns a Vectorizer.
func NewVectorizer(extractor *extract.Extractor, embedder embedding.Embedder, opts ...Option) *Vectorizer {
	v := &Vectorizer{
		extractor:   extractor,
		embedder:    embedder,
		concurrency: DefaultConcurrency,
		logger:      zap.NewNop(),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// VectorizeFile extracts and embeds a single file.
func (v *Vectorizer) VectorizeFile(path string) (*models.VectorizeResponse, error) {
	req, err := v.extractor.Request(path)
	if err != nil {
		return nil, err
	}
	return v.embedder.Vectorize(req), nil
}

// VectorizeFiles processes paths concurrently. Results keep the order of paths.
// A failing file is reported in its Result and does not stop the others; the
// returned error is non-nil only when ctx is cancelled.
func (v *Vectorizer) VectorizeFiles(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			resp, err := v.VectorizeFile(path)
			if err != nil {
				v.logger.Warn("Failed to vectorize file", zap.String("path", path), zap.Error(err))
			}
			results[i] = Result{ID: fileid.ID(path), Path: path, Response: resp, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("vectorize files: %w", err)
	}
	return results, nil
}

// Vectors concatenates the vectors of every successful result, in order.
func Vectors(results []Result) []vector.Vector {
	var out []vector.Vector
	for _, r := range results {
		if r.Err == nil && r.Response != nil {
			out = append(out, r.Response.Vectors()...)
		}
	}
	return out
}

// CollectFiles expands roots into a sorted list of regular files. Files named
// directly are kept as given; directories are walked and filtered by extension
// (all supported kinds when extensions is empty). Hidden entries are skipped.
func CollectFiles(roots []string, extensions []string, recursive bool) ([]string, error) {
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}
	match := func(path string) bool {
		if len(allowed) > 0 {
			return allowed[strings.ToLower(filepath.Ext(path))]
		}
		return extract.KindOf(path) != extract.KindUnsupported
	}

	var files []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		var found []string
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != root && !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && match(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
