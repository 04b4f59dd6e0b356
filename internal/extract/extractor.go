// Package extract turns files on disk into vectorize requests: documents become
// text input, .json files become graph input and pictures become image data URIs.
package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/hyperjump/vekta/internal/embedding"
	"github.com/hyperjump/vekta/internal/models"
)

// Kind is the modality a file maps to.
type Kind int

const (
	KindUnsupported Kind = iota
	KindText
	KindGraph
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindGraph:
		return "graph"
	case KindImage:
		return "image"
	}
	return "unsupported"
}

// ErrUnsupported is returned for files whose extension maps to no modality.
var ErrUnsupported = errors.New("unsupported file type")

var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".rst": true, ".pdf": true, ".docx": true,
	".xlsx": true, ".pptx": true, ".odp": true, ".ods": true,
}

// KindOf classifies a file by its extension.
func KindOf(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case textExtensions[ext]:
		return KindText
	case ext == ".json":
		return KindGraph
	case imageMIMETypes[ext] != "":
		return KindImage
	}
	return KindUnsupported
}

// Extractor reads files and builds vectorize requests from them.
type Extractor struct {
	maxBytes int64
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxBytes rejects files larger than n bytes. Zero means no limit.
func WithMaxBytes(n int64) Option {
	return func(e *Extractor) { e.maxBytes = n }
}

// NewExtractor returns a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Request reads the file at path and maps it to a single-modality request.
func (e *Extractor) Request(path string) (*models.VectorizeRequest, error) {
	if KindOf(path) == KindUnsupported {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	if e.maxBytes > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat file: %w", err)
		}
		if info.Size() > e.maxBytes {
			return nil, fmt.Errorf("%s: file exceeds %d bytes", path, e.maxBytes)
		}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return e.RequestBytes(content, filepath.Base(path))
}

// RequestBytes maps content to a request using the extension of name.
func (e *Extractor) RequestBytes(content []byte, name string) (*models.VectorizeRequest, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch KindOf(name) {
	case KindText:
		text, err := e.Text(content, ext)
		if err != nil {
			return nil, err
		}
		return &models.VectorizeRequest{Text: text}, nil
	case KindGraph:
		raw := bytes.TrimSpace(content)
		if !json.Valid(raw) {
			return nil, fmt.Errorf("%s: invalid JSON graph", name)
		}
		return &models.VectorizeRequest{Graph: json.RawMessage(raw)}, nil
	case KindImage:
		return &models.VectorizeRequest{ImageBase64: embedding.EncodeDataURI(imageMIMEType(ext, content), content)}, nil
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUnsupported)
}

// Text extracts plain text from content based on the given extension, which
// includes the leading dot. Unknown extensions are read as plain text.
func (e *Extractor) Text(content []byte, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDOCX(content)
	case ".xlsx":
		return extractXLSX(content)
	case ".pptx":
		return extractPPTX(content)
	case ".odp":
		return extractODF(content, "ODP", odpElements)
	case ".ods":
		return extractODF(content, "ODS", odsElements)
	}
	return plainText(content), nil
}

// plainText replaces invalid UTF-8 sequences with U+FFFD.
func plainText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	return strings.ToValidUTF8(string(content), "\uFFFD")
}
