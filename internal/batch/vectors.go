package batch

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/hyperjump/vekta/internal/models"
	"github.com/hyperjump/vekta/internal/vector"
)

// Compression is the codec of a vector file, chosen by file suffix.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

// CompressionFor returns the codec implied by the suffix of path.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".zst":
		return CompressionZstd
	}
	return CompressionNone
}

// ReadVectors decodes a vector file body: either a bare array of vectors or an
// object with a "vectors" field, as accepted by the cluster operation.
func ReadVectors(r io.Reader) ([]vector.Vector, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}
	data = bytes.TrimSpace(data)
	req := &models.ClusterRequest{Vectors: data}
	if len(data) > 0 && data[0] == '{' {
		req = &models.ClusterRequest{}
		if err := json.Unmarshal(data, req); err != nil {
			return nil, fmt.Errorf("decode vectors: %w", err)
		}
	}
	return req.ParseVectors()
}

// LoadVectors reads a vector file, decompressing .gz and .zst files.
func LoadVectors(path string) ([]vector.Vector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vectors: %w", err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	switch CompressionFor(path) {
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip: %w", err)
		}
		defer zr.Close()
		r = zr
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open zstd: %w", err)
		}
		defer zr.Close()
		r = zr
	}
	vs, err := ReadVectors(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vs, nil
}

// SaveVectors writes vs as {"vectors": [...]} to path, compressed by suffix.
func SaveVectors(path string, vs []vector.Vector) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	req, err := models.NewClusterRequest(vs)
	if err != nil {
		return err
	}
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode vectors: %w", err)
	}

	var buf bytes.Buffer
	switch CompressionFor(path) {
	case CompressionGzip:
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return fmt.Errorf("gzip vectors: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("gzip vectors: %w", err)
		}
	case CompressionZstd:
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			return fmt.Errorf("zstd vectors: %w", err)
		}
		if _, err := zw.Write(data); err != nil {
			return fmt.Errorf("zstd vectors: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("zstd vectors: %w", err)
		}
	default:
		buf.Write(data)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write vectors: %w", err)
	}
	return nil
}
