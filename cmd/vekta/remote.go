package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hyperjump/vekta/internal/models"
)

// apiClient talks to a running `vekta server`.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *apiClient) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *apiClient) Vectorize(ctx context.Context, req *models.VectorizeRequest) (*models.VectorizeResponse, error) {
	var out models.VectorizeResponse
	if err := c.post(ctx, "/api/v1/vectorize", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) Cluster(ctx context.Context, req *models.ClusterRequest) (*models.ClusterResponse, error) {
	var out models.ClusterResponse
	if err := c.post(ctx, "/api/v1/cluster", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	var out models.AnalyzeResponse
	if err := c.post(ctx, "/api/v1/analyze", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
