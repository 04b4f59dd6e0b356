package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/hyperjump/vekta/internal/batch"
	"github.com/hyperjump/vekta/internal/models"
)

func (s *Server) handleVectorize(w http.ResponseWriter, r *http.Request) {
	var req models.VectorizeRequest
	if status, err := decodeBody(r, &req); err != nil {
		s.respondError(w, status, err.Error())
		return
	}
	s.logger.Debug("vectorize request",
		zap.Bool("text", req.HasText()),
		zap.Bool("graph", req.HasGraph()),
		zap.Bool("image", req.HasImage()),
	)
	s.respondJSON(w, http.StatusOK, s.embedder.Vectorize(&req))
}

func (s *Server) handleCluster(w http.ResponseWriter, r *http.Request) {
	var req models.ClusterRequest
	if status, err := decodeBody(r, &req); err != nil {
		s.respondError(w, status, err.Error())
		return
	}
	vs, err := req.ParseVectors()
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logIgnoredParams(req.MinClusterSize, req.MinSamples)
	s.logger.Debug("cluster request", zap.Int("vectors", len(vs)))
	s.respondJSON(w, http.StatusOK, s.engine.Cluster(vs))
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if status, err := decodeBody(r, &req); err != nil {
		s.respondError(w, status, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logIgnoredParams(req.MinClusterSize, req.MinSamples)
	s.logger.Debug("analyze request", zap.Int("inputs", len(req.Inputs)))
	s.respondJSON(w, http.StatusOK, batch.Analyze(s.embedder, s.engine, &req))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{"ok": true, "status": http.StatusOK})
}

// logIgnoredParams notes tuning parameters that the engine accepts but does not use.
func (s *Server) logIgnoredParams(minClusterSize, minSamples *float64) {
	if minClusterSize != nil {
		s.logger.Debug("ignoring minClusterSize", zap.Float64("value", *minClusterSize))
	}
	if minSamples != nil {
		s.logger.Debug("ignoring minSamples", zap.Float64("value", *minSamples))
	}
}

// decodeBody decodes a JSON request body into v and returns the status to
// report when it fails.
func decodeBody(r *http.Request, v any) (int, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return http.StatusBadRequest, errors.New("could not read request body")
	}
	if !json.Valid(data) {
		return http.StatusBadRequest, errors.New("invalid request body")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err)
	}
	return http.StatusOK, nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
