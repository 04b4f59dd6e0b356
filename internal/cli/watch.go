package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/hyperjump/vekta/internal/models"
)

// WatchRecord is one line of `vekta watch` output.
type WatchRecord struct {
	ID      string                    `json:"id"`
	Path    string                    `json:"path"`
	Op      string                    `json:"op"`
	Time    time.Time                 `json:"time"`
	Vectors *models.VectorizeResponse `json:"vectors,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

// WriteWatchRecord writes rec as a single JSON line.
func WriteWatchRecord(w io.Writer, rec *WatchRecord) error {
	return json.NewEncoder(w).Encode(rec)
}
