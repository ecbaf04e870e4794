package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/sells-group/vendor-scout/internal/model"
)

// WriteJSON writes v to path as a single-line JSON document. Downstream
// tooling slurps these files whole, so no indentation or trailing newline is
// added.
func WriteJSON(path string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return eris.Wrap(err, "store: marshal json output")
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return eris.Wrap(err, "store: write json output")
	}
	return nil
}

// CheckpointPath names the checkpoint file for a given processed count.
func CheckpointPath(dir string, processed int) string {
	return filepath.Join(dir, fmt.Sprintf("checkpoint_%04d.json", processed))
}

// Checkpoint is the restartable state written every N markets.
type Checkpoint struct {
	Processed int                   `json:"processed"`
	Results   []*model.MarketResult `json:"results"`
}

// WriteCheckpoint persists a mid-batch checkpoint and returns its path.
func WriteCheckpoint(dir string, processed int, results []*model.MarketResult) (string, error) {
	path := CheckpointPath(dir, processed)
	if err := WriteJSON(path, Checkpoint{Processed: processed, Results: results}); err != nil {
		return "", err
	}
	return path, nil
}

// ReadCheckpoint loads a checkpoint file for resuming a batch.
func ReadCheckpoint(path string) (*Checkpoint, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "store: read checkpoint")
	}
	var cp Checkpoint
	if err := json.Unmarshal(payload, &cp); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal checkpoint")
	}
	return &cp, nil
}
