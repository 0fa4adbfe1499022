package localstore

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tablerag/internal/config"
)

var errNoIndex = errors.New("no persisted index")

func vectorPath(dir string) string   { return filepath.Join(dir, config.VectorIndexFileName) }
func docstorePath(dir string) string { return filepath.Join(dir, config.DocstoreFileName) }

func indexPresent(dir string) bool {
	_, errV := os.Stat(vectorPath(dir))
	_, errD := os.Stat(docstorePath(dir))
	return errV == nil || errD == nil
}

// readArtifacts loads both companion files. A half-written pair (one file
// present, its companion missing) or a count mismatch is treated the same as
// corruption so a torn index never serves answers.
func readArtifacts(dir string) ([][]float32, []docEntry, error) {
	vf, err := os.Open(vectorPath(dir))
	if err != nil {
		if os.IsNotExist(err) && !indexPresent(dir) {
			return nil, nil, errNoIndex
		}
		return nil, nil, fmt.Errorf("open vector file: %w", err)
	}
	defer vf.Close()

	var vectors [][]float32
	if err := gob.NewDecoder(vf).Decode(&vectors); err != nil {
		return nil, nil, fmt.Errorf("decode vector file: %w", err)
	}

	raw, err := os.ReadFile(docstorePath(dir))
	if err != nil {
		return nil, nil, fmt.Errorf("read docstore: %w", err)
	}
	var docs []docEntry
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, nil, fmt.Errorf("decode docstore: %w", err)
	}

	if len(vectors) != len(docs) {
		return nil, nil, fmt.Errorf("artifact mismatch: %d vectors, %d docstore entries", len(vectors), len(docs))
	}
	return vectors, docs, nil
}

// writeArtifacts persists both files via temp-then-rename so a crash mid-save
// leaves either the old pair or the new pair, never a torn mix of both.
func writeArtifacts(dir string, vectors [][]float32, docs []docEntry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmpVec := vectorPath(dir) + ".tmp"
	vf, err := os.Create(tmpVec)
	if err != nil {
		return fmt.Errorf("create vector temp file: %w", err)
	}
	if err := gob.NewEncoder(vf).Encode(vectors); err != nil {
		vf.Close()
		os.Remove(tmpVec)
		return fmt.Errorf("encode vectors: %w", err)
	}
	if err := vf.Close(); err != nil {
		os.Remove(tmpVec)
		return fmt.Errorf("close vector temp file: %w", err)
	}

	raw, err := json.Marshal(docs)
	if err != nil {
		os.Remove(tmpVec)
		return fmt.Errorf("encode docstore: %w", err)
	}
	tmpDoc := docstorePath(dir) + ".tmp"
	if err := os.WriteFile(tmpDoc, raw, 0o644); err != nil {
		os.Remove(tmpVec)
		return fmt.Errorf("write docstore temp file: %w", err)
	}

	if err := os.Rename(tmpVec, vectorPath(dir)); err != nil {
		os.Remove(tmpVec)
		os.Remove(tmpDoc)
		return fmt.Errorf("publish vector file: %w", err)
	}
	if err := os.Rename(tmpDoc, docstorePath(dir)); err != nil {
		os.Remove(tmpDoc)
		return fmt.Errorf("publish docstore: %w", err)
	}
	return nil
}
