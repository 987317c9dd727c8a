package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/RollCut/internal/solver"
)

// SnapshotWriter stores solver models as <name>.lp and their solutions as
// <name>.sol in one directory. It satisfies engine.Snapshotter.
type SnapshotWriter struct {
	dir string
}

// NewSnapshotWriter creates the directory if needed.
func NewSnapshotWriter(dir string) (*SnapshotWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &SnapshotWriter{dir: dir}, nil
}

// Dir returns the directory snapshots are written to.
func (w *SnapshotWriter) Dir() string {
	return w.dir
}

// Snapshot writes the model and, when sol is not nil, the solution.
// Existing files of the same name are overwritten.
func (w *SnapshotWriter) Snapshot(name string, m *solver.Model, sol *solver.Solution) error {
	if err := w.write(name+".lp", func(f *os.File) error { return solver.WriteLP(f, m) }); err != nil {
		return err
	}
	if sol == nil {
		return nil
	}
	return w.write(name+".sol", func(f *os.File) error { return solver.WriteSolution(f, m, sol) })
}

func (w *SnapshotWriter) write(file string, fill func(*os.File) error) error {
	path := filepath.Join(w.dir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", file, err)
	}
	return nil
}
