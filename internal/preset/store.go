// Package preset persists named snapshots of the warp grid as YAML
// records in an engine-namespaced directory.
package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/lumiwarp/internal/engine/grid"
	"github.com/Faultbox/lumiwarp/pkg/geom"
)

// LastSession is the reserved preset name auto-saved when calibration
// stops and auto-loaded at engine start. It never appears in List.
const LastSession = ".last-session"

var (
	// ErrNotFound is returned when loading or deleting an unknown name.
	ErrNotFound = errors.New("preset not found")
	// ErrInvalidName is returned for empty names or names that would
	// escape the preset directory.
	ErrInvalidName = errors.New("invalid preset name")
)

// record is the on-disk schema. blocked_cells may be absent in records
// written before cell blocking existed; loading treats that as an
// all-unblocked mask for the record's grid size.
type record struct {
	GridSize struct {
		Rows int `yaml:"rows"`
		Cols int `yaml:"cols"`
	} `yaml:"grid_size"`
	ControlPoints [][]pointRecord `yaml:"control_points"`
	BlockedCells  [][]bool        `yaml:"blocked_cells,omitempty"`
	Created       int64           `yaml:"created"` // epoch millis
}

type pointRecord struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Store reads and writes preset records under a single directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating preset dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes a deep snapshot under name, stamping the current time.
func (s *Store) Save(name string, snap grid.Snapshot) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	rec := record{Created: time.Now().UnixMilli()}
	rec.GridSize.Rows = snap.Size.Rows
	rec.GridSize.Cols = snap.Size.Cols

	rec.ControlPoints = make([][]pointRecord, snap.Size.Rows+1)
	for r := 0; r <= snap.Size.Rows; r++ {
		row := make([]pointRecord, snap.Size.Cols+1)
		for c := 0; c <= snap.Size.Cols; c++ {
			p := snap.Points[r*(snap.Size.Cols+1)+c]
			row[c] = pointRecord{X: p.X, Y: p.Y}
		}
		rec.ControlPoints[r] = row
	}

	rec.BlockedCells = make([][]bool, snap.Size.Rows)
	for r := 0; r < snap.Size.Rows; r++ {
		row := make([]bool, snap.Size.Cols)
		copy(row, snap.Blocked[r*snap.Size.Cols:(r+1)*snap.Size.Cols])
		rec.BlockedCells[r] = row
	}

	data, err := yaml.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("encoding preset %q: %w", name, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing preset %q: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing preset %q: %w", name, err)
	}
	return nil
}

// Load reads the record stored under name into a snapshot.
func (s *Store) Load(name string) (grid.Snapshot, error) {
	path, err := s.path(name)
	if err != nil {
		return grid.Snapshot{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return grid.Snapshot{}, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return grid.Snapshot{}, fmt.Errorf("reading preset %q: %w", name, err)
	}

	var rec record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return grid.Snapshot{}, fmt.Errorf("decoding preset %q: %w", name, err)
	}
	return rec.snapshot(name)
}

// Delete removes the record stored under name.
func (s *Store) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return fmt.Errorf("deleting preset %q: %w", name, err)
	}
	return nil
}

// Exists reports whether a record is stored under name.
func (s *Store) Exists(name string) bool {
	path, err := s.path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// List returns all stored preset names, sorted. The reserved
// last-session record is excluded.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing presets: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".yaml")
		if name == LastSession {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// path validates the name and maps it to a file path. Names must be
// non-empty and may not contain path separators.
func (s *Store) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name+".yaml"), nil
}

// snapshot validates the record and converts it to flat model state.
func (rec *record) snapshot(name string) (grid.Snapshot, error) {
	rows, cols := rec.GridSize.Rows, rec.GridSize.Cols
	if rows < 1 || cols < 1 {
		return grid.Snapshot{}, fmt.Errorf("preset %q: bad grid size %dx%d", name, rows, cols)
	}
	if len(rec.ControlPoints) != rows+1 {
		return grid.Snapshot{}, fmt.Errorf("preset %q: %d point rows, want %d", name, len(rec.ControlPoints), rows+1)
	}

	snap := grid.Snapshot{
		Size:    grid.Size{Rows: rows, Cols: cols},
		Points:  make([]geom.Vec2, (rows+1)*(cols+1)),
		Blocked: make([]bool, rows*cols),
	}

	for r, rowPoints := range rec.ControlPoints {
		if len(rowPoints) != cols+1 {
			return grid.Snapshot{}, fmt.Errorf("preset %q: point row %d has %d entries, want %d", name, r, len(rowPoints), cols+1)
		}
		for c, p := range rowPoints {
			snap.Points[r*(cols+1)+c] = geom.Vec2{X: p.X, Y: p.Y}
		}
	}

	// Older records predate cell blocking; an absent mask means every
	// cell is unblocked.
	if rec.BlockedCells != nil {
		if len(rec.BlockedCells) != rows {
			return grid.Snapshot{}, fmt.Errorf("preset %q: %d mask rows, want %d", name, len(rec.BlockedCells), rows)
		}
		for r, rowCells := range rec.BlockedCells {
			if len(rowCells) != cols {
				return grid.Snapshot{}, fmt.Errorf("preset %q: mask row %d has %d entries, want %d", name, r, len(rowCells), cols)
			}
			copy(snap.Blocked[r*cols:(r+1)*cols], rowCells)
		}
	}

	return snap, nil
}
