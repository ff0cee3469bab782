// Package results stores per-target and collective result documents as JSON files.
package results

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar"
	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
)

// ResultFileSuffix ends the name of every per-target result document.
const ResultFileSuffix = "-result.json"

// Store implements ports.ResultStore using one file per document.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Put writes the normalized result as indented JSON.
func (s *Store) Put(path string, result domain.BuildResult) error {
	return writeJSON(path, result.Normalize())
}

// Get reads the result at path. It returns nil, nil when the file does not exist.
func (s *Store) Get(path string) (*domain.BuildResult, error) {
	var result domain.BuildResult
	found, err := readJSON(path, &result)
	if err != nil || !found {
		return nil, err
	}
	return &result, nil
}

// List loads every *-result.json under dir, sorted by path.
// Unparsable documents and documents without a target identity are reported as malformed.
func (s *Store) List(dir string) ([]domain.BuildResult, []domain.Malformed, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}

	paths, err := doublestar.Glob(filepath.Join(dir, "**", "*"+ResultFileSuffix))
	if err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, domain.ErrResultReadFailed.Error()), "dir", dir)
	}
	slices.Sort(paths)

	var (
		loaded    []domain.BuildResult
		malformed []domain.Malformed
	)
	for _, p := range paths {
		r, err := s.Get(p)
		switch {
		case err != nil:
			malformed = append(malformed, domain.Malformed{Path: p, Err: err})
		case r == nil:
			continue
		case r.Platform == "" || r.SampleName == "":
			malformed = append(malformed, domain.Malformed{Path: p, Err: zerr.With(domain.ErrResultUnmarshalFailed, "reason", "missing platform or sample_name")})
		default:
			loaded = append(loaded, *r)
		}
	}
	return loaded, malformed, nil
}

// PutCollective writes the collective result as indented JSON.
func (s *Store) PutCollective(path string, collective domain.CollectiveResult) error {
	return writeJSON(path, collective)
}

// GetCollective reads a collective result. A missing file yields an empty result.
func (s *Store) GetCollective(path string) (domain.CollectiveResult, error) {
	collective := domain.CollectiveResult{}
	if _, err := readJSON(path, &collective); err != nil {
		return nil, err
	}
	return collective, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrResultMarshalFailed.Error())
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrResultWriteFailed.Error()), "path", path)
	}
	//nolint:gosec // path is rendered from the catalog's artifact names
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrResultWriteFailed.Error()), "path", path)
	}
	return nil
}

func readJSON(path string, v any) (bool, error) {
	//nolint:gosec // path is rendered from the catalog's artifact names
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrResultReadFailed.Error()), "path", path)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrResultUnmarshalFailed.Error()), "path", path)
	}
	return true, nil
}
