// Package boards discovers hardware targets from board descriptor files.
package boards

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar"
	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// descriptor is the subset of a board YAML file zsb reads.
type descriptor struct {
	Identifier string         `yaml:"identifier"`
	Name       string         `yaml:"name"`
	Arch       string         `yaml:"arch"`
	Variants   map[string]any `yaml:"variants"`
}

// identifiers lists the targets a descriptor declares, sorted.
func (d descriptor) identifiers() []string {
	if d.Identifier != "" {
		return []string{d.Identifier}
	}
	ids := make([]string, 0, len(d.Variants))
	for id := range d.Variants {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// skippedDirs are path fragments whose YAML files are not board descriptors.
var skippedDirs = []string{"dts/bindings", "support"}

// Index implements ports.BoardIndex over the filesystem.
type Index struct{}

// NewIndex creates a new board index.
func NewIndex() *Index {
	return &Index{}
}

// Scan walks boardsRoot for board descriptors and returns the non-excluded targets,
// sorted by identifier.
func (i *Index) Scan(boardsRoot string, exclude domain.Exclusions) ([]domain.BoardEntry, error) {
	info, err := os.Stat(boardsRoot)
	if err != nil || !info.IsDir() {
		return nil, zerr.With(domain.ErrBoardsDirNotFound, "path", boardsRoot)
	}

	files, err := descriptorFiles(boardsRoot)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrBoardsDirNotFound.Error()), "path", boardsRoot)
	}

	seen := make(map[string]bool)
	var entries []domain.BoardEntry

	for _, file := range files {
		dir := filepath.Dir(file)
		if skipped(dir) {
			continue
		}

		desc, ok := readDescriptor(file)
		if !ok {
			continue
		}
		if slices.Contains(exclude.Archs, desc.Arch) {
			continue
		}

		for _, id := range desc.identifiers() {
			if seen[id] || exclude.Excludes(desc.Arch, id) {
				continue
			}
			seen[id] = true
			entries = append(entries, newEntry(dir, id, file, desc))
		}
	}

	slices.SortFunc(entries, func(a, b domain.BoardEntry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries, nil
}

// Lookup returns the entry for identifier from the first matching descriptor in boardDir.
func (i *Index) Lookup(boardDir, identifier string) (domain.BoardEntry, error) {
	files, err := descriptorFiles(boardDir)
	if err != nil {
		return domain.BoardEntry{}, zerr.With(zerr.Wrap(err, domain.ErrBoardMetadataNotFound.Error()), "board_dir", boardDir)
	}

	for _, file := range files {
		desc, ok := readDescriptor(file)
		if !ok || !slices.Contains(desc.identifiers(), identifier) {
			continue
		}
		if desc.Name == "" || desc.Arch == "" {
			return domain.BoardEntry{}, zerr.With(domain.ErrBoardMetadataInvalid, "path", file)
		}
		return newEntry(boardDir, identifier, file, desc), nil
	}

	err = zerr.With(domain.ErrBoardMetadataNotFound, "board", identifier)
	return domain.BoardEntry{}, zerr.With(err, "board_dir", boardDir)
}

func newEntry(dir, id, file string, desc descriptor) domain.BoardEntry {
	return domain.BoardEntry{
		Dir:            dir,
		Name:           id,
		Arch:           desc.Arch,
		FullName:       domain.DisplayName(desc.Name),
		DescriptorPath: file,
	}
}

// descriptorFiles returns every YAML file under root in lexical order.
func descriptorFiles(root string) ([]string, error) {
	files, err := doublestar.Glob(filepath.Join(root, "**", "*.yaml"))
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

func skipped(dir string) bool {
	slashed := filepath.ToSlash(dir)
	for _, s := range skippedDirs {
		if strings.Contains(slashed, s) {
			return true
		}
	}
	return false
}

// readDescriptor parses a board YAML file. Unreadable and unrecognized files are reported as not ok.
func readDescriptor(path string) (descriptor, bool) {
	// #nosec G304 -- path comes from a glob under the board tree
	data, err := os.ReadFile(path)
	if err != nil {
		return descriptor{}, false
	}

	var desc descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return descriptor{}, false
	}
	if desc.Identifier == "" && len(desc.Variants) == 0 {
		return descriptor{}, false
	}
	return desc, true
}
