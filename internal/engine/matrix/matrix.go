// Package matrix expands the catalog into the ordered list of build targets.
package matrix

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/core/ports"
)

// BoardsDirName is the board definition directory inside the project tree.
const BoardsDirName = "boards"

// Expander pairs discovered boards with catalog samples.
type Expander struct {
	boards ports.BoardIndex
}

// NewExpander creates a new Expander.
func NewExpander(boards ports.BoardIndex) *Expander {
	return &Expander{boards: boards}
}

// Expand returns every (board, sample) target: boards ordered by identifier,
// samples in catalog order within each board. It fails before producing any
// target when a sample path is missing or two boards share an artifact name.
func (e *Expander) Expand(cat *domain.Catalog) ([]domain.BuildTarget, error) {
	if err := CheckSamplePaths(cat); err != nil {
		return nil, err
	}

	boards, err := e.boards.Scan(filepath.Join(cat.ProjectPath, BoardsDirName), cat.Exclude)
	if err != nil {
		return nil, err
	}
	if err := checkCollisions(boards); err != nil {
		return nil, err
	}

	var targets []domain.BuildTarget
	for _, board := range boards {
		for _, sample := range cat.Samples {
			if !sample.AllowsBoard(board.Name) {
				continue
			}
			targets = append(targets, domain.BuildTarget{Board: board, Sample: sample})
		}
	}
	return number(targets), nil
}

// CheckSamplePaths verifies that every sample directory exists in its source tree.
func CheckSamplePaths(cat *domain.Catalog) error {
	for _, sample := range cat.Samples {
		path := filepath.Join(cat.WorkspaceRoot(sample), sample.Path)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			return zerr.With(zerr.With(domain.ErrSamplePathNotFound, "sample", sample.Key), "path", path)
		}
	}
	return nil
}

func checkCollisions(boards []domain.BoardEntry) error {
	seen := make(map[string]string, len(boards))
	for _, b := range boards {
		name := b.ArtifactName()
		if other, ok := seen[name]; ok && other != b.Name {
			err := zerr.With(domain.ErrArtifactNameCollision, "artifact_name", name)
			return zerr.With(zerr.With(err, "board", b.Name), "other", other)
		}
		seen[name] = b.Name
	}
	return nil
}

func number(targets []domain.BuildTarget) []domain.BuildTarget {
	for i := range targets {
		targets[i].Index = i + 1
		targets[i].Total = len(targets)
	}
	return targets
}

// Shard selects a stable subset of targets: Index out of Total.
type Shard struct {
	Index int
	Total int
}

// ParseShard parses "i/N" with 1 <= i <= N.
func ParseShard(raw string) (Shard, error) {
	idx, total, ok := strings.Cut(raw, "/")
	if !ok {
		return Shard{}, zerr.With(domain.ErrInvalidShard, "shard", raw)
	}
	i, errI := strconv.Atoi(idx)
	n, errN := strconv.Atoi(total)
	if errI != nil || errN != nil || n < 1 || i < 1 || i > n {
		return Shard{}, zerr.With(domain.ErrInvalidShard, "shard", raw)
	}
	return Shard{Index: i, Total: n}, nil
}

// Apply keeps the targets whose key hashes into this shard and renumbers them.
func (s Shard) Apply(targets []domain.BuildTarget) []domain.BuildTarget {
	if s.Total <= 1 {
		return targets
	}

	var kept []domain.BuildTarget
	for _, t := range targets {
		if int(xxhash.Sum64String(t.Board.Name+"/"+t.Sample.Key)%uint64(s.Total)) == s.Index-1 {
			kept = append(kept, t)
		}
	}
	return number(kept)
}

// Write prints the listing, one "board_dir board sample" line per target.
func Write(w io.Writer, targets []domain.BuildTarget) error {
	bw := bufio.NewWriter(w)
	for _, t := range targets {
		if _, err := fmt.Fprintln(bw, t.Line()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadListing parses a listing written by Write. Blank lines are ignored.
func ReadListing(r io.Reader) ([]domain.MatrixLine, error) {
	var lines []domain.MatrixLine
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		line, ok := domain.ParseMatrixLine(text)
		if !ok {
			return nil, zerr.With(zerr.With(domain.ErrMatrixReadFailed, "line", n), "text", text)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrMatrixReadFailed.Error())
	}
	return lines, nil
}

// ReadListingFile parses the listing at path.
func ReadListingFile(path string) ([]domain.MatrixLine, error) {
	//nolint:gosec // path is a user-provided listing
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrMatrixReadFailed.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	return ReadListing(f)
}
