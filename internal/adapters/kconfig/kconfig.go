// Package kconfig reads Kconfig fragments and generated .config files.
package kconfig

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"

	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
)

// Reader implements ports.Kconfig.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Fragment returns the trimmed, non-empty, non-comment lines of path.
func (r *Reader) Fragment(path string) ([]string, bool, error) {
	lines, err := readLines(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	directives := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			directives = append(directives, trimmed)
		}
	}
	return directives, true, nil
}

// Missing returns the required lines that do not appear verbatim in configPath.
func (r *Reader) Missing(configPath string, required []string) ([]string, error) {
	if len(required) == 0 {
		return nil, nil
	}

	lines, err := readLines(configPath)
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		present[line] = struct{}{}
	}

	var missing []string
	for _, want := range required {
		if _, ok := present[want]; !ok {
			missing = append(missing, want)
		}
	}
	return missing, nil
}

// WriteFragment writes one directive per line.
func (r *Reader) WriteFragment(path string, lines []string) error {
	data := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOverlayWriteFailed.Error()), "path", path)
	}
	return nil
}

func readLines(path string) ([]string, error) {
	// #nosec G304 -- path is a catalog or build output path
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrKconfigReadFailed.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrKconfigReadFailed.Error()), "path", path)
	}
	return lines, nil
}
