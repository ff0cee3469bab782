package dts

import (
	"bufio"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zsb/internal/core/domain"
)

// BoardSource picks the board DTS file in boardDir:
// the only one, else the one named after the descriptor, else the most
// specific identifier prefix, else the first in lexical order.
func (d *DeviceTree) BoardSource(boardDir, identifier, descriptorPath string) string {
	var sources []string
	_ = filepath.WalkDir(boardDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped
		}
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".dts") {
			sources = append(sources, path)
		}
		return nil
	})
	slices.Sort(sources)

	if len(sources) == 1 {
		return sources[0]
	}

	base := strings.TrimSuffix(filepath.Base(descriptorPath), filepath.Ext(descriptorPath))
	if candidate := filepath.Join(boardDir, base+".dts"); fileExists(candidate) {
		return candidate
	}

	sanitized := domain.SanitizeLower(domain.ParseIdentifier(identifier).WithoutRevision())
	for _, prefix := range domain.NamePrefixes(sanitized) {
		if candidate := filepath.Join(boardDir, prefix+".dts"); fileExists(candidate) {
			return candidate
		}
	}

	if len(sources) > 0 {
		return sources[0]
	}
	return ""
}

// IncludeChain follows the first non-header #include of each file.
// Local includes are recorded with a "!" prefix and resolved next to the
// including file; system includes resolve under {projectPath}/dts/{arch}.
// Names are recorded without extension. The walk ends at a missing file or a cycle.
func (d *DeviceTree) IncludeChain(projectPath, arch, dtsPath string) []string {
	chain := []string{}
	visited := make(map[string]bool)

	current := dtsPath
	for current != "" && !visited[current] {
		visited[current] = true

		include, local, ok := firstInclude(current)
		if !ok {
			break
		}

		name := strings.TrimSuffix(include, filepath.Ext(include))
		if local {
			chain = append(chain, "!"+name)
			current = filepath.Join(filepath.Dir(current), include)
		} else {
			chain = append(chain, name)
			current = filepath.Join(projectPath, "dts", arch, include)
		}
	}
	return chain
}

// firstInclude returns the first #include of path that is not a header.
func firstInclude(path string) (include string, local, ok bool) {
	// #nosec G304 -- path comes from the board tree
	f, err := os.Open(path)
	if err != nil {
		return "", false, false
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "#include") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		target := fields[1]
		system := strings.HasPrefix(target, "<") && strings.HasSuffix(target, ">")
		target = strings.Trim(target, ` "<>`)
		if strings.TrimPrefix(filepath.Ext(target), ".") == "h" {
			continue
		}
		return target, !system, true
	}
	return "", false, false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
