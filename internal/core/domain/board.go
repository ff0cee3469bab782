package domain

import (
	"regexp"
	"strings"
)

// BoardEntry is one discovered hardware target.
type BoardEntry struct {
	// Dir is the board definition directory inside the source tree.
	Dir string
	// Name is the toolchain identifier, possibly with revision and qualifiers.
	Name string
	// Arch is the architecture declared by the board descriptor.
	Arch string
	// FullName is the display name from the board descriptor.
	FullName string
	// DescriptorPath is the YAML file the entry was read from.
	DescriptorPath string
}

// ArtifactName returns the sanitized name used for artifact directories.
func (b BoardEntry) ArtifactName() string {
	return SanitizeLower(b.Name)
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// SanitizeLower replaces every character outside [a-zA-Z0-9_] with an underscore
// and lowercases the result.
func SanitizeLower(s string) string {
	return strings.ToLower(unsafeNameChars.ReplaceAllString(s, "_"))
}

const maxFullNameLen = 50

var parenthesised = regexp.MustCompile(`\(.*\)`)

// DisplayName shortens long board names by removing parenthesised text.
func DisplayName(name string) string {
	if len(name) > maxFullNameLen {
		name = strings.TrimSpace(parenthesised.ReplaceAllString(name, ""))
	}
	return name
}

var identifierParts = regexp.MustCompile(`^([^@/]+)(@[^/]+)?(/[^/]+)?(/.+)?$`)

// Identifier is a board identifier split into board@revision/soc/variant.
type Identifier struct {
	Board    string
	Revision string
	SoC      string
	Variant  string
}

// ParseIdentifier splits a board identifier. Missing parts are empty.
func ParseIdentifier(id string) Identifier {
	m := identifierParts.FindStringSubmatch(id)
	if m == nil {
		return Identifier{}
	}
	return Identifier{
		Board:    m[1],
		Revision: strings.TrimPrefix(m[2], "@"),
		SoC:      strings.TrimPrefix(m[3], "/"),
		Variant:  strings.TrimPrefix(m[4], "/"),
	}
}

// WithoutRevision returns board/soc/variant with the revision dropped.
func (i Identifier) WithoutRevision() string {
	parts := []string{i.Board}
	if i.SoC != "" {
		parts = append(parts, i.SoC)
	}
	if i.Variant != "" {
		parts = append(parts, i.Variant)
	}
	return strings.Join(parts, "/")
}

// NamePrefixes returns the underscore-separated prefixes of a sanitized identifier,
// most specific first: a_b_c -> [a_b_c a_b a].
func NamePrefixes(sanitized string) []string {
	parts := strings.Split(sanitized, "_")
	out := make([]string, 0, len(parts))
	for i := len(parts); i > 0; i-- {
		out = append(out, strings.Join(parts[:i], "_"))
	}
	return out
}
