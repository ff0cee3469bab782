package domain

import (
	"encoding/json"
	"regexp"
)

// Remediation names how a retryable failure is worked around on retry.
type Remediation string

const (
	// RemediationDTSResize grows the overflowing device-tree memory nodes.
	RemediationDTSResize Remediation = "dts-resize"
	// RemediationKconfig applies a static Kconfig fragment.
	RemediationKconfig Remediation = "kconfig"
)

// OverflowSignature is a matchable log pattern with the remediation applied on retry.
// For dts-resize the pattern must capture the region name and the overflow in bytes.
type OverflowSignature struct {
	Name        string         `json:"name"`
	Pattern     *regexp.Regexp `json:"-"`
	Remediation Remediation    `json:"remediation"`
	Kconfig     []string       `json:"kconfig,omitempty"`
}

// MarshalJSON renders the signature with its pattern source.
func (s OverflowSignature) MarshalJSON() ([]byte, error) {
	pattern := ""
	if s.Pattern != nil {
		pattern = s.Pattern.String()
	}
	return json.Marshal(struct {
		Name        string      `json:"name"`
		Pattern     string      `json:"pattern"`
		Remediation Remediation `json:"remediation"`
		Kconfig     []string    `json:"kconfig,omitempty"`
	}{s.Name, pattern, s.Remediation, s.Kconfig})
}

// Default patterns.
const (
	LinkerOverflowPattern  = "region `(\\S+)' overflowed by (\\d+) bytes"
	ArchUnsupportedPattern = "Arch .*? not supported"
)

// DefaultSignatures returns the signature set used when the catalog declares none.
func DefaultSignatures() []OverflowSignature {
	return []OverflowSignature{
		{
			Name:        "linker-region-overflow",
			Pattern:     regexp.MustCompile(LinkerOverflowPattern),
			Remediation: RemediationDTSResize,
		},
	}
}

// DefaultNonRetryable returns the patterns that end a build without retry.
func DefaultNonRetryable() []*regexp.Regexp {
	return []*regexp.Regexp{regexp.MustCompile(ArchUnsupportedPattern)}
}
