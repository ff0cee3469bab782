// Package diff compares a local collective result with a published one.
package diff

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/ui/output"
)

// FrameWidth is the width of the separator framing each sample.
const FrameWidth = 80

// Change is one platform whose status of a sample differs. A nil side means
// the platform has no entry for the sample there.
type Change struct {
	Platform string
	Remote   *domain.SampleStatus
	Local    *domain.SampleStatus
}

// SampleDiff lists the changes of one sample.
type SampleDiff struct {
	Sample  string
	Changed []Change
	Added   []Change
	Removed []Change
}

// Empty reports whether the sample has no status changes.
func (d SampleDiff) Empty() bool {
	return len(d.Changed) == 0 && len(d.Added) == 0 && len(d.Removed) == 0
}

// Compare diffs every sample across the union of platforms, sorted by platform.
func Compare(samples []string, remote, local domain.CollectiveResult) []SampleDiff {
	platforms := make([]string, 0, len(remote)+len(local))
	for p := range remote {
		platforms = append(platforms, p)
	}
	for p := range local {
		if _, ok := remote[p]; !ok {
			platforms = append(platforms, p)
		}
	}
	slices.Sort(platforms)

	diffs := make([]SampleDiff, 0, len(samples))
	for _, sample := range samples {
		d := SampleDiff{Sample: sample}
		for _, p := range platforms {
			r, l := status(remote, p, sample), status(local, p, sample)
			switch {
			case r == nil && l == nil:
			case r == nil:
				d.Added = append(d.Added, Change{Platform: p, Local: l})
			case l == nil:
				d.Removed = append(d.Removed, Change{Platform: p, Remote: r})
			case *r != *l:
				d.Changed = append(d.Changed, Change{Platform: p, Remote: r, Local: l})
			}
		}
		diffs = append(diffs, d)
	}
	return diffs
}

func status(c domain.CollectiveResult, platform, sample string) *domain.SampleStatus {
	entry, ok := c[platform]
	if !ok {
		return nil
	}
	s, ok := entry.Samples[sample]
	if !ok {
		return nil
	}
	return &s
}

// Print writes the diffs, each sample framed by a separator line.
func Print(w io.Writer, diffs []SampleDiff) {
	out := output.NewWithProfile(w, output.ColorProfileANSI)
	frame := strings.Repeat("-", FrameWidth)

	for _, d := range diffs {
		_, _ = fmt.Fprintln(out, frame)
		name := out.String(d.Sample).Bold().String()
		if d.Empty() {
			_, _ = fmt.Fprintf(out, "No status changes for sample: %s\n", name)
			continue
		}

		_, _ = fmt.Fprintf(out, "Status changes for sample: %s\n", name)
		for _, group := range [][]Change{d.Changed, d.Added, d.Removed} {
			for _, c := range group {
				_, _ = fmt.Fprintf(out, "%s: %s -> %s\n", c.Platform, describe(c.Remote), describe(c.Local))
			}
		}
		_, _ = fmt.Fprintf(out, "%s\n\n", frame)
	}
}

func describe(s *domain.SampleStatus) string {
	switch {
	case s == nil:
		return "none"
	case s.ExtendedMemory:
		return s.Status + " (extended memory)"
	default:
		return s.Status
	}
}
