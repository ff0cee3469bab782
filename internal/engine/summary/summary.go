// Package summary aggregates the results of a run into statistics and reports.
package summary

import (
	"slices"
	"strings"

	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/core/ports"
)

// Options configure an aggregation.
type Options struct {
	// Expected is the matrix the run was built from. When nil, only malformed
	// results are counted as missing.
	Expected []domain.MatrixLine
	Versions domain.Versions
}

// Aggregator summarizes the result documents of an output directory.
type Aggregator struct {
	store ports.ResultStore
}

// New creates a new Aggregator.
func New(store ports.ResultStore) *Aggregator {
	return &Aggregator{store: store}
}

// Summarize loads every result under the catalog's output directory.
// Samples omitted from results are left out of every figure.
func (a *Aggregator) Summarize(cat *domain.Catalog, opts Options) (domain.Summary, error) {
	all, malformed, err := a.store.List(cat.OutputDir())
	if err != nil {
		return domain.Summary{}, err
	}

	visible := make(map[string]bool)
	for _, s := range cat.Visible() {
		visible[s.Key] = true
	}

	var results []domain.BuildResult
	for _, r := range all {
		if visible[r.SampleName] {
			results = append(results, r)
		}
	}

	s := domain.Summary{
		Versions:   opts.Versions,
		Stats:      stats(results),
		Results:    results,
		Collective: Collective(cat, results),
		BySample:   bySample(cat, results),
		Malformed:  malformed,
	}

	if opts.Expected == nil {
		s.Stats.Missing = len(malformed)
		return s, nil
	}

	s.Missing = missing(results, opts.Expected, visible)
	s.Stats.Missing = len(s.Missing)
	return s, nil
}

func stats(results []domain.BuildResult) domain.Stats {
	var st domain.Stats
	for _, r := range results {
		switch {
		case !r.Success:
			st.Failed++
		case r.ExtendedMemory:
			st.BuiltExt++
		default:
			st.Built++
		}
	}
	return st
}

// missing returns the expected target keys without a usable result, in listing order.
func missing(results []domain.BuildResult, expected []domain.MatrixLine, visible map[string]bool) []string {
	have := make(map[string]bool, len(results))
	for _, r := range results {
		have[r.Key()] = true
	}

	var out []string
	for _, line := range expected {
		if !visible[line.Sample] || have[line.Key()] {
			continue
		}
		out = append(out, line.Key())
	}
	return out
}

func bySample(cat *domain.Catalog, results []domain.BuildResult) []domain.SampleResults {
	var out []domain.SampleResults
	for _, s := range cat.Visible() {
		group := domain.SampleResults{Sample: s.Key, Label: s.Name}
		if group.Label == "" {
			group.Label = s.Key
		}
		for _, r := range results {
			if r.SampleName == s.Key {
				group.Results = append(group.Results, r)
			}
		}
		slices.SortStableFunc(group.Results, func(a, b domain.BuildResult) int {
			return strings.Compare(a.Platform, b.Platform)
		})
		out = append(out, group)
	}
	return out
}

// Collective groups results per platform. Display names shared by several
// boards are made unique with the board revision, or the identifier when the
// board has none.
func Collective(cat *domain.Catalog, results []domain.BuildResult) domain.CollectiveResult {
	duplicates := duplicateNames(cat, results)
	collective := make(domain.CollectiveResult)

	for _, r := range results {
		entry, ok := collective[r.Platform]
		if !ok {
			entry = domain.PlatformSummary{
				Arch:    r.Arch,
				Name:    displayName(r, duplicates),
				Samples: make(map[string]domain.SampleStatus),
			}
		}
		if entry.SoC == "" {
			entry.SoC = SoCInfo(r.DTSIncludeChain)
		}
		entry.Samples[r.SampleName] = domain.SampleStatus{
			Status:         r.Status(),
			ExtendedMemory: r.ExtendedMemory,
		}
		collective[r.Platform] = entry
	}
	return collective
}

// duplicateNames finds display names used by more than one board among the
// results of the first reported sample.
func duplicateNames(cat *domain.Catalog, results []domain.BuildResult) map[string]bool {
	visible := cat.Visible()
	if len(visible) == 0 {
		return nil
	}
	first := visible[0].Key

	seen := make(map[string]bool)
	duplicates := make(map[string]bool)
	for _, r := range results {
		if r.SampleName != first {
			continue
		}
		if seen[r.PlatformFullName] {
			duplicates[r.PlatformFullName] = true
		}
		seen[r.PlatformFullName] = true
	}
	return duplicates
}

func displayName(r domain.BuildResult, duplicates map[string]bool) string {
	if !duplicates[r.PlatformFullName] {
		return r.PlatformFullName
	}
	if rev := domain.ParseIdentifier(r.PlatformOriginal).Revision; rev != "" {
		return r.PlatformFullName + " " + rev
	}
	return r.PlatformFullName + " " + r.PlatformOriginal
}

var socRewrites = []struct{ from, to string }{
	{"arm/armv", "Arm v"},
	{"arm64/armv", "Arm v"},
	{"xtensa/xtensa", "Xtensa"},
}

// SoCInfo derives a short SoC description from a device-tree include chain.
func SoCInfo(chain []string) string {
	var filtered []string
	for _, entry := range chain {
		if strings.Contains(entry, "!skeleton") {
			continue
		}
		entry = strings.TrimLeft(entry, "!")
		if !slices.Contains(filtered, entry) {
			filtered = append(filtered, entry)
		}
	}
	if len(filtered) == 0 {
		return ""
	}

	last := len(filtered) - 1
	for _, rw := range socRewrites {
		filtered[last] = strings.ReplaceAll(filtered[last], rw.from, rw.to)
	}

	if len(filtered) == 1 {
		return filtered[0]
	}
	return filtered[last] + " " + filtered[0]
}
