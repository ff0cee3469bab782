package domain

// Stats counts results by outcome.
type Stats struct {
	Built    int `json:"built"`
	BuiltExt int `json:"built_ext"`
	Failed   int `json:"failed"`
	Missing  int `json:"missing"`
}

// Total returns the number of targets accounted for.
func (s Stats) Total() int {
	return s.Built + s.BuiltExt + s.Failed + s.Missing
}

// SampleStatus is one sample's entry in the collective result.
type SampleStatus struct {
	Status         string `json:"status"`
	ExtendedMemory bool   `json:"extended_memory"`
}

// PlatformSummary is one board's entry in the collective result.
type PlatformSummary struct {
	Arch    string                  `json:"arch"`
	Name    string                  `json:"name"`
	SoC     string                  `json:"soc"`
	Samples map[string]SampleStatus `json:"samples"`
}

// CollectiveResult maps sanitized platform names to their summaries.
type CollectiveResult map[string]PlatformSummary

// Malformed describes a result document that could not be loaded.
type Malformed struct {
	Path string
	Err  error
}

// Summary is the aggregate over one run's results.
type Summary struct {
	Versions   Versions
	Stats      Stats
	Results    []BuildResult
	Collective CollectiveResult
	// BySample groups results per sample in catalog order, each sorted by platform.
	BySample []SampleResults
	// Missing lists target keys expected by the matrix with no usable result.
	Missing   []string
	Malformed []Malformed
}

// SampleResults is one sample's results, sorted by platform.
type SampleResults struct {
	Sample  string
	Label   string
	Results []BuildResult
}
