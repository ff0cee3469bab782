package ports

import "go.trai.ch/zsb/internal/core/domain"

// ReportParser extracts structured data from toolchain output.
//
//go:generate go run go.uber.org/mock/mockgen -source=report.go -destination=mocks/mock_report.go -package=mocks
type ReportParser interface {
	// MemoryUsage parses the memory-region report. It returns nil when none was emitted.
	MemoryUsage(output string) map[string]domain.MemoryRegion
}
