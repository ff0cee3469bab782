// Package buildlog parses reports printed by the Zephyr build.
package buildlog

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zsb/internal/core/domain"
)

// memoryUsage matches one row of the linker memory report, e.g.
// "FLASH:       12345 B       256 KB      4.71%".
var memoryUsage = regexp.MustCompile(`(\w+):\s*(\d+\s+\w{1,2})\s*(\d+\s+\w{1,2})\s*(\d+.\d+%)`)

var unitScale = map[string]int64{
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
}

// Parser implements ports.ReportParser.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// MemoryUsage returns region usage in bytes. Later rows for a region override earlier ones.
func (p *Parser) MemoryUsage(output string) map[string]domain.MemoryRegion {
	matches := memoryUsage.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return nil
	}

	usage := make(map[string]domain.MemoryRegion, len(matches))
	for _, m := range matches {
		used, ok := toBytes(m[2])
		if !ok {
			continue
		}
		total, ok := toBytes(m[3])
		if !ok {
			continue
		}
		usage[m[1]] = domain.MemoryRegion{Used: used, Total: total}
	}
	if len(usage) == 0 {
		return nil
	}
	return usage
}

// toBytes converts "<n> <unit>" with 1024-based units.
func toBytes(value string) (int64, bool) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return 0, false
	}
	scale, ok := unitScale[fields[1]]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return n * scale, true
}
