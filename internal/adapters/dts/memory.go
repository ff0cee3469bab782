// Package dts reads flattened device trees and writes resize overlays.
package dts

import (
	"bytes"
	"os"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
)

// DeviceTree implements ports.DeviceTree.
type DeviceTree struct{}

// New creates a new DeviceTree.
func New() *DeviceTree {
	return &DeviceTree{}
}

// regionAliases map linker region names to the chosen nodes that usually back them.
var regionAliases = map[string]string{
	"ram":         "sram",
	"rom":         "flash",
	"dram0_1_seg": "ipmmem0",
	"iccm":        "iccm0",
	"dccm":        "dccm0",
}

// parseMemoryNode resolves zephyr,<chosen> to its label and reg cells.
func parseMemoryNode(source, chosen string) (domain.MemoryNode, error) {
	chosenRe := regexp.MustCompile(`zephyr,` + regexp.QuoteMeta(chosen) + ` = &(\w+);`)
	m := chosenRe.FindStringSubmatch(source)
	if m == nil {
		return domain.MemoryNode{}, zerr.With(domain.ErrMemoryNodeNotFound, "chosen", chosen)
	}
	label := m[1]

	regRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(label) + `:(.*\n)*?.*reg = <(.*)>;`)
	r := regRe.FindStringSubmatch(source)
	if r == nil {
		return domain.MemoryNode{}, zerr.With(domain.ErrMemoryNodeNotFound, "label", label)
	}

	cells := strings.Fields(r[2])
	if len(cells) < 2 {
		return domain.MemoryNode{}, zerr.With(domain.ErrMemoryNodeUnparsable, "label", label)
	}
	base, sizeCell := cells[len(cells)-2], cells[len(cells)-1]

	size, err := strconv.ParseInt(strings.TrimPrefix(strings.ToLower(sizeCell), "0x"), 16, 64)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrMemoryNodeUnparsable.Error()), "label", label)
		return domain.MemoryNode{}, zerr.With(err, "size", sizeCell)
	}

	return domain.MemoryNode{Chosen: chosen, Label: label, Base: base, Size: size}, nil
}

// RegionNode resolves a linker region, falling back to its alias when the
// lowercased region is not itself a chosen node.
func (d *DeviceTree) RegionNode(dtsPath, region string) (domain.MemoryNode, error) {
	// #nosec G304 -- path points into the build directory
	data, err := os.ReadFile(dtsPath)
	if err != nil {
		return domain.MemoryNode{}, zerr.With(zerr.Wrap(err, domain.ErrDeviceTreeReadFailed.Error()), "path", dtsPath)
	}

	name := strings.ToLower(region)
	node, err := parseMemoryNode(string(data), name)
	if err == nil {
		return node, nil
	}

	alias, ok := regionAliases[name]
	if !ok {
		return domain.MemoryNode{}, zerr.With(err, "region", region)
	}
	node, err = parseMemoryNode(string(data), alias)
	if err != nil {
		return domain.MemoryNode{}, zerr.With(err, "region", region)
	}
	return node, nil
}

var overlayTemplate = template.Must(template.New("overlay").Parse(
	`{{range .}}&{{.Label}} {
	reg = <{{.Base}} {{printf "%#x" .Size}}>;
};
{{end}}`))

// WriteResizeOverlay writes an overlay redefining the reg property of every node.
func (d *DeviceTree) WriteResizeOverlay(path string, nodes []domain.MemoryNode) error {
	var buf bytes.Buffer
	if err := overlayTemplate.Execute(&buf, nodes); err != nil {
		return zerr.Wrap(err, domain.ErrOverlayWriteFailed.Error())
	}
	if err := os.WriteFile(path, buf.Bytes(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOverlayWriteFailed.Error()), "path", path)
	}
	return nil
}
