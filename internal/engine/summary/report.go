package summary

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"slices"
	"text/template"

	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
)

// Report files written into the output directory.
const (
	ResultCSVFile  = "result.csv"
	BoardsCSVFile  = "boards.csv"
	CollectiveFile = "result.json"
)

//go:embed templates/summary.md.tmpl
var markdownSource string

var markdownTemplate = template.Must(template.New("summary").Funcs(template.FuncMap{
	"status": func(r domain.BuildResult) string {
		switch {
		case !r.Success:
			return "✗ failed"
		case r.ExtendedMemory:
			return "✓ built (extended memory)"
		default:
			return "✓ built"
		}
	},
}).Parse(markdownSource))

// Write stores the CSV reports and the collective result next to the results.
func (a *Aggregator) Write(cat *domain.Catalog, s domain.Summary) error {
	outDir := cat.OutputDir()
	if err := os.MkdirAll(outDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReportWriteFailed.Error()), "path", outDir)
	}

	if err := writeCSV(filepath.Join(outDir, ResultCSVFile), resultRows(s.Results)); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(outDir, BoardsCSVFile), boardRows(s.Collective)); err != nil {
		return err
	}
	return a.store.PutCollective(filepath.Join(outDir, CollectiveFile), s.Collective)
}

func resultRows(results []domain.BuildResult) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Platform, r.SampleName, flag(r.Success), flag(r.ExtendedMemory)})
	}
	return rows
}

func boardRows(collective domain.CollectiveResult) [][]string {
	platforms := make([]string, 0, len(collective))
	for p := range collective {
		platforms = append(platforms, p)
	}
	slices.Sort(platforms)

	rows := make([][]string, 0, len(platforms))
	for _, p := range platforms {
		entry := collective[p]
		rows = append(rows, []string{p, entry.Name, entry.SoC, entry.Arch})
	}
	return rows
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func writeCSV(path string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReportWriteFailed.Error()), "path", path)
	}
	if err := os.WriteFile(path, buf.Bytes(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReportWriteFailed.Error()), "path", path)
	}
	return nil
}

// Markdown renders the human-readable summary.
func Markdown(w io.Writer, s domain.Summary) error {
	if err := markdownTemplate.Execute(w, s); err != nil {
		return zerr.Wrap(err, domain.ErrReportWriteFailed.Error())
	}
	return nil
}
