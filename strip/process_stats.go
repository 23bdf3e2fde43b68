package strip

import (
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// FileStats is the dry-run outcome for one file.
type FileStats struct {
	Path string
	LineStats
}

// Report is the outcome of a Stats run.
type Report struct {
	Files    []FileStats
	Total    LineStats
	Failures []*FileError
}

func (r *Report) Err() error {
	return joinFailures(r.Failures)
}

// Render writes the report as a table, one row per file plus a total.
func (r *Report) Render(w io.Writer) error {
	tw := tablewriter.NewWriter(w)
	tw.Header("file", "lines", "dropped", "truncated", "changed")
	for _, fs := range r.Files {
		if err := tw.Append(statsRow(fs.Path, fs.LineStats)); err != nil {
			return err
		}
	}
	tw.Footer(cells(statsRow(fmt.Sprintf("total (%d files)", len(r.Files)), r.Total))...)
	return tw.Render()
}

func cells(row []string) []any {
	out := make([]any, len(row))
	for i, c := range row {
		out[i] = c
	}
	return out
}

func statsRow(name string, ls LineStats) []string {
	return []string{
		name,
		strconv.Itoa(ls.Lines),
		strconv.Itoa(ls.Dropped),
		strconv.Itoa(ls.Truncated),
		strconv.Itoa(ls.Changed),
	}
}

type statsProcessor struct {
	codec  *codec
	logger *log.Logger
	walker *walker
	report *Report
}

func (sp *statsProcessor) process(path string) error {
	sp.logger.Printf("Scanning %s\n", path)

	raw, err := readSource(path)
	if err != nil {
		return &FileError{Path: path, Stage: StageRead, Err: err}
	}
	text, err := sp.codec.decode(raw)
	if err != nil {
		return &FileError{Path: path, Stage: StageRead, Err: err}
	}

	_, stats := StripText(text)
	sp.report.Files = append(sp.report.Files, FileStats{Path: sp.walker.relative(path), LineStats: stats})
	sp.report.Total.add(stats)
	return nil
}
