// Package export writes the result of every catalog query to its own CSV file.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dd0wney/assembly-kg/pkg/logging"
	"github.com/dd0wney/assembly-kg/pkg/query"
)

// Exporter runs the catalog and writes the results
type Exporter struct {
	runner   *query.Runner
	outDir   string
	stdout   io.Writer
	logger   logging.Logger
	recorder Recorder
}

// NewExporter creates an exporter writing into cfg.OutDir
func NewExporter(runner *query.Runner, cfg Config) *Exporter {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	return &Exporter{
		runner:   runner,
		outDir:   outDir,
		stdout:   stdout,
		logger:   logger.With(logging.Component("export")),
		recorder: cfg.Recorder,
	}
}

// Export writes <slug>.csv for each query in catalog order and stops at the first
// failure. Files written before the failure are kept and returned.
func (e *Exporter) Export(ctx context.Context, p query.Params) ([]File, error) {
	if err := os.MkdirAll(e.outDir, 0755); err != nil {
		return nil, &Error{Op: "mkdir", Path: e.outDir, Cause: err}
	}

	var files []File
	for _, q := range query.Catalog() {
		if err := ctx.Err(); err != nil {
			return files, err
		}

		path := filepath.Join(e.outDir, q.Slug+".csv")
		result, err := e.runner.Run(ctx, q, p)
		if err != nil {
			return files, &Error{Op: "query", Path: path, Query: q.Slug, Cause: err}
		}

		err = writeFile(path, result)
		if e.recorder != nil {
			e.recorder.RecordExportFile(result.Count(), err)
		}
		if err != nil {
			e.logger.Error("export failed", logging.Path(path), logging.QuerySlug(q.Slug), logging.Error(err))
			return files, &Error{Op: "write", Path: path, Query: q.Slug, Cause: err}
		}

		title := q.Title(p)
		fmt.Fprintf(e.stdout, "Wrote %s  (%s)\n", path, title)
		e.logger.Debug("csv written", logging.Path(path), logging.Rows(result.Count()))
		files = append(files, File{Path: path, Slug: q.Slug, Title: title, Rows: result.Count()})
	}

	e.logger.Info("export complete", logging.Count(len(files)), logging.Path(e.outDir))
	return files, nil
}

func writeFile(path string, result *query.ResultSet) (retErr error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()
	return WriteCSV(f, result)
}

// WriteCSV writes the declared columns as the header row followed by one record per
// result row. Unbound values become empty cells. Records end in CRLF (RFC 4180).
func WriteCSV(w io.Writer, result *query.ResultSet) (retErr error) {
	csvWriter := csv.NewWriter(w)
	csvWriter.UseCRLF = true
	defer func() {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil && retErr == nil {
			retErr = fmt.Errorf("CSV writer flush error: %w", err)
		}
	}()

	if err := csvWriter.Write(result.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range result.Rows {
		if err := csvWriter.Write(result.Strings(i)); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}
