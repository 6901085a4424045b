package export

import (
	"io"

	"github.com/dd0wney/assembly-kg/pkg/logging"
)

// Recorder receives one call per CSV file attempted
type Recorder interface {
	RecordExportFile(rows int, err error)
}

// Config holds configuration for the Exporter
type Config struct {
	// OutDir receives one <slug>.csv per query; created if absent
	OutDir string
	// Stdout receives the "Wrote ..." confirmation lines
	Stdout   io.Writer
	Logger   logging.Logger
	Recorder Recorder
}

// File describes one written CSV file
type File struct {
	Path  string
	Slug  string
	Title string
	Rows  int
}
