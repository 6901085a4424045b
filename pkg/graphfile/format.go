package graphfile

import (
	"path/filepath"
	"strings"

	"github.com/dd0wney/assembly-kg/pkg/turtle"
)

// CompressedSuffix marks a snappy-compressed graph file, e.g. kg.ttl.sz
const CompressedSuffix = ".sz"

// Format is the serialization chosen from a file name
type Format struct {
	Syntax     turtle.Format
	Compressed bool
}

// DetectFormat picks the format from the extension: .ttl/.turtle, .nt, each
// optionally followed by .sz
func DetectFormat(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))

	var f Format
	if strings.HasSuffix(name, CompressedSuffix) {
		f.Compressed = true
		name = strings.TrimSuffix(name, CompressedSuffix)
	}

	switch filepath.Ext(name) {
	case ".ttl", ".turtle":
		f.Syntax = turtle.FormatTurtle
	case ".nt":
		f.Syntax = turtle.FormatNTriples
	default:
		return Format{}, ErrUnsupported
	}
	return f, nil
}
