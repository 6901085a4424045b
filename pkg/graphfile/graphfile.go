// Package graphfile loads and saves the serialized knowledge graph.
package graphfile

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"

	"github.com/dd0wney/assembly-kg/pkg/storage"
	"github.com/dd0wney/assembly-kg/pkg/turtle"
)

// Load reads a graph file into a new store. The returned store is frozen.
func Load(ctx context.Context, path string) (*storage.TripleStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, newError("load", path, err, nil)
	}

	data, err := readMapped(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError("load", path, ErrNotFound, nil)
		}
		return nil, newError("load", path, ErrRead, err)
	}

	if format.Compressed {
		data, err = snappy.Decode(nil, data)
		if err != nil {
			return nil, newError("load", path, ErrParse, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := turtle.Parse(data)
	if err != nil {
		return nil, newError("load", path, ErrParse, err)
	}

	store := storage.NewTripleStore()
	for prefix, ns := range doc.Prefixes {
		store.BindPrefix(prefix, ns)
	}
	if err := store.AddAll(doc.Triples); err != nil {
		return nil, newError("load", path, ErrParse, err)
	}
	store.Freeze()

	return store, nil
}

// readMapped copies the file contents out of a read-only memory map
func readMapped(path string) ([]byte, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	buf := make([]byte, reader.Len())
	if len(buf) == 0 {
		return buf, nil
	}
	if _, err := reader.ReadAt(buf, 0); err != nil {
		return nil, err
	}
	return buf, nil
}

// Save serializes the store to path in the format implied by its extension. Parent
// directories are created. The file is written to a temporary name and renamed so a
// failed save never leaves a truncated graph behind.
func Save(ctx context.Context, path string, store *storage.TripleStore) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	format, err := DetectFormat(path)
	if err != nil {
		return newError("save", path, err, nil)
	}

	var buf bytes.Buffer
	enc := turtle.NewEncoder(&buf)
	enc.BindPrefixes(store.Prefixes())
	if err := enc.Encode(format.Syntax, store.Triples()); err != nil {
		return newError("save", path, ErrWrite, err)
	}

	data := buf.Bytes()
	if format.Compressed {
		data = snappy.Encode(nil, data)
	}

	if err := writeAtomic(path, data); err != nil {
		return newError("save", path, ErrWrite, err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
