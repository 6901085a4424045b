package graphfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
	"github.com/dd0wney/assembly-kg/pkg/storage"
	"github.com/dd0wney/assembly-kg/pkg/turtle"
)

const eng = "http://example.org/eng#"

func sampleStore(t *testing.T) *storage.TripleStore {
	t.Helper()

	ts := storage.NewTripleStore()
	ts.BindPrefix("ex", eng)
	ts.BindPrefix("rdfs", rdf.RDFSNamespace)
	part := rdf.IRI(eng + "Part_P006")
	require.NoError(t, ts.AddAll([]rdf.Triple{
		rdf.T(part, rdf.Type, rdf.IRI(eng+"Part")),
		rdf.T(part, rdf.Label, rdf.String("O-Ring OR12")),
		rdf.T(part, rdf.IRI(eng+"weightKg"), rdf.Literal("0.01", rdf.XSDDecimal)),
		rdf.T(part, rdf.IRI(eng+"qty"), rdf.Integer(4)),
	}))
	return ts
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path       string
		syntax     turtle.Format
		compressed bool
		wantErr    bool
	}{
		{"kg.ttl", turtle.FormatTurtle, false, false},
		{"data/KG.TTL", turtle.FormatTurtle, false, false},
		{"kg.turtle", turtle.FormatTurtle, false, false},
		{"kg.nt", turtle.FormatNTriples, false, false},
		{"kg.ttl.sz", turtle.FormatTurtle, true, false},
		{"kg.nt.sz", turtle.FormatNTriples, true, false},
		{"kg.json", "", false, true},
		{"kg.sz", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f, err := DetectFormat(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupported)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.syntax, f.Syntax)
			assert.Equal(t, tt.compressed, f.Compressed)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"kg.ttl", "kg.nt", "kg.ttl.sz", "kg.nt.sz"} {
		t.Run(name, func(t *testing.T) {
			src := sampleStore(t)
			path := filepath.Join(t.TempDir(), "nested", name)

			require.NoError(t, Save(ctx, path, src))

			loaded, err := Load(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, src.Triples(), loaded.Triples())
			assert.True(t, loaded.ReadOnly(), "loaded store should be frozen")
		})
	}
}

func TestSaveWritesTurtleWithPrefixes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kg.ttl")
	require.NoError(t, Save(context.Background(), path, sampleStore(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "@prefix ex: <http://example.org/eng#> .\n"))
	assert.Contains(t, text, "ex:Part_P006 a ex:Part ;")
	assert.Contains(t, text, "ex:weightKg 0.01")
}

func TestSaveCompressedIsSnappy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kg.ttl.sz")
	require.NoError(t, Save(context.Background(), path, sampleStore(t)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	plain, err := snappy.Decode(nil, raw)
	require.NoError(t, err)
	assert.Contains(t, string(plain), "O-Ring OR12")
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.ttl")

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), path)

	var gfErr *Error
	require.True(t, errors.As(err, &gfErr))
	assert.Equal(t, "load", gfErr.Op)
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ttl")
	content := "@prefix ex: <http://example.org/eng#> .\nex:Part_P001 ex:qty\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, IsParse(err))
	assert.True(t, errors.Is(err, turtle.ErrSyntax))
	assert.Contains(t, err.Error(), path)

	var gfErr *Error
	require.True(t, errors.As(err, &gfErr))
	assert.Equal(t, 3, gfErr.Line)
	assert.Equal(t, 1, gfErr.Column)
}

func TestLoadCorruptCompressedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kg.ttl.sz")
	require.NoError(t, os.WriteFile(path, []byte("not snappy at all"), 0o644))

	_, err := Load(context.Background(), path)
	assert.True(t, IsParse(err))
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.ttl")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	store, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load(context.Background(), "graph.xml")
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Contains(t, err.Error(), "graph.xml")
}

func TestSaveToUnwritableLocation(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	path := filepath.Join(blocker, "kg.ttl")
	err := Save(context.Background(), path, sampleStore(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
	assert.Contains(t, err.Error(), path)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, "kg.ttl")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, Save(ctx, "kg.ttl", sampleStore(t)), context.Canceled)
}
