package fixture

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
	"github.com/dd0wney/assembly-kg/pkg/vocabulary"
)

func TestSampleIsValid(t *testing.T) {
	require.NoError(t, Sample().Validate())
}

func TestSampleIsFresh(t *testing.T) {
	a := Sample()
	a.Parts[0].Label = "changed"
	assert.Equal(t, "Linear Actuator LA100", Sample().Parts[0].Label)
}

func TestBuildSample(t *testing.T) {
	store, err := Build(Sample())
	require.NoError(t, err)

	// 12 schema + 6 material + 6 manufacturer + 28 part + 6 assembly triples
	assert.Equal(t, 58, store.Len())
	assert.False(t, store.ReadOnly())

	p001 := vocabulary.PartIRI("P001")
	assert.True(t, store.Contains(rdf.T(p001, vocabulary.WeightKg, rdf.Literal("2.3", rdf.XSDDecimal))))
	assert.True(t, store.Contains(rdf.T(p001, vocabulary.CostUSD, rdf.Literal("120.0", rdf.XSDDecimal))))
	assert.True(t, store.Contains(rdf.T(p001, vocabulary.Qty, rdf.Integer(1))))
	assert.True(t, store.Contains(rdf.T(vocabulary.Part, rdf.Type, rdf.Class)))
	assert.True(t, store.Contains(rdf.T(vocabulary.Grade, rdf.Type, rdf.Property)))

	members := store.Objects(vocabulary.AssemblyIRI("A100"), vocabulary.HasPart)
	assert.Len(t, members, 4)
	assert.Len(t, store.InstancesOf(vocabulary.Part), 4)

	assert.Equal(t, vocabulary.Namespace, store.Prefixes()["ex"])
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Dataset)
		contains string
	}{
		{
			name:     "unknown material",
			mutate:   func(d *Dataset) { d.Parts[0].Material = "M999" },
			contains: `Dataset.parts.P001.material: unknown material "M999"`,
		},
		{
			name:     "unknown manufacturer",
			mutate:   func(d *Dataset) { d.Parts[2].Manufacturer = "C404" },
			contains: `unknown manufacturer "C404"`,
		},
		{
			name:     "unknown assembly member",
			mutate:   func(d *Dataset) { d.Assemblies[0].Parts = append(d.Assemblies[0].Parts, "P777") },
			contains: `unknown part "P777"`,
		},
		{
			name: "part in two assemblies",
			mutate: func(d *Dataset) {
				d.Assemblies = append(d.Assemblies, Assembly{ID: "A200", Label: "Second", Parts: []string{"P004"}})
			},
			contains: `part "P004" already belongs to assembly "A100"`,
		},
		{
			name:     "duplicate part id",
			mutate:   func(d *Dataset) { d.Parts[1].ID = "P001" },
			contains: "parts: duplicate ID",
		},
		{
			name:     "zero quantity",
			mutate:   func(d *Dataset) { d.Parts[3].Qty = 0 },
			contains: "parts[3].qty",
		},
		{
			name:     "negative cost",
			mutate:   func(d *Dataset) { d.Parts[2].CostUSD = "-0.5" },
			contains: "parts[2].costUSD",
		},
		{
			name:     "empty label",
			mutate:   func(d *Dataset) { d.Materials[1].Label = "" },
			contains: "materials[1].label: field is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Sample()
			tt.mutate(d)

			err := d.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)

			_, err = Build(d)
			assert.Error(t, err)
		})
	}
}

func TestBuildNil(t *testing.T) {
	_, err := Build(nil)
	assert.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	d, err := LoadYAML(filepath.Join("testdata", "gripper.yaml"))
	require.NoError(t, err)

	require.Len(t, d.Parts, 3)
	assert.Equal(t, "2.3", d.Parts[0].WeightKg)
	assert.Equal(t, "120.0", d.Parts[0].CostUSD)
	assert.Equal(t, "6061", d.Materials[0].Grade)
	assert.Equal(t, []string{"P001", "P003"}, d.Assemblies[0].Parts)

	store, err := Build(d)
	require.NoError(t, err)
	assert.Len(t, store.InstancesOf(vocabulary.Part), 3)
}

func TestLoadYAMLMissing(t *testing.T) {
	_, err := LoadYAML(filepath.Join("testdata", "nope.yaml"))
	assert.ErrorContains(t, err, "nope.yaml")
}

func TestParseYAMLInvalid(t *testing.T) {
	_, err := ParseYAML([]byte("materials: [}"), "broken.yaml")
	assert.ErrorContains(t, err, "parse fixture broken.yaml")

	_, err = ParseYAML([]byte("materials: []\n"), "empty.yaml")
	assert.ErrorContains(t, err, "invalid fixture empty.yaml")
}

func TestYAMLRoundTrip(t *testing.T) {
	data, err := Sample().YAML()
	require.NoError(t, err)

	d, err := ParseYAML(data, "sample.yaml")
	require.NoError(t, err)
	assert.Equal(t, Sample(), d)
}
