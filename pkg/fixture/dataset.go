// Package fixture describes the seed data a knowledge graph is built from and builds
// the graph.
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/assembly-kg/pkg/validation"
)

// Dataset is the complete description of one graph
type Dataset struct {
	Materials     []Material     `yaml:"materials" validate:"required,min=1,unique=ID,dive"`
	Manufacturers []Manufacturer `yaml:"manufacturers" validate:"required,min=1,unique=ID,dive"`
	Parts         []Part         `yaml:"parts" validate:"required,min=1,unique=ID,dive"`
	Assemblies    []Assembly     `yaml:"assemblies" validate:"omitempty,unique=ID,dive"`
}

// Material is referenced by parts through usesMaterial
type Material struct {
	ID    string `yaml:"id" validate:"required,entityid"`
	Label string `yaml:"label" validate:"required"`
	Grade string `yaml:"grade"`
}

// Manufacturer is referenced by parts through manufacturedBy
type Manufacturer struct {
	ID      string `yaml:"id" validate:"required,entityid"`
	Label   string `yaml:"label" validate:"required"`
	Country string `yaml:"country" validate:"required"`
}

// Part carries its own quantity within the assembly that lists it. Weight and cost
// are decimal strings so no precision is lost between the file and the graph.
type Part struct {
	ID           string `yaml:"id" validate:"required,entityid"`
	Label        string `yaml:"label" validate:"required"`
	WeightKg     string `yaml:"weightKg" validate:"required,decimal"`
	CostUSD      string `yaml:"costUSD" validate:"required,decimal"`
	Qty          int    `yaml:"qty" validate:"gte=1"`
	Material     string `yaml:"material" validate:"required"`
	Manufacturer string `yaml:"manufacturer" validate:"required"`
}

// Assembly lists its member parts by id
type Assembly struct {
	ID    string   `yaml:"id" validate:"required,entityid"`
	Label string   `yaml:"label" validate:"required"`
	Parts []string `yaml:"parts" validate:"required,min=1,unique"`
}

// Validate checks field rules and cross references: every material, manufacturer and
// assembly member must exist, and a part may belong to at most one assembly.
func (d *Dataset) Validate() error {
	if err := validation.Struct(d); err != nil {
		return err
	}

	materials := make(map[string]bool, len(d.Materials))
	for _, m := range d.Materials {
		materials[m.ID] = true
	}
	manufacturers := make(map[string]bool, len(d.Manufacturers))
	for _, m := range d.Manufacturers {
		manufacturers[m.ID] = true
	}
	parts := make(map[string]bool, len(d.Parts))
	for _, p := range d.Parts {
		parts[p.ID] = true
	}

	cv := validation.NewConfigValidator("Dataset")
	for _, p := range d.Parts {
		cv.Reference("parts."+p.ID+".material", "material", p.Material, materials).
			Reference("parts."+p.ID+".manufacturer", "manufacturer", p.Manufacturer, manufacturers)
	}

	owner := make(map[string]string)
	for _, a := range d.Assemblies {
		for _, id := range a.Parts {
			cv.Custom("assemblies."+a.ID+".parts", func() error {
				if !parts[id] {
					return fmt.Errorf("unknown part %q", id)
				}
				if prev, taken := owner[id]; taken {
					return fmt.Errorf("part %q already belongs to assembly %q", id, prev)
				}
				owner[id] = a.ID
				return nil
			})
		}
	}

	return cv.Validate()
}

// LoadYAML reads and validates a dataset file
func LoadYAML(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	return ParseYAML(data, path)
}

// ParseYAML decodes and validates a dataset. name is used in error messages.
func ParseYAML(data []byte, name string) (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", name, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fixture %s: %w", name, err)
	}
	return &d, nil
}

// YAML renders the dataset in the format LoadYAML reads
func (d *Dataset) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}
