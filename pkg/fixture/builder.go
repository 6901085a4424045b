package fixture

import (
	"fmt"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
	"github.com/dd0wney/assembly-kg/pkg/storage"
	"github.com/dd0wney/assembly-kg/pkg/validation"
	"github.com/dd0wney/assembly-kg/pkg/vocabulary"
)

// Build validates the dataset and returns a store holding the schema triples and one
// set of triples per entity. The store is left writable so callers may extend it
// before freezing.
func Build(d *Dataset) (*storage.TripleStore, error) {
	if d == nil {
		return nil, fmt.Errorf("build graph: dataset cannot be nil")
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	triples, err := Triples(d)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	store := storage.NewTripleStore()
	for prefix, ns := range vocabulary.Prefixes() {
		store.BindPrefix(prefix, ns)
	}
	if err := store.AddAll(triples); err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	return store, nil
}

// Triples renders a validated dataset as triples in a stable order
func Triples(d *Dataset) ([]rdf.Triple, error) {
	var out []rdf.Triple
	add := func(s, p, o rdf.Term) {
		out = append(out, rdf.T(s, p, o))
	}

	for _, class := range vocabulary.Classes() {
		add(class, rdf.Type, rdf.Class)
	}
	for _, prop := range vocabulary.Properties() {
		add(prop, rdf.Type, rdf.Property)
	}

	for _, m := range d.Materials {
		iri := vocabulary.MaterialIRI(m.ID)
		add(iri, rdf.Type, vocabulary.Material)
		add(iri, rdf.Label, rdf.String(m.Label))
		if m.Grade != "" {
			add(iri, vocabulary.Grade, rdf.String(m.Grade))
		}
	}

	for _, m := range d.Manufacturers {
		iri := vocabulary.ManufacturerIRI(m.ID)
		add(iri, rdf.Type, vocabulary.Manufacturer)
		add(iri, rdf.Label, rdf.String(m.Label))
		add(iri, vocabulary.Country, rdf.String(m.Country))
	}

	for _, p := range d.Parts {
		weight, err := validation.ParseQuantity(p.WeightKg)
		if err != nil {
			return nil, fmt.Errorf("part %s weightKg: %w", p.ID, err)
		}
		cost, err := validation.ParseQuantity(p.CostUSD)
		if err != nil {
			return nil, fmt.Errorf("part %s costUSD: %w", p.ID, err)
		}

		iri := vocabulary.PartIRI(p.ID)
		add(iri, rdf.Type, vocabulary.Part)
		add(iri, rdf.Label, rdf.String(p.Label))
		add(iri, vocabulary.WeightKg, rdf.Decimal(weight))
		add(iri, vocabulary.CostUSD, rdf.Decimal(cost))
		add(iri, vocabulary.UsesMaterial, vocabulary.MaterialIRI(p.Material))
		add(iri, vocabulary.ManufacturedBy, vocabulary.ManufacturerIRI(p.Manufacturer))
		add(iri, vocabulary.Qty, rdf.Integer(int64(p.Qty)))
	}

	for _, a := range d.Assemblies {
		iri := vocabulary.AssemblyIRI(a.ID)
		add(iri, rdf.Type, vocabulary.Assembly)
		add(iri, rdf.Label, rdf.String(a.Label))
		for _, id := range a.Parts {
			add(iri, vocabulary.HasPart, vocabulary.PartIRI(id))
		}
	}

	return out, nil
}
