package vocabulary

import "github.com/dd0wney/assembly-kg/pkg/rdf"

// Namespace is the base IRI of the engineering vocabulary
const Namespace = "http://example.org/eng#"

// Prefix is the conventional prefix bound to Namespace
const Prefix = "ex"

// Classes
var (
	Part         = rdf.IRI(Namespace + "Part")
	Assembly     = rdf.IRI(Namespace + "Assembly")
	Material     = rdf.IRI(Namespace + "Material")
	Manufacturer = rdf.IRI(Namespace + "Manufacturer")
)

// Object properties
var (
	HasPart        = rdf.IRI(Namespace + "hasPart")
	UsesMaterial   = rdf.IRI(Namespace + "usesMaterial")
	ManufacturedBy = rdf.IRI(Namespace + "manufacturedBy")
)

// Datatype properties
var (
	WeightKg = rdf.IRI(Namespace + "weightKg")
	CostUSD  = rdf.IRI(Namespace + "costUSD")
	Qty      = rdf.IRI(Namespace + "qty")
	Country  = rdf.IRI(Namespace + "country")
	Grade    = rdf.IRI(Namespace + "grade")
)

// Classes lists every class the builder declares as rdfs:Class
func Classes() []rdf.Term {
	return []rdf.Term{Part, Assembly, Material, Manufacturer}
}

// Properties lists every property the builder declares as rdf:Property
func Properties() []rdf.Term {
	return []rdf.Term{HasPart, UsesMaterial, ManufacturedBy, WeightKg, CostUSD, Qty, Country, Grade}
}

// Prefixes returns the prefix bindings written at the top of serialized graphs
func Prefixes() map[string]string {
	return map[string]string{
		Prefix: Namespace,
		"rdf":  rdf.RDFNamespace,
		"rdfs": rdf.RDFSNamespace,
		"xsd":  rdf.XSDNamespace,
	}
}
