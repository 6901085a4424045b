package vocabulary

import (
	"strings"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
)

// AssemblyIRI maps an assembly id such as "A100" to ex:Assembly_A100
func AssemblyIRI(id string) rdf.Term { return entityIRI("Assembly", id) }

// PartIRI maps a part id such as "P001" to ex:Part_P001
func PartIRI(id string) rdf.Term { return entityIRI("Part", id) }

// MaterialIRI maps a material id such as "M001" to ex:Material_M001
func MaterialIRI(id string) rdf.Term { return entityIRI("Material", id) }

// ManufacturerIRI maps a manufacturer id such as "C001" to ex:Manufacturer_C001
func ManufacturerIRI(id string) rdf.Term { return entityIRI("Manufacturer", id) }

func entityIRI(class, id string) rdf.Term {
	return rdf.IRI(Namespace + class + "_" + id)
}

// EntityID returns the id part of an entity IRI and its class name.
// ok is false for IRIs outside the namespace or without an id.
func EntityID(t rdf.Term) (class, id string, ok bool) {
	if !t.IsIRI() || !strings.HasPrefix(t.Value, Namespace) {
		return "", "", false
	}
	local := strings.TrimPrefix(t.Value, Namespace)
	class, id, found := strings.Cut(local, "_")
	if !found || class == "" || id == "" {
		return "", "", false
	}
	return class, id, true
}
