// Package vocabulary defines the engineering namespace used by the assembly graph:
// the four entity classes, their properties, and the IRI scheme for entity ids.
//
// Entity IRIs are built from opaque ids by prefixing the class name:
//
//	ex:Assembly_A100, ex:Part_P001, ex:Material_M001, ex:Manufacturer_C001
//
// Ids are never parsed or interpolated into query text; an id that names no entity
// simply produces an IRI that matches nothing.
package vocabulary
