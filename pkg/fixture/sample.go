package fixture

// SampleAssemblyID is the id of the assembly in the sample dataset
const SampleAssemblyID = "A100"

// Sample returns the Robotic Gripper RG-1 dataset: four parts, two materials, two
// manufacturers and one assembly. A fresh value is returned on every call.
func Sample() *Dataset {
	return &Dataset{
		Materials: []Material{
			{ID: "M001", Label: "Aluminum", Grade: "6061"},
			{ID: "M003", Label: "StainlessSteel", Grade: "304"},
		},
		Manufacturers: []Manufacturer{
			{ID: "C001", Label: "Acme Industrial", Country: "DE"},
			{ID: "C002", Label: "NorthForge", Country: "US"},
		},
		Parts: []Part{
			{ID: "P001", Label: "Linear Actuator LA100", WeightKg: "2.3", CostUSD: "120.0", Qty: 1, Material: "M001", Manufacturer: "C001"},
			{ID: "P003", Label: "Aluminum Bracket BR25", WeightKg: "0.5", CostUSD: "12.5", Qty: 2, Material: "M001", Manufacturer: "C002"},
			{ID: "P004", Label: "Stainless Bolt M8x20", WeightKg: "0.03", CostUSD: "0.5", Qty: 6, Material: "M003", Manufacturer: "C002"},
			{ID: "P006", Label: "O-Ring OR12", WeightKg: "0.01", CostUSD: "0.2", Qty: 4, Material: "M003", Manufacturer: "C002"},
		},
		Assemblies: []Assembly{
			{ID: SampleAssemblyID, Label: "Robotic Gripper RG-1", Parts: []string{"P001", "P003", "P004", "P006"}},
		},
	}
}
