package models

// Magnetic response values.
const (
	Magnetic    = "magnetic"
	NonMagnetic = "non-magnetic"
)

// Physical holds room-temperature physical properties in SI units
// (kg/m³, °C, J/kg·K, W/m·K, 1/K, Ω·m, MPa).
type Physical struct {
	Density               float64      `json:"density" yaml:"density"`
	MeltingPoint          MeltingPoint `json:"melting_point" yaml:"melting_point"`
	SpecificHeat          float64      `json:"specific_heat" yaml:"specific_heat"`
	ThermalConductivity   float64      `json:"thermal_conductivity" yaml:"thermal_conductivity"`
	ThermalExpansion      float64      `json:"thermal_expansion" yaml:"thermal_expansion"`
	ElectricalResistivity float64      `json:"electrical_resistivity" yaml:"electrical_resistivity"`
	Magnetic              string       `json:"magnetic" yaml:"magnetic"`
	PoissonsRatio         float64      `json:"poissons_ratio" yaml:"poissons_ratio"`
	ElasticModulus        float64      `json:"elastic_modulus" yaml:"elastic_modulus"`
	ShearModulus          float64      `json:"shear_modulus" yaml:"shear_modulus"`
}

// MeltingPoint is the melting interval in °C.
type MeltingPoint struct {
	Solidus  float64 `json:"solidus" yaml:"solidus"`
	Liquidus float64 `json:"liquidus" yaml:"liquidus"`
}

// Mechanical holds the mechanical properties for the record's condition.
type Mechanical struct {
	Hardness          Hardness     `json:"hardness" yaml:"hardness"`
	TensileStrength   Span         `json:"tensile_strength" yaml:"tensile_strength"`
	YieldStrength     Span         `json:"yield_strength" yaml:"yield_strength"`
	Elongation        Span         `json:"elongation" yaml:"elongation"`
	ReductionOfArea   Span         `json:"reduction_of_area" yaml:"reduction_of_area"`
	ImpactEnergy      ImpactEnergy `json:"impact_energy" yaml:"impact_energy"`
	FatigueStrength   float64      `json:"fatigue_strength" yaml:"fatigue_strength"`
	FractureToughness float64      `json:"fracture_toughness" yaml:"fracture_toughness"`
}

// Hardness values on each scale. A nil scale was not measured; grades
// usually report on one Rockwell scale only, but nothing requires it.
type Hardness struct {
	Brinell   *float64 `json:"brinell" yaml:"brinell"`
	RockwellB *float64 `json:"rockwell_b" yaml:"rockwell_b"`
	RockwellC *float64 `json:"rockwell_c" yaml:"rockwell_c"`
	Vickers   *float64 `json:"vickers" yaml:"vickers"`
}

// Span is a {min, typical, max} property window.
type Span struct {
	Min     float64 `json:"min" yaml:"min"`
	Typical float64 `json:"typical" yaml:"typical"`
	Max     float64 `json:"max" yaml:"max"`
}

// Ordered reports whether Min <= Typical <= Max.
func (s Span) Ordered() bool {
	return s.Min <= s.Typical && s.Typical <= s.Max
}

// ImpactEnergy is a Charpy result in joules at the given temperature in °C.
type ImpactEnergy struct {
	Joules      float64 `json:"joules" yaml:"joules"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// NamedSpan pairs a mechanical property name with its window.
type NamedSpan struct {
	Name string
	Span Span
}

// Spans returns the mechanical {min, typical, max} windows in authored order.
func (m Mechanical) Spans() []NamedSpan {
	return []NamedSpan{
		{"tensile_strength", m.TensileStrength},
		{"yield_strength", m.YieldStrength},
		{"elongation", m.Elongation},
		{"reduction_of_area", m.ReductionOfArea},
	}
}
