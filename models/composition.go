package models

// Range is a weight-percent window for one alloying element. Absent
// elements carry an all-zero range.
type Range struct {
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Typical float64 `json:"typical" yaml:"typical"`
}

// Ordered reports whether Min <= Typical <= Max.
func (r Range) Ordered() bool {
	return r.Min <= r.Typical && r.Typical <= r.Max
}

// Composition holds the chemical composition of a grade in wt%.
type Composition struct {
	Carbon     Range `json:"carbon" yaml:"carbon"`
	Chromium   Range `json:"chromium" yaml:"chromium"`
	Nickel     Range `json:"nickel" yaml:"nickel"`
	Molybdenum Range `json:"molybdenum" yaml:"molybdenum"`
	Manganese  Range `json:"manganese" yaml:"manganese"`
	Silicon    Range `json:"silicon" yaml:"silicon"`
	Nitrogen   Range `json:"nitrogen" yaml:"nitrogen"`
	Copper     Range `json:"copper" yaml:"copper"`
	Titanium   Range `json:"titanium" yaml:"titanium"`
	Niobium    Range `json:"niobium" yaml:"niobium"`
	Aluminum   Range `json:"aluminum" yaml:"aluminum"`
	Tungsten   Range `json:"tungsten" yaml:"tungsten"`
	Vanadium   Range `json:"vanadium" yaml:"vanadium"`
	Sulfur     Range `json:"sulfur" yaml:"sulfur"`
	Phosphorus Range `json:"phosphorus" yaml:"phosphorus"`
	Iron       Range `json:"iron" yaml:"iron"`
}

// Element pairs an element name with its composition range.
type Element struct {
	Name  string
	Range Range
}

// Element names in authored order.
var ElementNames = []string{
	"carbon", "chromium", "nickel", "molybdenum", "manganese", "silicon",
	"nitrogen", "copper", "titanium", "niobium", "aluminum", "tungsten",
	"vanadium", "sulfur", "phosphorus", "iron",
}

// Elements returns every element range in ElementNames order.
func (c Composition) Elements() []Element {
	return []Element{
		{"carbon", c.Carbon},
		{"chromium", c.Chromium},
		{"nickel", c.Nickel},
		{"molybdenum", c.Molybdenum},
		{"manganese", c.Manganese},
		{"silicon", c.Silicon},
		{"nitrogen", c.Nitrogen},
		{"copper", c.Copper},
		{"titanium", c.Titanium},
		{"niobium", c.Niobium},
		{"aluminum", c.Aluminum},
		{"tungsten", c.Tungsten},
		{"vanadium", c.Vanadium},
		{"sulfur", c.Sulfur},
		{"phosphorus", c.Phosphorus},
		{"iron", c.Iron},
	}
}
