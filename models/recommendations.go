package models

type Recommendations struct {
	Turning               Operation `json:"turning" yaml:"turning"`
	Milling               Operation `json:"milling" yaml:"milling"`
	Drilling              Operation `json:"drilling" yaml:"drilling"`
	PreferredToolGrades   []string  `json:"preferred_tool_grades" yaml:"preferred_tool_grades"`
	PreferredCoatings     []string  `json:"preferred_coatings" yaml:"preferred_coatings"`
	CoolantRecommendation string    `json:"coolant_recommendation" yaml:"coolant_recommendation"`
}

// Operation holds the starting-point cutting data for one operation.
type Operation struct {
	Speed Window `json:"speed" yaml:"speed"`
	Feed  Window `json:"feed" yaml:"feed"`
	Depth Window `json:"depth" yaml:"depth"`
}

// Window is a recommended parameter window with its unit.
type Window struct {
	Min     float64 `json:"min" yaml:"min"`
	Optimal float64 `json:"optimal" yaml:"optimal"`
	Max     float64 `json:"max" yaml:"max"`
	Unit    string  `json:"unit" yaml:"unit"`
}

// Ordered reports whether Min <= Optimal <= Max.
func (w Window) Ordered() bool {
	return w.Min <= w.Optimal && w.Optimal <= w.Max
}

// NamedOperation pairs an operation name with its parameters.
type NamedOperation struct {
	Name      string
	Operation Operation
}

// Operations returns turning, milling and drilling in that order.
func (r Recommendations) Operations() []NamedOperation {
	return []NamedOperation{
		{"turning", r.Turning},
		{"milling", r.Milling},
		{"drilling", r.Drilling},
	}
}

type Statistics struct {
	DataQuality         string   `json:"data_quality" yaml:"data_quality"`
	SampleSize          int      `json:"sample_size" yaml:"sample_size"`
	ConfidenceLevel     float64  `json:"confidence_level" yaml:"confidence_level"`
	StandardDeviationKC float64  `json:"standard_deviation_kc" yaml:"standard_deviation_kc"`
	LastValidated       string   `json:"last_validated" yaml:"last_validated"`
	SourceReferences    []string `json:"source_references" yaml:"source_references"`
}

// Warnings are free-text advisories shown to machinists.
type Warnings struct {
	WorkHardening string `json:"work_hardening" yaml:"work_hardening"`
	Weldability   string `json:"weldability" yaml:"weldability"`
	Magnetism     string `json:"magnetism" yaml:"magnetism"`
}
