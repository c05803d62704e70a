package models

// Legacy camelCase descriptors. Every shard record carries this block with
// near-constant values; it is stored as authored and flagged for the data
// owner rather than merged into the snake_case descriptors.

type LegacyChipFormation struct {
	ChipType            string `json:"chipType" yaml:"chipType"`
	SerrationTendency   string `json:"serrationTendency" yaml:"serrationTendency"`
	BuiltUpEdgeTendency string `json:"builtUpEdgeTendency" yaml:"builtUpEdgeTendency"`
	Breakability        string `json:"breakability" yaml:"breakability"`
}

type LegacyFriction struct {
	Coefficient          float64 `json:"coefficient" yaml:"coefficient"`
	AdhesionFactor       float64 `json:"adhesionFactor" yaml:"adhesionFactor"`
	LubricantSensitivity string  `json:"lubricantSensitivity" yaml:"lubricantSensitivity"`
}

type LegacyThermalMachining struct {
	HeatGenerationFactor float64 `json:"heatGenerationFactor" yaml:"heatGenerationFactor"`
	ConductivityRatio    float64 `json:"conductivityRatio" yaml:"conductivityRatio"`
	CriticalTemperature  float64 `json:"criticalTemperature" yaml:"criticalTemperature"`
}

type LegacySurfaceIntegrity struct {
	ResidualStress     string  `json:"residualStress" yaml:"residualStress"`
	WorkHardeningDepth float64 `json:"workHardeningDepth" yaml:"workHardeningDepth"`
	AchievableRa       float64 `json:"achievableRa" yaml:"achievableRa"`
}

type LegacyStatisticalData struct {
	DataPoints      int     `json:"dataPoints" yaml:"dataPoints"`
	ConfidenceLevel float64 `json:"confidenceLevel" yaml:"confidenceLevel"`
	LastUpdated     string  `json:"lastUpdated" yaml:"lastUpdated"`
	Source          string  `json:"source" yaml:"source"`
}
