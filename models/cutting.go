package models

// The coefficient sets below are stored for an external machining-parameter
// engine. Nothing in this module evaluates them.

// Kienzle holds specific cutting force model coefficients.
type Kienzle struct {
	KC11                  float64 `json:"kc1_1" yaml:"kc1_1"`
	MC                    float64 `json:"mc" yaml:"mc"`
	KCTempCoefficient     float64 `json:"kc_temp_coefficient" yaml:"kc_temp_coefficient"`
	KCSpeedCoefficient    float64 `json:"kc_speed_coefficient" yaml:"kc_speed_coefficient"`
	RakeAngleCorrection   float64 `json:"rake_angle_correction" yaml:"rake_angle_correction"`
	ChipThicknessExponent float64 `json:"chip_thickness_exponent" yaml:"chip_thickness_exponent"`
	CuttingEdgeCorrection float64 `json:"cutting_edge_correction" yaml:"cutting_edge_correction"`
	EngagementFactor      float64 `json:"engagement_factor" yaml:"engagement_factor"`
}

// JohnsonCook holds flow stress model constants.
type JohnsonCook struct {
	A                   float64 `json:"A" yaml:"A"`
	B                   float64 `json:"B" yaml:"B"`
	C                   float64 `json:"C" yaml:"C"`
	N                   float64 `json:"n" yaml:"n"`
	M                   float64 `json:"m" yaml:"m"`
	MeltingTemp         float64 `json:"melting_temp" yaml:"melting_temp"`
	ReferenceStrainRate float64 `json:"reference_strain_rate" yaml:"reference_strain_rate"`
}

// Taylor holds extended tool-life equation constants.
type Taylor struct {
	C                   float64       `json:"C" yaml:"C"`
	N                   float64       `json:"n" yaml:"n"`
	TemperatureExponent float64       `json:"temperature_exponent" yaml:"temperature_exponent"`
	HardnessFactor      float64       `json:"hardness_factor" yaml:"hardness_factor"`
	CoolantFactor       CoolantFactor `json:"coolant_factor" yaml:"coolant_factor"`
	DepthExponent       float64       `json:"depth_exponent" yaml:"depth_exponent"`
}

// CoolantFactor scales tool life per coolant strategy, dry = 1.
type CoolantFactor struct {
	Dry          float64 `json:"dry" yaml:"dry"`
	Flood        float64 `json:"flood" yaml:"flood"`
	Mist         float64 `json:"mist" yaml:"mist"`
	HighPressure float64 `json:"high_pressure" yaml:"high_pressure"`
}

type ChipFormation struct {
	ChipType             string  `json:"chip_type" yaml:"chip_type"`
	ShearAngle           float64 `json:"shear_angle" yaml:"shear_angle"`
	ChipCompressionRatio float64 `json:"chip_compression_ratio" yaml:"chip_compression_ratio"`
	SegmentationTendency string  `json:"segmentation_tendency" yaml:"segmentation_tendency"`
	BuiltUpEdgeRisk      string  `json:"built_up_edge_risk" yaml:"built_up_edge_risk"`
	ChipBreakerRequired  bool    `json:"chip_breaker_required" yaml:"chip_breaker_required"`
}

type Tribology struct {
	FrictionCoefficientDry        float64 `json:"friction_coefficient_dry" yaml:"friction_coefficient_dry"`
	FrictionCoefficientLubricated float64 `json:"friction_coefficient_lubricated" yaml:"friction_coefficient_lubricated"`
	AdhesionTendency              string  `json:"adhesion_tendency" yaml:"adhesion_tendency"`
	Abrasiveness                  string  `json:"abrasiveness" yaml:"abrasiveness"`
}

// ThermalMachining describes heat partitioning between chip, tool and
// workpiece, and temperatures in °C.
type ThermalMachining struct {
	HeatPartitionChip      float64 `json:"heat_partition_chip" yaml:"heat_partition_chip"`
	HeatPartitionTool      float64 `json:"heat_partition_tool" yaml:"heat_partition_tool"`
	HeatPartitionWorkpiece float64 `json:"heat_partition_workpiece" yaml:"heat_partition_workpiece"`
	MaxCuttingTemperature  float64 `json:"max_cutting_temperature" yaml:"max_cutting_temperature"`
	ThermalSofteningOnset  float64 `json:"thermal_softening_onset" yaml:"thermal_softening_onset"`
}

// SurfaceIntegrity roughness values are Ra in µm, depths in mm.
type SurfaceIntegrity struct {
	AchievableRaMin        float64 `json:"achievable_ra_min" yaml:"achievable_ra_min"`
	AchievableRaTypical    float64 `json:"achievable_ra_typical" yaml:"achievable_ra_typical"`
	WorkHardeningDepth     float64 `json:"work_hardening_depth" yaml:"work_hardening_depth"`
	ResidualStressTendency string  `json:"residual_stress_tendency" yaml:"residual_stress_tendency"`
	WhiteLayerRisk         string  `json:"white_layer_risk" yaml:"white_layer_risk"`
}

// Difficulty class bounds.
const (
	MinDifficultyClass = 1
	MaxDifficultyClass = 4
)

type Machinability struct {
	AISIRating          float64 `json:"aisi_rating" yaml:"aisi_rating"`
	RelativeTo1212      float64 `json:"relative_to_1212" yaml:"relative_to_1212"`
	PowerFactor         float64 `json:"power_factor" yaml:"power_factor"`
	ToolWearFactor      float64 `json:"tool_wear_factor" yaml:"tool_wear_factor"`
	SurfaceFinishFactor float64 `json:"surface_finish_factor" yaml:"surface_finish_factor"`
	ChipControlRating   string  `json:"chip_control_rating" yaml:"chip_control_rating"`
	OverallRating       string  `json:"overall_rating" yaml:"overall_rating"`
	DifficultyClass     int     `json:"difficulty_class" yaml:"difficulty_class"`
}
