package models

// MaterialRecord is one stainless grade and condition combination in a
// catalog shard. Field names are part of the consumer contract and must stay
// stable across schema versions.
type MaterialRecord struct {
	ID            string      `json:"id" yaml:"id"`
	Name          string      `json:"name" yaml:"name"`
	Designation   Designation `json:"designation" yaml:"designation"`
	ISOGroup      string      `json:"iso_group" yaml:"iso_group"`
	MaterialClass string      `json:"material_class" yaml:"material_class"`
	Condition     string      `json:"condition" yaml:"condition"`

	Composition Composition `json:"composition" yaml:"composition"`
	Physical    Physical    `json:"physical" yaml:"physical"`
	Mechanical  Mechanical  `json:"mechanical" yaml:"mechanical"`

	Kienzle     Kienzle     `json:"kienzle" yaml:"kienzle"`
	JohnsonCook JohnsonCook `json:"johnson_cook" yaml:"johnson_cook"`
	Taylor      Taylor      `json:"taylor" yaml:"taylor"`

	ChipFormation    ChipFormation    `json:"chip_formation" yaml:"chip_formation"`
	Tribology        Tribology        `json:"tribology" yaml:"tribology"`
	ThermalMachining ThermalMachining `json:"thermal_machining" yaml:"thermal_machining"`
	SurfaceIntegrity SurfaceIntegrity `json:"surface_integrity" yaml:"surface_integrity"`

	Machinability   Machinability   `json:"machinability" yaml:"machinability"`
	Recommendations Recommendations `json:"recommendations" yaml:"recommendations"`
	Statistics      Statistics      `json:"statistics" yaml:"statistics"`
	Warnings        Warnings        `json:"warnings" yaml:"warnings"`
	Notes           string          `json:"notes" yaml:"notes"`

	// --- Legacy descriptor block ---
	// Carried verbatim next to the snake_case descriptors above. The two sets
	// overlap in meaning but are separate schemas and are never reconciled.
	LegacyChipFormation    LegacyChipFormation    `json:"chipFormation" yaml:"chipFormation"`
	LegacyFriction         LegacyFriction         `json:"friction" yaml:"friction"`
	LegacyThermalMachining LegacyThermalMachining `json:"thermalMachining" yaml:"thermalMachining"`
	LegacySurfaceIntegrity LegacySurfaceIntegrity `json:"surfaceIntegrity" yaml:"surfaceIntegrity"`
	LegacyStatisticalData  LegacyStatisticalData  `json:"statisticalData" yaml:"statisticalData"`
}

// Designation maps standards bodies to the grade's code in that standard.
// Empty strings mean the standard has no equivalent grade.
type Designation struct {
	AISISAE string `json:"aisi_sae" yaml:"aisi_sae"`
	UNS     string `json:"uns" yaml:"uns"`
	DIN     string `json:"din" yaml:"din"`
	JIS     string `json:"jis" yaml:"jis"`
	EN      string `json:"en" yaml:"en"`
}

// ISO 513 machining groups.
const (
	ISOGroupSteel        = "P"
	ISOGroupStainless    = "M"
	ISOGroupCastIron     = "K"
	ISOGroupNonFerrous   = "N"
	ISOGroupSuperalloy   = "S"
	ISOGroupHardMaterial = "H"
)

// ISOGroups lists every accepted ISO machining group letter.
var ISOGroups = []string{
	ISOGroupSteel,
	ISOGroupStainless,
	ISOGroupCastIron,
	ISOGroupNonFerrous,
	ISOGroupSuperalloy,
	ISOGroupHardMaterial,
}

// ValidISOGroup reports whether value is one of ISOGroups.
func ValidISOGroup(value string) bool {
	for _, group := range ISOGroups {
		if value == group {
			return true
		}
	}
	return false
}
