package catalog

import (
	"fmt"
	"math"
	"slices"

	"machcat/models"
)

// The shape schema is checked against the generic decoded form of each
// record before it is decoded into models.MaterialRecord, so a missing or
// mistyped field becomes a SchemaViolation naming the record and field
// instead of an opaque decode error or a silent zero value.

type valueKind uint8

const (
	kindObject valueKind = iota
	kindString
	kindNumber
	kindNullableNumber
	kindInteger
	kindBool
	kindStringList
)

func (k valueKind) String() string {
	switch k {
	case kindObject:
		return "object"
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindNullableNumber:
		return "number or null"
	case kindInteger:
		return "integer"
	case kindBool:
		return "boolean"
	case kindStringList:
		return "list of strings"
	}
	return "unknown"
}

type field struct {
	name   string
	kind   valueKind
	fields []field
}

func obj(name string, children ...[]field) field {
	return field{name: name, kind: kindObject, fields: slices.Concat(children...)}
}

func leaves(kind valueKind, names ...string) []field {
	out := make([]field, len(names))
	for i, name := range names {
		out[i] = field{name: name, kind: kind}
	}
	return out
}

func nested(fields ...field) []field {
	return fields
}

var (
	rangeFields  = leaves(kindNumber, "min", "max", "typical")
	spanFields   = leaves(kindNumber, "min", "typical", "max")
	windowFields = slices.Concat(leaves(kindNumber, "min", "optimal", "max"), leaves(kindString, "unit"))

	operationFields = nested(
		obj("speed", windowFields),
		obj("feed", windowFields),
		obj("depth", windowFields),
	)

	metadataSchema = slices.Concat(
		leaves(kindString, "file", "category"),
		leaves(kindInteger, "materialCount"),
		nested(obj("idRange", leaves(kindString, "start", "end"))),
		leaves(kindString, "schemaVersion", "created", "lastUpdated"),
	)

	recordSchema = slices.Concat(
		leaves(kindString, "id", "name"),
		nested(obj("designation", leaves(kindString, "aisi_sae", "uns", "din", "jis", "en"))),
		leaves(kindString, "iso_group", "material_class", "condition"),
		nested(compositionField()),
		nested(obj("physical",
			leaves(kindNumber, "density"),
			nested(obj("melting_point", leaves(kindNumber, "solidus", "liquidus"))),
			leaves(kindNumber, "specific_heat", "thermal_conductivity", "thermal_expansion", "electrical_resistivity"),
			leaves(kindString, "magnetic"),
			leaves(kindNumber, "poissons_ratio", "elastic_modulus", "shear_modulus"),
		)),
		nested(obj("mechanical",
			nested(obj("hardness", leaves(kindNullableNumber, "brinell", "rockwell_b", "rockwell_c", "vickers"))),
			nested(
				obj("tensile_strength", spanFields),
				obj("yield_strength", spanFields),
				obj("elongation", spanFields),
				obj("reduction_of_area", spanFields),
				obj("impact_energy", leaves(kindNumber, "joules", "temperature")),
			),
			leaves(kindNumber, "fatigue_strength", "fracture_toughness"),
		)),
		nested(obj("kienzle", leaves(kindNumber,
			"kc1_1", "mc", "kc_temp_coefficient", "kc_speed_coefficient", "rake_angle_correction",
			"chip_thickness_exponent", "cutting_edge_correction", "engagement_factor"))),
		nested(obj("johnson_cook", leaves(kindNumber, "A", "B", "C", "n", "m", "melting_temp", "reference_strain_rate"))),
		nested(obj("taylor",
			leaves(kindNumber, "C", "n", "temperature_exponent", "hardness_factor"),
			nested(obj("coolant_factor", leaves(kindNumber, "dry", "flood", "mist", "high_pressure"))),
			leaves(kindNumber, "depth_exponent"),
		)),
		nested(obj("chip_formation",
			leaves(kindString, "chip_type"),
			leaves(kindNumber, "shear_angle", "chip_compression_ratio"),
			leaves(kindString, "segmentation_tendency", "built_up_edge_risk"),
			leaves(kindBool, "chip_breaker_required"),
		)),
		nested(obj("tribology",
			leaves(kindNumber, "friction_coefficient_dry", "friction_coefficient_lubricated"),
			leaves(kindString, "adhesion_tendency", "abrasiveness"),
		)),
		nested(obj("thermal_machining", leaves(kindNumber,
			"heat_partition_chip", "heat_partition_tool", "heat_partition_workpiece",
			"max_cutting_temperature", "thermal_softening_onset"))),
		nested(obj("surface_integrity",
			leaves(kindNumber, "achievable_ra_min", "achievable_ra_typical", "work_hardening_depth"),
			leaves(kindString, "residual_stress_tendency", "white_layer_risk"),
		)),
		nested(obj("machinability",
			leaves(kindNumber, "aisi_rating", "relative_to_1212", "power_factor", "tool_wear_factor", "surface_finish_factor"),
			leaves(kindString, "chip_control_rating", "overall_rating"),
			leaves(kindInteger, "difficulty_class"),
		)),
		nested(obj("recommendations",
			nested(
				obj("turning", operationFields),
				obj("milling", operationFields),
				obj("drilling", operationFields),
			),
			leaves(kindStringList, "preferred_tool_grades", "preferred_coatings"),
			leaves(kindString, "coolant_recommendation"),
		)),
		nested(obj("statistics",
			leaves(kindString, "data_quality"),
			leaves(kindInteger, "sample_size"),
			leaves(kindNumber, "confidence_level", "standard_deviation_kc"),
			leaves(kindString, "last_validated"),
			leaves(kindStringList, "source_references"),
		)),
		nested(obj("warnings", leaves(kindString, "work_hardening", "weldability", "magnetism"))),
		leaves(kindString, "notes"),
		nested(
			obj("chipFormation", leaves(kindString, "chipType", "serrationTendency", "builtUpEdgeTendency", "breakability")),
			obj("friction", leaves(kindNumber, "coefficient", "adhesionFactor"), leaves(kindString, "lubricantSensitivity")),
			obj("thermalMachining", leaves(kindNumber, "heatGenerationFactor", "conductivityRatio", "criticalTemperature")),
			obj("surfaceIntegrity", leaves(kindString, "residualStress"), leaves(kindNumber, "workHardeningDepth", "achievableRa")),
			obj("statisticalData",
				leaves(kindInteger, "dataPoints"),
				leaves(kindNumber, "confidenceLevel"),
				leaves(kindString, "lastUpdated", "source"),
			),
		),
	)
)

func compositionField() field {
	elements := make([]field, len(models.ElementNames))
	for i, name := range models.ElementNames {
		elements[i] = obj(name, rangeFields)
	}
	return obj("composition", elements)
}

type shapeChecker struct {
	recordID string
	errs     ValidationErrors
}

// checkShape validates value against fields. prefix is prepended to every
// reported field path.
func checkShape(recordID, prefix string, value any, fields []field) ValidationErrors {
	c := &shapeChecker{recordID: recordID}
	c.object(prefix, value, fields)
	return c.errs
}

func (c *shapeChecker) report(path, format string, args ...any) {
	if path == "" {
		path = "<record>"
	}
	c.errs = append(c.errs, ValidationError{
		RecordID: c.recordID,
		Field:    path,
		Kind:     KindSchema,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *shapeChecker) object(path string, value any, fields []field) {
	m, ok := value.(map[string]any)
	if !ok {
		c.report(path, "expected object, got %s", describe(value))
		return
	}
	for _, f := range fields {
		child := f.name
		if path != "" {
			child = path + "." + f.name
		}
		v, present := m[f.name]
		if !present {
			c.report(child, "missing required field")
			continue
		}
		c.value(child, v, f)
	}
}

func (c *shapeChecker) value(path string, v any, f field) {
	switch f.kind {
	case kindObject:
		c.object(path, v, f.fields)
		return
	case kindString:
		if _, ok := v.(string); ok {
			return
		}
	case kindBool:
		if _, ok := v.(bool); ok {
			return
		}
	case kindNumber:
		if _, ok := number(v); ok {
			return
		}
	case kindNullableNumber:
		if v == nil {
			return
		}
		if _, ok := number(v); ok {
			return
		}
	case kindInteger:
		if n, ok := number(v); ok && n == math.Trunc(n) {
			return
		}
	case kindStringList:
		if list, ok := v.([]any); ok {
			for i, item := range list {
				if _, ok := item.(string); !ok {
					c.report(fmt.Sprintf("%s[%d]", path, i), "expected string, got %s", describe(item))
				}
			}
			return
		}
	}
	c.report(path, "expected %s, got %s", f.kind, describe(v))
}

// number accepts the numeric types produced by the JSON, YAML and CBOR
// generic decoders.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint32:
		return float64(n), true
	}
	return 0, false
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	}
	if _, ok := number(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
