package catalog

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"machcat/models"
)

// idPattern matches stainless catalog ids such as M-SS-051: ISO group M,
// family SS, exactly three digits.
var idPattern = regexp.MustCompile(`^(M)-SS-\d{3}$`)

type recordChecker struct {
	key  string
	errs ValidationErrors
}

func (c *recordChecker) add(kind Kind, field, format string, args ...any) {
	c.errs = append(c.errs, ValidationError{
		RecordID: c.key,
		Field:    field,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
	})
}

// ordered reports a {min, mid, max} triple whose bounds are out of order.
// Non-finite bounds are left to finite.
func (c *recordChecker) ordered(field, midName string, lo, mid, hi float64) {
	if !isFinite(lo, mid, hi) {
		return
	}
	switch {
	case !(lo <= mid):
		c.add(KindRange, field, "min %g exceeds %s %g", lo, midName, mid)
	case !(mid <= hi):
		c.add(KindRange, field, "%s %g exceeds max %g", midName, mid, hi)
	}
}

// finite reports every NaN or infinite number reachable from v, naming it by
// its JSON path.
func (c *recordChecker) finite(path string, v reflect.Value) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		if f := v.Float(); !isFinite(f) {
			c.add(KindRange, path, "non-finite value %g", f)
		}
	case reflect.Pointer, reflect.Interface:
		if !v.IsNil() {
			c.finite(path, v.Elem())
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			c.finite(path+"["+strconv.Itoa(i)+"]", v.Index(i))
		}
	case reflect.Struct:
		t := v.Type()
		for i := range t.NumField() {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
			if name == "-" {
				continue
			}
			if name == "" {
				name = sf.Name
			}
			if path != "" {
				name = path + "." + name
			}
			c.finite(name, v.Field(i))
		}
	}
}

func isFinite(values ...float64) bool {
	for _, f := range values {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func validateRecord(key string, rec models.MaterialRecord) ValidationErrors {
	c := &recordChecker{key: key}

	if rec.ID != key {
		c.add(KindKeyConsistency, "id", "record id %q does not match key %q", rec.ID, key)
	}
	match := idPattern.FindStringSubmatch(key)
	if match == nil {
		c.add(KindSchema, "id", "key %q is not of the form M-SS-NNN", key)
	}
	if !models.ValidISOGroup(rec.ISOGroup) {
		c.add(KindSchema, "iso_group", "unknown ISO machining group %q", rec.ISOGroup)
	} else if match != nil && match[1] != rec.ISOGroup {
		c.add(KindSchema, "iso_group", "iso_group %q does not match id prefix %q", rec.ISOGroup, match[1])
	}

	c.finite("", reflect.ValueOf(rec))

	for _, element := range rec.Composition.Elements() {
		field := "composition." + element.Name
		r := element.Range
		if r.Min < 0 {
			c.add(KindRange, field, "negative min %g", r.Min)
		}
		c.ordered(field, "typical", r.Min, r.Typical, r.Max)
	}

	phys := rec.Physical
	if isFinite(phys.MeltingPoint.Solidus, phys.MeltingPoint.Liquidus) &&
		!(phys.MeltingPoint.Solidus <= phys.MeltingPoint.Liquidus) {
		c.add(KindRange, "physical.melting_point", "solidus %g exceeds liquidus %g",
			phys.MeltingPoint.Solidus, phys.MeltingPoint.Liquidus)
	}
	if isFinite(phys.PoissonsRatio) && !(phys.PoissonsRatio > 0 && phys.PoissonsRatio < 0.5) {
		c.add(KindRange, "physical.poissons_ratio", "%g outside (0, 0.5)", phys.PoissonsRatio)
	}
	if !slices.Contains([]string{models.Magnetic, models.NonMagnetic}, phys.Magnetic) {
		c.add(KindSchema, "physical.magnetic", "unknown value %q", phys.Magnetic)
	}

	for _, span := range rec.Mechanical.Spans() {
		c.ordered("mechanical."+span.Name, "typical", span.Span.Min, span.Span.Typical, span.Span.Max)
	}

	if d := rec.Machinability.DifficultyClass; d < models.MinDifficultyClass || d > models.MaxDifficultyClass {
		c.add(KindRange, "machinability.difficulty_class", "%d outside %d-%d",
			d, models.MinDifficultyClass, models.MaxDifficultyClass)
	}

	for _, op := range rec.Recommendations.Operations() {
		prefix := "recommendations." + op.Name
		c.ordered(prefix+".speed", "optimal", op.Operation.Speed.Min, op.Operation.Speed.Optimal, op.Operation.Speed.Max)
		c.ordered(prefix+".feed", "optimal", op.Operation.Feed.Min, op.Operation.Feed.Optimal, op.Operation.Feed.Max)
		c.ordered(prefix+".depth", "optimal", op.Operation.Depth.Min, op.Operation.Depth.Optimal, op.Operation.Depth.Max)
	}

	return c.errs
}

func validateMetadata(meta models.ShardMetadata, ids []string) ValidationErrors {
	c := &recordChecker{}

	if meta.Category == "" {
		c.add(KindSchema, "metadata.category", "category must not be empty")
	}
	if meta.SchemaVersion == "" {
		c.add(KindSchema, "metadata.schemaVersion", "schema version must not be empty")
	}
	if meta.MaterialCount != len(ids) {
		c.add(KindKeyConsistency, "metadata.materialCount", "declares %d materials, shard holds %d",
			meta.MaterialCount, len(ids))
	}

	var first, last string
	if len(ids) > 0 {
		first, last = slices.Min(ids), slices.Max(ids)
	}
	if meta.IDRange.Start != first {
		c.add(KindKeyConsistency, "metadata.idRange.start", "declares %q, first key is %q", meta.IDRange.Start, first)
	}
	if meta.IDRange.End != last {
		c.add(KindKeyConsistency, "metadata.idRange.end", "declares %q, last key is %q", meta.IDRange.End, last)
	}

	return c.errs
}
