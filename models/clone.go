package models

import "slices"

// Clone returns a deep copy of the record so callers can never alias the
// slices or hardness pointers of a shared catalog entry.
func (r MaterialRecord) Clone() MaterialRecord {
	out := r
	out.Mechanical.Hardness = Hardness{
		Brinell:   cloneFloat(r.Mechanical.Hardness.Brinell),
		RockwellB: cloneFloat(r.Mechanical.Hardness.RockwellB),
		RockwellC: cloneFloat(r.Mechanical.Hardness.RockwellC),
		Vickers:   cloneFloat(r.Mechanical.Hardness.Vickers),
	}
	out.Recommendations.PreferredToolGrades = slices.Clone(r.Recommendations.PreferredToolGrades)
	out.Recommendations.PreferredCoatings = slices.Clone(r.Recommendations.PreferredCoatings)
	out.Statistics.SourceReferences = slices.Clone(r.Statistics.SourceReferences)
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
