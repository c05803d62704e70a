package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("material not found")
	// ErrUnknownFormat is returned for unsupported shard encodings.
	ErrUnknownFormat = errors.New("unknown shard format")
)

// Kind classifies a validation problem.
type Kind string

const (
	// KindSchema marks a missing field or a field of the wrong shape or type.
	KindSchema Kind = "SchemaViolation"
	// KindRange marks an out-of-order {min, typical, max} window, a solidus
	// above the liquidus, or a value outside its physical bounds.
	KindRange Kind = "RangeInvariantViolation"
	// KindKeyConsistency marks a key/id mismatch, a duplicate key, or
	// metadata that does not describe the materials map.
	KindKeyConsistency Kind = "KeyConsistencyViolation"
)

// ValidationError describes one data defect. RecordID is empty for
// shard-level problems.
type ValidationError struct {
	RecordID string `json:"record_id"`
	Field    string `json:"field"`
	Kind     Kind   `json:"kind"`
	Message  string `json:"message"`
}

func (e ValidationError) Error() string {
	id := e.RecordID
	if id == "" {
		id = "<shard>"
	}
	return fmt.Sprintf("%s %s: %s: %s", id, e.Field, e.Kind, e.Message)
}

// ValidationErrors is a batch of problems collected in one pass.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	switch len(v) {
	case 0:
		return "no validation errors"
	case 1:
		return v[0].Error()
	}
	lines := make([]string, 0, len(v)+1)
	lines = append(lines, fmt.Sprintf("%d validation errors:", len(v)))
	for _, e := range v {
		lines = append(lines, "  "+e.Error())
	}
	return strings.Join(lines, "\n")
}

// Err returns nil for an empty batch and the batch itself otherwise.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// ByKind returns the subset of problems of the given kind.
func (v ValidationErrors) ByKind(kind Kind) ValidationErrors {
	var out ValidationErrors
	for _, e := range v {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// NotFoundError reports a lookup of an id absent from the shard.
type NotFoundError struct {
	ID          string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("unknown material id %q", e.ID)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
