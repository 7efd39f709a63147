package core

// validation.go provides header resolution and row-level validation.
//
// Header validation maps each FieldSpec to a column position, accepting any
// of the spec's alias spellings. Row validation checks required presence and
// type parseability before the dataset's import func runs; enum membership
// is rejected, never coerced.

import (
	"fmt"
	"strings"
)

// ValidationError describes why a row was rejected.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (value %q)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ResolveHeader finds the header row within records and returns its index
// plus a HeaderIndex keyed by canonical spec names. A spec's column may
// appear under any of its aliases; the canonical name always resolves.
// Fails if any required column is missing under every spelling.
func ResolveHeader(records [][]string, specs []FieldSpec) (int, HeaderIndex, error) {
	maxRows := MaxHeaderSearchRows
	if len(records) < maxRows {
		maxRows = len(records)
	}

	var bestMissing []string
	for i := 0; i < maxRows; i++ {
		idx := MakeHeaderIndex(records[i])
		normalized, missing := normalizeHeader(idx, specs)
		if len(missing) == 0 {
			return i, normalized, nil
		}
		if bestMissing == nil || len(missing) < len(bestMissing) {
			bestMissing = missing
		}
	}
	return -1, nil, fmt.Errorf("header row not found (missing columns: %s)", strings.Join(bestMissing, ", "))
}

// normalizeHeader maps canonical spec names onto alias positions and reports
// required columns absent under every spelling.
func normalizeHeader(idx HeaderIndex, specs []FieldSpec) (HeaderIndex, []string) {
	out := make(HeaderIndex, len(idx))
	for k, v := range idx {
		out[k] = v
	}

	var missing []string
	for _, spec := range specs {
		key := strings.ToLower(spec.Name)
		if _, ok := out[key]; ok {
			continue
		}
		found := false
		for _, alias := range spec.Aliases {
			if pos, ok := idx[strings.ToLower(alias)]; ok {
				out[key] = pos
				found = true
				break
			}
		}
		if !found && spec.Required {
			missing = append(missing, spec.Name)
		}
	}
	return out, missing
}

// ValidateRow checks one row against the dataset's field specs and returns
// the first violation, or nil when the row may be imported.
func ValidateRow(row Row, specs []FieldSpec) error {
	for _, spec := range specs {
		if !row.Has(spec.Name) {
			if spec.Required {
				return ValidationError{Field: spec.Name, Message: "missing required column"}
			}
			continue
		}

		raw := row.Get(spec.Name)
		if spec.Normalizer != nil && raw != "" {
			raw = spec.Normalizer(raw)
		}

		if IsAbsent(raw) {
			if spec.Required && !spec.AllowEmpty {
				return ValidationError{Field: spec.Name, Message: "required field is empty"}
			}
			continue
		}

		if err := validateCell(raw, spec); err != nil {
			return err
		}
	}
	return nil
}

func validateCell(value string, spec FieldSpec) error {
	switch spec.Type {
	case FieldNumeric:
		if !ToPgNumeric(value).Valid {
			return ValidationError{Field: spec.Name, Value: value, Message: "invalid number"}
		}
	case FieldDate:
		if !ToPgTimestamp(value).Valid {
			return ValidationError{Field: spec.Name, Value: value, Message: "invalid date"}
		}
	case FieldBool:
		if !ToPgBool(value).Valid {
			return ValidationError{Field: spec.Name, Value: value, Message: "invalid boolean"}
		}
	case FieldInt:
		if _, ok := ParseInt(value); !ok {
			return ValidationError{Field: spec.Name, Value: value, Message: "invalid integer"}
		}
	case FieldEnum:
		for _, ev := range spec.EnumValues {
			if strings.EqualFold(ev, value) {
				return nil
			}
		}
		return ValidationError{
			Field:   spec.Name,
			Value:   value,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(spec.EnumValues, ", ")),
		}
	}
	return nil
}
