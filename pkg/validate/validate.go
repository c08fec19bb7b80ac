// Package validate holds the pure client-side validation rules applied to a
// form session before any upload or submission is attempted.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jobkit/appform/pkg/schema"
)

var (
	urlPattern   = regexp.MustCompile(`^https?://.+`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// InputKind discriminates what a field check receives: a scalar/array value
// or a pending file. File state is tracked separately from values, so the
// validator is told explicitly which side it is looking at.
type InputKind int

const (
	KindValue InputKind = iota
	KindFile
)

// Input is the discriminated argument to Field. For KindValue, Value carries
// the current scalar or array; for KindFile, HasFile reports whether a
// pending file exists for the field.
type Input struct {
	Kind    InputKind
	Value   any
	HasFile bool
}

// ValueInput wraps a scalar/array value.
func ValueInput(value any) Input {
	return Input{Kind: KindValue, Value: value}
}

// FileInput wraps pending-file presence.
func FileInput(hasFile bool) Input {
	return Input{Kind: KindFile, HasFile: hasFile}
}

// Field checks one field schema against its current input and returns the
// first applicable error message, or "" when valid. It accumulates nothing
// and has no side effects.
func Field(field schema.FieldSchema, in Input) string {
	if field.IsRequired {
		if in.Kind == KindFile {
			if !in.HasFile {
				return fmt.Sprintf("%s is required", field.FieldLabel)
			}
		} else if isEmptyValue(in.Value) {
			return fmt.Sprintf("%s is required", field.FieldLabel)
		}
	}

	// Optional and absent: nothing further to check.
	if in.Kind == KindFile || isEmptyValue(in.Value) {
		return ""
	}

	if rules := field.Validation; rules != nil {
		if field.FieldType == schema.FieldTypeNumber {
			// Bounds only apply to values that actually parse as numbers;
			// an unparseable entry must not be compared as zero.
			if num, ok := coerceNumber(in.Value); ok {
				if rules.Min != nil && num < *rules.Min {
					return fmt.Sprintf("Minimum value is %v", formatBound(*rules.Min))
				}
				if rules.Max != nil && num > *rules.Max {
					return fmt.Sprintf("Maximum value is %v", formatBound(*rules.Max))
				}
			}
		}
		if field.FieldType == schema.FieldTypeText || field.FieldType == schema.FieldTypeTextarea {
			if s, ok := in.Value.(string); ok {
				if rules.MinLength != nil && len(s) < *rules.MinLength {
					return fmt.Sprintf("Minimum length is %d characters", *rules.MinLength)
				}
				if rules.MaxLength != nil && len(s) > *rules.MaxLength {
					return fmt.Sprintf("Maximum length is %d characters", *rules.MaxLength)
				}
			}
		}
	}

	if field.FieldType == schema.FieldTypeURL {
		if s, ok := in.Value.(string); ok && !urlPattern.MatchString(s) {
			return "Please enter a valid URL"
		}
	}
	if field.FieldType == schema.FieldTypeEmail {
		if s, ok := in.Value.(string); ok && !emailPattern.MatchString(s) {
			return "Please enter a valid email"
		}
	}

	return ""
}

// Candidate applies the fixed rules for the three applicant fields. The
// returned map is keyed by field name and empty when everything passes.
func Candidate(info schema.CandidateInfo) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(info.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(info.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(info.Email) {
		errs["email"] = "Please enter a valid email"
	}
	if strings.TrimSpace(info.Phone) == "" {
		errs["phone"] = "Phone is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
