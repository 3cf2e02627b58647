// Package schema checks decoded JSON values against declared report shapes.
//
// Validation is deliberately permissive about numeric ranges: a score field
// is required to be a finite number, but an out-of-range value is passed
// through unchanged. Range is documentation of intent, not a constraint.
package schema

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Type is the declared JSON type of a field.
type Type string

const (
	String      Type = "string"
	Number      Type = "number"
	Boolean     Type = "boolean"
	StringArray Type = "string-array"
	ObjectArray Type = "object-array"
	Object      Type = "object"
)

// Field declares the contract for one field of a report shape.
type Field struct {
	Type     Type
	Required bool

	// Allowed restricts a String field to an enumeration of literals.
	Allowed []string

	// Fields declares the shape of an Object field, or of each element of an
	// ObjectArray field.
	Fields Schema
}

// Schema maps field names to their contracts.
type Schema map[string]Field

// Violation records one way a candidate value failed the schema.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Violations is the full set of defects found in one candidate. Empty means
// the candidate conforms.
type Violations []Violation

func (vs Violations) String() string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.Field + ": " + v.Reason
	}
	return strings.Join(parts, "; ")
}

// Validate checks a decoded JSON object against the schema and returns every
// violation found. It performs no I/O and never mutates the candidate.
// Optional fields that are absent are simply skipped; the typed decode layer
// represents absence explicitly (nil pointers), never as "".
func Validate(s Schema, candidate map[string]any) Violations {
	var vs Violations

	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field := s[name]
		value, present := candidate[name]
		if !present || value == nil {
			if field.Required {
				vs = append(vs, Violation{Field: name, Reason: "missing required field"})
			}
			continue
		}
		vs = append(vs, checkValue(name, field, value)...)
	}
	return vs
}

func checkValue(name string, field Field, value any) Violations {
	switch field.Type {
	case String:
		str, ok := value.(string)
		if !ok {
			return typeMismatch(name, "string", value)
		}
		if len(field.Allowed) > 0 && !contains(field.Allowed, str) {
			return Violations{{
				Field:  name,
				Reason: fmt.Sprintf("value %q not in allowed set [%s]", str, strings.Join(field.Allowed, ", ")),
			}}
		}
	case Number:
		num, ok := value.(float64)
		if !ok {
			return typeMismatch(name, "number", value)
		}
		if math.IsNaN(num) || math.IsInf(num, 0) {
			return Violations{{Field: name, Reason: "number is not finite"}}
		}
	case Boolean:
		if _, ok := value.(bool); !ok {
			return typeMismatch(name, "boolean", value)
		}
	case StringArray:
		arr, ok := value.([]any)
		if !ok {
			return typeMismatch(name, "array of strings", value)
		}
		var vs Violations
		for i, elem := range arr {
			if _, ok := elem.(string); !ok {
				vs = append(vs, Violation{
					Field:  fmt.Sprintf("%s[%d]", name, i),
					Reason: fmt.Sprintf("expected string, got %s", jsonTypeName(elem)),
				})
			}
		}
		return vs
	case ObjectArray:
		arr, ok := value.([]any)
		if !ok {
			return typeMismatch(name, "array of objects", value)
		}
		var vs Violations
		for i, elem := range arr {
			obj, ok := elem.(map[string]any)
			if !ok {
				vs = append(vs, Violation{
					Field:  fmt.Sprintf("%s[%d]", name, i),
					Reason: fmt.Sprintf("expected object, got %s", jsonTypeName(elem)),
				})
				continue
			}
			for _, nested := range Validate(field.Fields, obj) {
				vs = append(vs, Violation{
					Field:  fmt.Sprintf("%s[%d].%s", name, i, nested.Field),
					Reason: nested.Reason,
				})
			}
		}
		return vs
	case Object:
		obj, ok := value.(map[string]any)
		if !ok {
			return typeMismatch(name, "object", value)
		}
		var vs Violations
		for _, nested := range Validate(field.Fields, obj) {
			vs = append(vs, Violation{
				Field:  name + "." + nested.Field,
				Reason: nested.Reason,
			})
		}
		return vs
	default:
		return Violations{{Field: name, Reason: fmt.Sprintf("schema declares unknown type %q", field.Type)}}
	}
	return nil
}

func typeMismatch(name, want string, got any) Violations {
	return Violations{{
		Field:  name,
		Reason: fmt.Sprintf("expected %s, got %s", want, jsonTypeName(got)),
	}}
}

// jsonTypeName names a decoded JSON value the way a reader of the raw JSON
// would, rather than with Go type names.
func jsonTypeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
