package gomap

import (
	"fmt"
	"reflect"
	"strings"
)

// Struct tags use the key=value grammar under the "marshall" key:
//
//	type Record struct {
//	    Hello string            `marshall:"field=hello"`
//	    World bool              `marshall:"field=world"`
//	    Notes *string           `marshall:"field=notes,omitempty"`
//	    Skip  string            `marshall:"omit"`
//	    Extra map[string]string `marshall:"field=extra,optional"`
//	}
//
// Flags: omit drops the field entirely, omitempty drops zero values on
// encode, optional suppresses the missing-field check on decode,
// required forces it for types that would otherwise be optional.
const tagKey = "marshall"

// fieldSpec holds field metadata extracted from struct tags.
type fieldSpec struct {
	// Name is the wire field name (field= tag if present, else the
	// struct field name).
	Name string

	// Omit drops the field from both directions.
	Omit bool

	// OmitEmpty drops zero values when encoding.
	OmitEmpty bool

	// Optional suppresses the missing-field check when decoding.
	Optional bool
}

// ParseStructTag parses a struct tag string into key-value pairs.
// Handles comma-separated values: `marshall:"key1=value1,key2=value2,flag"`.
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	if tag == "" {
		return result, nil
	}
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.Index(part, "="); idx >= 0 {
			key := strings.TrimSpace(part[:idx])
			if key == "" {
				return nil, fmt.Errorf("invalid tag: empty key in %q", part)
			}
			result[key] = strings.TrimSpace(part[idx+1:])
		} else {
			// A boolean flag (no value).
			result[part] = ""
		}
	}
	return result, nil
}

// parseFieldSpec extracts the field spec for a struct field, combining
// tag data with type-based optionality.
func parseFieldSpec(field reflect.StructField) (*fieldSpec, error) {
	spec := &fieldSpec{
		Name:     field.Name,
		Optional: isOptionalType(field.Type),
	}
	tag := field.Tag.Get(tagKey)
	if tag == "" {
		return spec, nil
	}
	parsed, err := ParseStructTag(tag)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tag on field %s: %w", field.Name, err)
	}
	if name, ok := parsed["field"]; ok && name != "" && name != "-" {
		spec.Name = name
	}
	if _, ok := parsed["omit"]; ok {
		spec.Omit = true
	}
	if _, ok := parsed["omitempty"]; ok {
		spec.OmitEmpty = true
	}
	_, hasOptional := parsed["optional"]
	_, hasRequired := parsed["required"]
	if hasOptional && hasRequired {
		return nil, fmt.Errorf("field %s cannot have both 'required' and 'optional' tags", field.Name)
	}
	if hasOptional {
		spec.Optional = true
	}
	if hasRequired {
		spec.Optional = false
	}
	return spec, nil
}

// isOptionalType determines if a Go type is optional by default; such
// fields do not trigger missing-field errors on decode. Only pointers
// and interfaces qualify: an absent map or slice field is a missing
// field unless tagged optional.
func isOptionalType(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Ptr, reflect.Interface:
		return true
	default:
		return false
	}
}
