package gomap

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	"github.com/TheBinaryBrigade/dynamodb-marshall/debug"
	"github.com/TheBinaryBrigade/dynamodb-marshall/ir"
)

// IRMarshaler is the structural encoding capability: a type that can
// serialize itself into the generic value tree takes over its own
// encoding.
type IRMarshaler interface {
	MarshalIR() (*ir.Node, error)
}

// ToIR converts a Go value to a node tree. Types implementing
// IRMarshaler or encoding.TextMarshaler are honored; everything else is
// converted by reflection.
func ToIR(v any, opts ...MapOption) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	cfg := newMapConfig(opts...)
	visited := make(map[uintptr]string) // pointer addresses by field path, for cycle detection
	node, err := toIRValue(reflect.ValueOf(v), "", visited, cfg)
	if err == nil && debug.Gomap() {
		debug.Logf("gomap to ir (%T):\n%v\n", v, node)
	}
	return node, err
}

// toIRValue converts a reflect.Value to a node.
// fieldPath is used for error reporting (e.g., "person.address.street").
func toIRValue(val reflect.Value, fieldPath string, visited map[uintptr]string, cfg *mapConfig) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	typ := val.Type()
	kind := typ.Kind()

	if kind == reflect.Ptr {
		if val.IsNil() {
			return ir.Null(), nil
		}
		if m, ok := val.Interface().(IRMarshaler); ok {
			return m.MarshalIR()
		}
		if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
			return marshalText(tm, fieldPath)
		}

		// Check if we've seen this pointer before.
		ptrAddr := val.Pointer()
		if prevPath, seen := visited[ptrAddr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s", prevPath, fieldPath),
			}
		}
		visited[ptrAddr] = fieldPath
		node, err := toIRValue(val.Elem(), fieldPath, visited, cfg)
		// Allow the same pointer to appear in different branches.
		delete(visited, ptrAddr)
		return node, err
	}

	if m, ok := val.Interface().(IRMarshaler); ok {
		return m.MarshalIR()
	}
	if val.CanAddr() {
		if m, ok := val.Addr().Interface().(IRMarshaler); ok {
			return m.MarshalIR()
		}
	}
	if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
		return marshalText(tm, fieldPath)
	}
	if val.CanAddr() {
		if tm, ok := val.Addr().Interface().(encoding.TextMarshaler); ok {
			return marshalText(tm, fieldPath)
		}
	}

	switch kind {
	case reflect.String:
		return ir.FromString(val.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > uint64(1<<63-1) {
			// Wider than int64; keep the exact decimal text.
			return ir.FromNumber(strconv.FormatUint(u, 10)), nil
		}
		return ir.FromInt(int64(u)), nil

	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil

	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil

	case reflect.Slice, reflect.Array:
		return toIRSlice(val, fieldPath, visited, cfg)

	case reflect.Map:
		return toIRMap(val, fieldPath, visited, cfg)

	case reflect.Struct:
		return toIRStruct(val, fieldPath, visited, cfg)

	case reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return toIRValue(val.Elem(), fieldPath, visited, cfg)

	default:
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type: %s", typ),
		}
	}
}

func marshalText(tm encoding.TextMarshaler, fieldPath string) (*ir.Node, error) {
	text, err := tm.MarshalText()
	if err != nil {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   "MarshalText failed",
			Err:       err,
		}
	}
	return ir.FromString(string(text)), nil
}

func toIRSlice(val reflect.Value, fieldPath string, visited map[uintptr]string, cfg *mapConfig) (*ir.Node, error) {
	// Check if we've seen this slice before (by its backing array pointer).
	if val.Kind() == reflect.Slice && !val.IsNil() {
		slicePtr := val.Pointer()
		if prevPath, seen := visited[slicePtr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s", prevPath, fieldPath),
			}
		}
		visited[slicePtr] = fieldPath
		defer delete(visited, slicePtr)
	}

	length := val.Len()
	elements := make([]*ir.Node, 0, length)
	for i := 0; i < length; i++ {
		elemNode, err := toIRValue(val.Index(i), elemPath(fieldPath, i), visited, cfg)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elemNode)
	}
	return ir.FromSlice(elements), nil
}

func toIRMap(val reflect.Value, fieldPath string, visited map[uintptr]string, cfg *mapConfig) (*ir.Node, error) {
	if val.IsNil() {
		return ir.Null(), nil
	}

	mapPtr := val.Pointer()
	if prevPath, seen := visited[mapPtr]; seen {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("circular reference detected: %s -> %s", prevPath, fieldPath),
		}
	}
	visited[mapPtr] = fieldPath
	defer delete(visited, mapPtr)

	if val.Type().Key().Kind() != reflect.String {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("map keys must be strings, got %s", val.Type().Key()),
		}
	}

	irMap := make(map[string]*ir.Node, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		valueNode, err := toIRValue(iter.Value(), keyPath(fieldPath, key), visited, cfg)
		if err != nil {
			return nil, err
		}
		irMap[key] = valueNode
	}
	return ir.FromMap(irMap), nil
}

// toIRStruct converts a struct to an object node. Embedded structs are
// flattened: their fields are promoted to the parent object, and a
// direct field shadows a promoted field with the same wire name.
func toIRStruct(val reflect.Value, fieldPath string, visited map[uintptr]string, cfg *mapConfig) (*ir.Node, error) {
	typ := val.Type()
	irMap := make(map[string]*ir.Node)

	// Wire names claimed by direct fields; promoted embedded fields
	// with these names are shadowed regardless of declaration order.
	direct := make(map[string]bool)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() || field.Anonymous {
			continue
		}
		spec, err := parseFieldSpec(field)
		if err != nil {
			continue // reported below
		}
		if !spec.Omit {
			direct[spec.Name] = true
		}
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldVal := val.Field(i)

		if field.Anonymous {
			if fieldVal.Kind() != reflect.Struct {
				continue
			}
			embeddedNode, err := toIRValue(fieldVal, fieldPath, visited, cfg)
			if err != nil {
				return nil, err
			}
			if embeddedNode.Type != ir.ObjectType {
				continue
			}
			for j := range embeddedNode.Fields {
				fieldName := embeddedNode.Fields[j].String
				if direct[fieldName] {
					continue
				}
				if _, exists := irMap[fieldName]; exists {
					return nil, &MarshalError{
						FieldPath: fieldPath,
						Message:   fmt.Sprintf("field name conflict: embedded struct field %q conflicts with existing field", fieldName),
					}
				}
				irMap[fieldName] = embeddedNode.Values[j]
			}
			continue
		}

		spec, err := parseFieldSpec(field)
		if err != nil {
			return nil, &MarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
		}
		if spec.Omit {
			continue
		}
		if spec.OmitEmpty && fieldVal.IsZero() {
			continue
		}
		if _, exists := irMap[spec.Name]; exists {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("field name conflict: %q mapped twice", spec.Name),
			}
		}

		fieldNode, err := toIRValue(fieldVal, keyPath(fieldPath, spec.Name), visited, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.OmitNulls && fieldNode.Type == ir.NullType {
			continue
		}
		irMap[spec.Name] = fieldNode
	}

	return ir.FromMap(irMap), nil
}

func keyPath(fieldPath, key string) string {
	if fieldPath == "" {
		return key
	}
	return fieldPath + "." + key
}

func elemPath(fieldPath string, i int) string {
	return fmt.Sprintf("%s[%d]", fieldPath, i)
}
