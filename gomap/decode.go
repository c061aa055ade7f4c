package gomap

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/TheBinaryBrigade/dynamodb-marshall/debug"
	"github.com/TheBinaryBrigade/dynamodb-marshall/ir"
)

// IRUnmarshaler is the structural decoding capability: a type that can
// reconstruct itself from the generic value tree takes over its own
// decoding.
type IRUnmarshaler interface {
	UnmarshalIR(*ir.Node) error
}

// FromIR converts a node tree to a Go value. v must be a non-nil
// pointer to the target. Types implementing IRUnmarshaler or
// encoding.TextUnmarshaler are honored; everything else is converted by
// reflection. Either the whole value decodes or an error is returned;
// struct decoding reports every failing field, not just the first.
func FromIR(node *ir.Node, v any, opts ...UnmapOption) error {
	if v == nil {
		return &UnmarshalError{Kind: KindBadTarget, Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr {
		return &UnmarshalError{Kind: KindBadTarget, Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return &UnmarshalError{Kind: KindBadTarget, Message: "destination pointer cannot be nil"}
	}
	if u, ok := v.(IRUnmarshaler); ok {
		return u.UnmarshalIR(node)
	}
	if debug.Gomap() {
		debug.Logf("gomap from ir (%T):\n%v\n", v, node)
	}
	cfg := newUnmapConfig(opts...)
	return fromIRValue(node, val.Elem(), "", cfg)
}

func fromIRValue(node *ir.Node, val reflect.Value, fieldPath string, cfg *unmapConfig) error {
	if node == nil {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindBadTarget,
			Message:   "node is nil",
		}
	}

	typ := val.Type()
	kind := typ.Kind()

	if kind == reflect.Ptr {
		if node.Type == ir.NullType {
			if val.CanSet() {
				val.Set(reflect.Zero(typ))
			}
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		if u, ok := val.Interface().(IRUnmarshaler); ok {
			return u.UnmarshalIR(node)
		}
		return fromIRValue(node, val.Elem(), fieldPath, cfg)
	}

	if val.CanAddr() {
		if u, ok := val.Addr().Interface().(IRUnmarshaler); ok {
			return u.UnmarshalIR(node)
		}
	}

	if node.Type == ir.NullType {
		if val.CanSet() {
			val.Set(reflect.Zero(typ))
		}
		return nil
	}

	// Text-encoded types (enumerations, time.Time and the like) decode
	// through encoding.TextUnmarshaler, mirroring the encode side.
	if val.CanAddr() {
		if tu, ok := val.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return unmarshalText(tu, node, fieldPath)
		}
	}

	switch kind {
	case reflect.String:
		return fromIRToString(node, val, fieldPath)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromIRToInt(node, val, fieldPath)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromIRToUint(node, val, fieldPath)

	case reflect.Float32, reflect.Float64:
		return fromIRToFloat(node, val, fieldPath)

	case reflect.Bool:
		return fromIRToBool(node, val, fieldPath)

	case reflect.Slice, reflect.Array:
		return fromIRToSlice(node, val, fieldPath, cfg)

	case reflect.Map:
		return fromIRToMap(node, val, fieldPath, cfg)

	case reflect.Struct:
		return fromIRToStruct(node, val, fieldPath, cfg)

	case reflect.Interface:
		return fromIRToInterface(node, val, fieldPath)

	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindTypeMismatch,
			Message:   fmt.Sprintf("unsupported type: %s", typ),
		}
	}
}

func unmarshalText(tu encoding.TextUnmarshaler, node *ir.Node, fieldPath string) error {
	if node.Type != ir.StringType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindTypeMismatch,
			Message:   fmt.Sprintf("expected string, got %s", node.Type),
		}
	}
	if err := tu.UnmarshalText([]byte(node.String)); err != nil {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindUnknownVariant,
			Message:   fmt.Sprintf("unrecognized value %q", node.String),
			Err:       err,
		}
	}
	return nil
}

func fromIRToString(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.StringType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindTypeMismatch,
			Message:   fmt.Sprintf("expected string, got %s", node.Type),
		}
	}
	if val.CanSet() {
		val.SetString(node.String)
	}
	return nil
}

func fromIRToInt(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.NumberType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindTypeMismatch,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}

	var intVal int64
	if node.Int64 != nil {
		intVal = *node.Int64
	} else {
		parsed, err := strconv.ParseInt(node.NumberText(), 10, 64)
		if err != nil {
			kind := KindTypeMismatch
			if errors.Is(err, strconv.ErrRange) {
				kind = KindNumericOverflow
			}
			return &UnmarshalError{
				FieldPath: fieldPath,
				Kind:      kind,
				Message:   fmt.Sprintf("invalid integer: %q", node.NumberText()),
				Err:       err,
			}
		}
		intVal = parsed
	}

	if val.OverflowInt(intVal) {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindNumericOverflow,
			Message:   fmt.Sprintf("value %d overflows %s", intVal, val.Type()),
		}
	}
	if val.CanSet() {
		val.SetInt(intVal)
	}
	return nil
}

func fromIRToUint(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.NumberType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindTypeMismatch,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}

	if node.Int64 != nil && *node.Int64 < 0 {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindNumericOverflow,
			Message:   fmt.Sprintf("negative value %d cannot be converted to unsigned integer", *node.Int64),
		}
	}
	uintVal, err := strconv.ParseUint(node.NumberText(), 10, 64)
	if err != nil {
		kind := KindTypeMismatch
		if errors.Is(err, strconv.ErrRange) {
			kind = KindNumericOverflow
		}
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      kind,
			Message:   fmt.Sprintf("invalid unsigned integer: %q", node.NumberText()),
			Err:       err,
		}
	}

	if val.OverflowUint(uintVal) {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindNumericOverflow,
			Message:   fmt.Sprintf("value %d overflows %s", uintVal, val.Type()),
		}
	}
	if val.CanSet() {
		val.SetUint(uintVal)
	}
	return nil
}

func fromIRToFloat(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.NumberType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindTypeMismatch,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}

	var floatVal float64
	switch {
	case node.Float64 != nil:
		floatVal = *node.Float64
	case node.Int64 != nil:
		floatVal = float64(*node.Int64)
	default:
		parsed, err := strconv.ParseFloat(node.NumberText(), 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Kind:      KindTypeMismatch,
				Message:   fmt.Sprintf("invalid float: %q", node.NumberText()),
				Err:       err,
			}
		}
		floatVal = parsed
	}

	if val.CanSet() {
		val.SetFloat(floatVal)
	}
	return nil
}

func fromIRToBool(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.BoolType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindTypeMismatch,
			Message:   fmt.Sprintf("expected bool, got %s", node.Type),
		}
	}
	if val.CanSet() {
		val.SetBool(node.Bool)
	}
	return nil
}

// fromIRToInterface decodes into an interface value, inferring the
// concrete Go type from the node type.
func fromIRToInterface(node *ir.Node, val reflect.Value, fieldPath string) error {
	if val.NumMethod() != 0 {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindTypeMismatch,
			Message:   fmt.Sprintf("cannot decode into non-empty interface %s", val.Type()),
		}
	}
	if !val.CanSet() {
		return nil
	}
	goVal := node.ToGo()
	if goVal == nil {
		val.Set(reflect.Zero(val.Type()))
		return nil
	}
	val.Set(reflect.ValueOf(goVal))
	return nil
}

func fromIRToSlice(node *ir.Node, val reflect.Value, fieldPath string, cfg *unmapConfig) error {
	if node.Type != ir.ArrayType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindTypeMismatch,
			Message:   fmt.Sprintf("expected array, got %s", node.Type),
		}
	}

	length := len(node.Values)
	typ := val.Type()

	if typ.Kind() == reflect.Array {
		if val.Len() != length {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Kind:      KindTypeMismatch,
				Message:   fmt.Sprintf("array length mismatch: expected %d, got %d", val.Len(), length),
			}
		}
	} else {
		val.Set(reflect.MakeSlice(typ, length, length))
	}

	for i := 0; i < length; i++ {
		if err := fromIRValue(node.Values[i], val.Index(i), elemPath(fieldPath, i), cfg); err != nil {
			return err
		}
	}
	return nil
}

func fromIRToMap(node *ir.Node, val reflect.Value, fieldPath string, cfg *unmapConfig) error {
	if node.Type != ir.ObjectType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindTypeMismatch,
			Message:   fmt.Sprintf("expected object, got %s", node.Type),
		}
	}

	typ := val.Type()
	if typ.Key().Kind() != reflect.String {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindTypeMismatch,
			Message:   fmt.Sprintf("map keys must be strings, got %s", typ.Key()),
		}
	}
	valType := typ.Elem()
	val.Set(reflect.MakeMapWithSize(typ, len(node.Fields)))

	for i := range node.Fields {
		key := node.Fields[i].String
		valueVal := reflect.New(valType).Elem()
		if err := fromIRValue(node.Values[i], valueVal, keyPath(fieldPath, key), cfg); err != nil {
			return err
		}
		val.SetMapIndex(reflect.ValueOf(key).Convert(typ.Key()), valueVal)
	}
	return nil
}

// fromIRToStruct decodes an object node into a struct. Every failing
// field contributes an error; missing non-optional fields are reported
// unless Partial is set. Embedded struct fields are promoted.
func fromIRToStruct(node *ir.Node, val reflect.Value, fieldPath string, cfg *unmapConfig) error {
	if node.Type != ir.ObjectType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Kind:      KindTypeMismatch,
			Message:   fmt.Sprintf("expected object, got %s", node.Type),
		}
	}

	type fieldInfo struct {
		index []int
		spec  *fieldSpec
	}
	fieldMap := make(map[string]*fieldInfo)
	var collect func(typ reflect.Type, index []int) error
	collect = func(typ reflect.Type, index []int) error {
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			if field.Anonymous && field.Type.Kind() == reflect.Struct {
				if err := collect(field.Type, append(append([]int{}, index...), i)); err != nil {
					return err
				}
				continue
			}
			spec, err := parseFieldSpec(field)
			if err != nil {
				return &UnmarshalError{FieldPath: fieldPath, Kind: KindBadTarget, Message: err.Error(), Err: err}
			}
			if spec.Omit {
				continue
			}
			idx := append(append([]int{}, index...), i)
			if prev, exists := fieldMap[spec.Name]; exists {
				// A shallower field shadows a promoted embedded one;
				// two fields at the same depth are a genuine conflict.
				if len(prev.index) == len(idx) {
					return &UnmarshalError{
						FieldPath: fieldPath,
						Kind:      KindBadTarget,
						Message:   fmt.Sprintf("field name conflict: %q mapped twice", spec.Name),
					}
				}
				if len(prev.index) < len(idx) {
					continue
				}
			}
			fieldMap[spec.Name] = &fieldInfo{
				index: idx,
				spec:  spec,
			}
		}
		return nil
	}
	if err := collect(val.Type(), nil); err != nil {
		return err
	}

	var result *multierror.Error
	seen := make(map[string]bool, len(node.Fields))
	for i := range node.Fields {
		fieldName := node.Fields[i].String
		info, found := fieldMap[fieldName]
		if !found {
			// Extra field in the data; skip it.
			continue
		}
		seen[fieldName] = true
		fieldVal := val.FieldByIndex(info.index)
		if err := fromIRValue(node.Values[i], fieldVal, keyPath(fieldPath, fieldName), cfg); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if !cfg.Partial {
		for name, info := range fieldMap {
			if seen[name] || info.spec.Optional {
				continue
			}
			result = multierror.Append(result, &UnmarshalError{
				FieldPath: keyPath(fieldPath, name),
				Kind:      KindMissingField,
				Message:   fmt.Sprintf("required field %q is absent", name),
			})
		}
	}

	return result.ErrorOrNil()
}
