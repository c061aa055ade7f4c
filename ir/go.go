package ir

import (
	"encoding/json"
	"fmt"
)

// FromGo builds a node from a plain Go value of the kind produced by
// generic decoders (encoding/json into any, goccy/go-yaml into any):
// nil, bool, string, numeric types, json.Number, []any and
// map[string]any. Struct mapping lives in the gomap package, not here.
func FromGo(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case json.Number:
		return FromNumber(x.String()), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromNumber(fmt.Sprintf("%d", x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return FromNumber(fmt.Sprintf("%d", x)), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case []any:
		values := make([]*Node, len(x))
		for i, elem := range x {
			node, err := FromGo(elem)
			if err != nil {
				return nil, err
			}
			values[i] = node
		}
		return FromSlice(values), nil
	case map[string]any:
		yMap := make(map[string]*Node, len(x))
		for key, elem := range x {
			node, err := FromGo(elem)
			if err != nil {
				return nil, err
			}
			yMap[key] = node
		}
		return FromMap(yMap), nil
	default:
		return nil, fmt.Errorf("cannot build node from %T", v)
	}
}

// ToGo converts a node to the corresponding plain Go value: nil, bool,
// string, int64/float64 (json.Number when only decimal text is held),
// []any or map[string]any.
func (y *Node) ToGo() any {
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return json.Number(y.NumberText())
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, yy := range y.Values {
			res[i] = yy.ToGo()
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i := range y.Fields {
			res[y.Fields[i].String] = y.Values[i].ToGo()
		}
		return res
	}
	return nil
}
