package ir

import (
	"maps"
	"slices"
	"strconv"
)

// Node is a single value in a generic JSON-shaped tree. It works as a
// recursive tagged union: the field holding the value depends on Type.
//
// Objects keep their keys in Fields and the corresponding values at the
// same index in Values. Field order is preserved from construction but is
// not significant for equality.
//
// Numbers carry their decimal text in Number; Int64 and Float64 are
// machine views of the same value, set when the text fits. Either the
// text or one of the machine views may be absent, never all three.
type Node struct {
	Type Type

	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dst.Fields[i] = yf.Clone()
		}
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	return dst
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

// FromNumber builds a number node from decimal text, keeping the text
// verbatim and filling the machine views when the text fits. The text is
// not validated here; callers pass text that already scans as a number.
func FromNumber(text string) *Node {
	res := &Node{
		Type:   NumberType,
		Number: text,
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		res.Int64 = &i
		return res
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		res.Float64 = &f
	}
	return res
}

func Null() *Node {
	return &Node{Type: NullType}
}

// NumberText returns the decimal text of a number node.
func (y *Node) NumberText() string {
	if y.Number != "" {
		return y.Number
	}
	if y.Int64 != nil {
		return strconv.FormatInt(*y.Int64, 10)
	}
	if y.Float64 != nil {
		return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
	}
	return "0"
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i].String] = node.Values[i]
	}
	return res
}

func FromMap(yMap map[string]*Node) *Node {
	res := &Node{}
	res.Type = ObjectType
	res.Fields = make([]*Node, len(yMap))
	res.Values = make([]*Node, len(yMap))
	keys := slices.Sorted(maps.Keys(yMap))
	for i, key := range keys {
		res.Fields[i] = FromString(key)
		res.Values[i] = yMap[key]
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object preserving the given key order.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		res.Fields[i] = FromString(kvs[i].Key)
		res.Values[i] = kvs[i].Val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type:   ArrayType,
		Values: ySlice,
	}
	if res.Values == nil {
		res.Values = []*Node{}
	}
	return res
}

func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// Depth returns the nesting depth of the tree, 1 for a leaf.
func (y *Node) Depth() int {
	res := 1
	for _, yy := range y.Values {
		if d := yy.Depth() + 1; d > res {
			res = d
		}
	}
	return res
}
