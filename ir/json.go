package ir

import (
	"bytes"
	"encoding/json"
)

// Nodes marshal to and from the plain JSON representation of the value
// they hold, not to an encoding of the node structure. Decoding goes
// through json.Decoder.UseNumber so numeric decimal text is carried into
// Number verbatim instead of being rounded through float64.

func (y *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, y); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, y *Node) error {
	if y == nil {
		buf.WriteString("null")
		return nil
	}
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		if y.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case NumberType:
		buf.WriteString(y.NumberText())
	case StringType:
		d, err := json.Marshal(y.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		buf.WriteByte('[')
		for i, yy := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, yy); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i := range y.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(y.Fields[i].String)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, y.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func (y *Node) UnmarshalJSON(d []byte) error {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	node, err := FromGo(v)
	if err != nil {
		return err
	}
	node.CloneTo(y)
	return nil
}

// FromJSON parses a JSON document into a node tree.
func FromJSON(d []byte) (*Node, error) {
	y := &Node{}
	if err := y.UnmarshalJSON(d); err != nil {
		return nil, err
	}
	return y, nil
}

// ToJSON renders a node tree as a JSON document.
func ToJSON(y *Node) ([]byte, error) {
	return y.MarshalJSON()
}
