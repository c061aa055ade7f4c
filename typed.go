package marshall

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/TheBinaryBrigade/dynamodb-marshall/gomap"
)

// MarshalAny encodes an arbitrary Go value into an attribute value by
// first converting it to the generic value tree. Fails only if the
// structural encoding step fails; the tree-to-attribute step is total.
func MarshalAny(v any, opts ...gomap.MapOption) (types.AttributeValue, error) {
	node, err := gomap.ToIR(v, opts...)
	if err != nil {
		return nil, err
	}
	return Marshal(node), nil
}

// UnmarshalAny decodes an attribute value into v, which must be a
// non-nil pointer. The attribute-to-tree step runs with
// DefaultMaxDepth; use Unmarshal plus gomap.FromIR directly to control
// the depth limit. Decoding is strict: missing required fields, shape
// mismatches, numeric overflow and unrecognized text variants are all
// reported, with field paths, aggregated per struct. No partial result
// is left behind on error beyond fields already written.
func UnmarshalAny(av types.AttributeValue, v any, opts ...gomap.UnmapOption) error {
	return gomap.FromIR(Unmarshal(av), v, opts...)
}
