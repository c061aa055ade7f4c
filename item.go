package marshall

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/TheBinaryBrigade/dynamodb-marshall/gomap"
	"github.com/TheBinaryBrigade/dynamodb-marshall/ir"
)

// MarshalItem encodes a Go value into the map-of-attributes form the
// DynamoDB item APIs (PutItem, GetItem) work with. The value must
// encode to an object.
func MarshalItem(v any, opts ...gomap.MapOption) (map[string]types.AttributeValue, error) {
	node, err := gomap.ToIR(v, opts...)
	if err != nil {
		return nil, err
	}
	if node.Type != ir.ObjectType {
		return nil, &gomap.MarshalError{
			Message: fmt.Sprintf("item must encode to an object, got %s", node.Type),
		}
	}
	item := make(map[string]types.AttributeValue, len(node.Fields))
	for i := range node.Fields {
		item[node.Fields[i].String] = Marshal(node.Values[i])
	}
	return item, nil
}

// UnmarshalItem decodes a map-of-attributes item into v, which must be
// a non-nil pointer. Attribute values are converted with
// DefaultMaxDepth; decode each attribute with Unmarshal directly to
// control the depth limit.
func UnmarshalItem(item map[string]types.AttributeValue, v any, opts ...gomap.UnmapOption) error {
	yMap := make(map[string]*ir.Node, len(item))
	for key, av := range item {
		yMap[key] = Unmarshal(av)
	}
	return gomap.FromIR(ir.FromMap(yMap), v, opts...)
}
