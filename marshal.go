package marshall

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/TheBinaryBrigade/dynamodb-marshall/debug"
	"github.com/TheBinaryBrigade/dynamodb-marshall/ir"
)

// Marshal converts a value tree to a DynamoDB attribute value. It is
// total: every node maps to exactly one attribute and there is no error
// path. A nil node, or nesting beyond the depth limit, maps to NULL.
func Marshal(y *ir.Node, opts ...Option) types.AttributeValue {
	cfg := newConfig(opts...)
	if debug.Marshal() {
		debug.Logf("marshal:\n%v\n", y)
	}
	return marshalNode(y, 0, cfg)
}

func marshalNode(y *ir.Node, depth int, cfg *config) types.AttributeValue {
	if y == nil || depth > cfg.maxDepth {
		return &types.AttributeValueMemberNULL{Value: true}
	}
	switch y.Type {
	case ir.NullType:
		return &types.AttributeValueMemberNULL{Value: true}
	case ir.BoolType:
		return &types.AttributeValueMemberBOOL{Value: y.Bool}
	case ir.NumberType:
		return &types.AttributeValueMemberN{Value: y.NumberText()}
	case ir.StringType:
		return &types.AttributeValueMemberS{Value: y.String}
	case ir.ArrayType:
		items := make([]types.AttributeValue, len(y.Values))
		for i, yy := range y.Values {
			items[i] = marshalNode(yy, depth+1, cfg)
		}
		return &types.AttributeValueMemberL{Value: items}
	case ir.ObjectType:
		m := make(map[string]types.AttributeValue, len(y.Fields))
		for i := range y.Fields {
			m[y.Fields[i].String] = marshalNode(y.Values[i], depth+1, cfg)
		}
		return &types.AttributeValueMemberM{Value: m}
	}
	return &types.AttributeValueMemberNULL{Value: true}
}
