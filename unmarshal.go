package marshall

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/TheBinaryBrigade/dynamodb-marshall/debug"
	"github.com/TheBinaryBrigade/dynamodb-marshall/ir"
)

// Unmarshal converts a DynamoDB attribute value to a value tree. It is
// total over the attribute grammar: set members collapse to arrays
// (lossy, see the package documentation), N text that does not scan as
// a decimal number degrades to a string, and anything else outside the
// supported grammar, a nil attribute included, degrades to Null.
func Unmarshal(av types.AttributeValue, opts ...Option) *ir.Node {
	cfg := newConfig(opts...)
	y := unmarshalAttr(av, 0, cfg)
	if debug.Unmarshal() {
		debug.Logf("unmarshal:\n%v\n", y)
	}
	return y
}

func unmarshalAttr(av types.AttributeValue, depth int, cfg *config) *ir.Node {
	if depth > cfg.maxDepth {
		return ir.Null()
	}
	switch x := av.(type) {
	case *types.AttributeValueMemberNULL:
		// The member's bool is ignored; NULL is null either way.
		return ir.Null()
	case *types.AttributeValueMemberBOOL:
		return ir.FromBool(x.Value)
	case *types.AttributeValueMemberN:
		return numberOrString(x.Value)
	case *types.AttributeValueMemberS:
		return ir.FromString(x.Value)
	case *types.AttributeValueMemberB:
		return fromBinary(x.Value)
	case *types.AttributeValueMemberL:
		values := make([]*ir.Node, len(x.Value))
		for i, item := range x.Value {
			values[i] = unmarshalAttr(item, depth+1, cfg)
		}
		return ir.FromSlice(values)
	case *types.AttributeValueMemberM:
		yMap := make(map[string]*ir.Node, len(x.Value))
		for key, item := range x.Value {
			yMap[key] = unmarshalAttr(item, depth+1, cfg)
		}
		return ir.FromMap(yMap)
	case *types.AttributeValueMemberSS:
		values := make([]*ir.Node, len(x.Value))
		for i, s := range x.Value {
			values[i] = ir.FromString(s)
		}
		return ir.FromSlice(values)
	case *types.AttributeValueMemberNS:
		values := make([]*ir.Node, len(x.Value))
		for i, n := range x.Value {
			values[i] = numberOrString(n)
		}
		return ir.FromSlice(values)
	case *types.AttributeValueMemberBS:
		values := make([]*ir.Node, len(x.Value))
		for i, b := range x.Value {
			values[i] = fromBinary(b)
		}
		return ir.FromSlice(values)
	default:
		return ir.Null()
	}
}

// numberOrString keeps valid decimal text as a number node verbatim and
// degrades anything else to a string.
func numberOrString(text string) *ir.Node {
	if isNumberText(text) {
		return ir.FromNumber(text)
	}
	return ir.FromString(text)
}

// fromBinary converts a binary blob to an array of byte numbers, the
// shape encoding/json gives a []byte-bearing document.
func fromBinary(b []byte) *ir.Node {
	values := make([]*ir.Node, len(b))
	for i, v := range b {
		values[i] = ir.FromInt(int64(v))
	}
	return ir.FromSlice(values)
}

// isNumberText reports whether s matches the JSON number grammar. The
// grammar is width-independent: integers wider than int64 still count.
func isNumberText(s string) bool {
	i, n := 0, len(s)
	if n == 0 {
		return false
	}
	if s[i] == '-' {
		i++
	}
	// Integer part.
	start := i
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return false
	}
	// Fraction.
	if i < n && s[i] == '.' {
		i++
		start = i
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	// Exponent.
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < n && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start = i
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == n
}
