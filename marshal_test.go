package marshall

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/TheBinaryBrigade/dynamodb-marshall/ir"
)

// The SDK attribute types carry an unexported noSmithyDocumentSerde
// field that go-cmp refuses to compare without an option.
var cmpAV = cmpopts.IgnoreUnexported(
	types.AttributeValueMemberNULL{},
	types.AttributeValueMemberBOOL{},
	types.AttributeValueMemberN{},
	types.AttributeValueMemberS{},
	types.AttributeValueMemberL{},
	types.AttributeValueMemberM{},
)

func TestMarshal_Scalars(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		want types.AttributeValue
	}{
		{"nil node", nil, &types.AttributeValueMemberNULL{Value: true}},
		{"null", ir.Null(), &types.AttributeValueMemberNULL{Value: true}},
		{"bool true", ir.FromBool(true), &types.AttributeValueMemberBOOL{Value: true}},
		{"bool false", ir.FromBool(false), &types.AttributeValueMemberBOOL{Value: false}},
		{"int", ir.FromInt(42), &types.AttributeValueMemberN{Value: "42"}},
		{"negative int", ir.FromInt(-7), &types.AttributeValueMemberN{Value: "-7"}},
		{"float", ir.FromFloat(123.456), &types.AttributeValueMemberN{Value: "123.456"}},
		{"wide number text", ir.FromNumber("999999999999999999999"), &types.AttributeValueMemberN{Value: "999999999999999999999"}},
		{"string", ir.FromString("hello"), &types.AttributeValueMemberS{Value: "hello"}},
		{"empty string", ir.FromString(""), &types.AttributeValueMemberS{Value: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Marshal(tt.node)
			if diff := cmp.Diff(tt.want, got, cmpAV); diff != "" {
				t.Errorf("Marshal mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshal_Collections(t *testing.T) {
	node := ir.FromMap(map[string]*ir.Node{
		"hello": ir.FromString("world"),
		"n":     ir.FromInt(42),
		"list":  ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromString("two"), ir.Null()}),
		"some": ir.FromMap(map[string]*ir.Node{
			"deep": ir.FromMap(map[string]*ir.Node{
				"value": ir.FromInt(42),
			}),
		}),
	})
	want := &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
		"hello": &types.AttributeValueMemberS{Value: "world"},
		"n":     &types.AttributeValueMemberN{Value: "42"},
		"list": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			&types.AttributeValueMemberN{Value: "1"},
			&types.AttributeValueMemberS{Value: "two"},
			&types.AttributeValueMemberNULL{Value: true},
		}},
		"some": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"deep": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
				"value": &types.AttributeValueMemberN{Value: "42"},
			}},
		}},
	}}
	got := Marshal(node)
	if diff := cmp.Diff(want, got, cmpAV); diff != "" {
		t.Errorf("Marshal mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_EmptyCollections(t *testing.T) {
	gotList := Marshal(ir.FromSlice(nil))
	if l, ok := gotList.(*types.AttributeValueMemberL); !ok || len(l.Value) != 0 {
		t.Errorf("empty array = %#v", gotList)
	}
	gotMap := Marshal(ir.FromMap(nil))
	if m, ok := gotMap.(*types.AttributeValueMemberM); !ok || len(m.Value) != 0 {
		t.Errorf("empty object = %#v", gotMap)
	}
}

func TestMarshal_DepthLimitDegradesToNull(t *testing.T) {
	// Build a chain of nested objects deeper than the limit.
	node := ir.FromInt(1)
	for i := 0; i < 10; i++ {
		node = ir.FromMap(map[string]*ir.Node{"next": node})
	}
	got := Marshal(node, MaxDepth(3))

	// Walk down: the first levels are maps, and past the limit the
	// chain is cut by a NULL instead of panicking or recursing forever.
	cur := got
	depth := 0
	for {
		m, ok := cur.(*types.AttributeValueMemberM)
		if !ok {
			break
		}
		cur = m.Value["next"]
		depth++
	}
	if _, ok := cur.(*types.AttributeValueMemberNULL); !ok {
		t.Errorf("expected NULL past the depth limit, got %#v", cur)
	}
	if depth > 4 {
		t.Errorf("depth limit not enforced: walked %d levels", depth)
	}
}

func TestRoundTrip_TreeThroughAttribute(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
	}{
		{"null", ir.Null()},
		{"bool", ir.FromBool(true)},
		{"int", ir.FromInt(42)},
		{"float", ir.FromFloat(-0.5)},
		{"wide number", ir.FromNumber("999999999999999999999")},
		{"string", ir.FromString("hello world")},
		{"array", ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromBool(false), ir.FromString("x")})},
		{"nested object", ir.FromMap(map[string]*ir.Node{
			"hello": ir.FromString("world"),
			"n":     ir.FromInt(42),
			"some": ir.FromMap(map[string]*ir.Node{
				"deep": ir.FromMap(map[string]*ir.Node{
					"value": ir.FromInt(42),
				}),
			}),
		})},
		{"empty object", ir.FromMap(nil)},
		{"empty array", ir.FromSlice(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unmarshal(Marshal(tt.node))
			if !ir.Equal(got, tt.node) {
				t.Errorf("round trip mismatch:\ngot  %v\nwant %v", got, tt.node)
			}
		})
	}
}

func TestRoundTrip_AttributeThroughTree(t *testing.T) {
	// Within the L/M/scalar grammar, attribute -> tree -> attribute is
	// the identity. Sets and binaries are outside: they collapse.
	tests := []struct {
		name string
		av   types.AttributeValue
	}{
		{"NULL", &types.AttributeValueMemberNULL{Value: true}},
		{"BOOL", &types.AttributeValueMemberBOOL{Value: true}},
		{"N", &types.AttributeValueMemberN{Value: "42"}},
		{"N wide", &types.AttributeValueMemberN{Value: "999999999999999999999"}},
		{"N float", &types.AttributeValueMemberN{Value: "123.456"}},
		{"S", &types.AttributeValueMemberS{Value: "hello"}},
		{"L", &types.AttributeValueMemberL{Value: []types.AttributeValue{
			&types.AttributeValueMemberN{Value: "1"},
			&types.AttributeValueMemberS{Value: "two"},
		}}},
		{"M", &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"k": &types.AttributeValueMemberBOOL{Value: false},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Marshal(Unmarshal(tt.av))
			if diff := cmp.Diff(tt.av, got, cmpAV); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
