package marshall

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/TheBinaryBrigade/dynamodb-marshall/ir"
)

func TestUnmarshal_Scalars(t *testing.T) {
	tests := []struct {
		name string
		av   types.AttributeValue
		want *ir.Node
	}{
		{"nil attribute", nil, ir.Null()},
		{"NULL true", &types.AttributeValueMemberNULL{Value: true}, ir.Null()},
		{"NULL false is still null", &types.AttributeValueMemberNULL{Value: false}, ir.Null()},
		{"BOOL", &types.AttributeValueMemberBOOL{Value: true}, ir.FromBool(true)},
		{"N int", &types.AttributeValueMemberN{Value: "42"}, ir.FromInt(42)},
		{"N float", &types.AttributeValueMemberN{Value: "123.456"}, ir.FromFloat(123.456)},
		{"N exponent", &types.AttributeValueMemberN{Value: "1e3"}, ir.FromNumber("1e3")},
		{"N wider than int64", &types.AttributeValueMemberN{Value: "999999999999999999999"}, ir.FromNumber("999999999999999999999")},
		{"N junk degrades to string", &types.AttributeValueMemberN{Value: "123abc"}, ir.FromString("123abc")},
		{"N empty degrades to string", &types.AttributeValueMemberN{Value: ""}, ir.FromString("")},
		{"S", &types.AttributeValueMemberS{Value: "hello"}, ir.FromString("hello")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unmarshal(tt.av)
			if !ir.Equal(got, tt.want) {
				t.Errorf("Unmarshal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnmarshal_WideNumberTextKeptVerbatim(t *testing.T) {
	got := Unmarshal(&types.AttributeValueMemberN{Value: "999999999999999999999"})
	if got.Type != ir.NumberType {
		t.Fatalf("got %v, want a number", got)
	}
	if got.NumberText() != "999999999999999999999" {
		t.Errorf("number text = %q, lost precision", got.NumberText())
	}
	if got.Int64 != nil {
		t.Errorf("value wider than int64 should not carry an int64 view")
	}
}

func TestUnmarshal_Binary(t *testing.T) {
	got := Unmarshal(&types.AttributeValueMemberB{Value: []byte{1, 2, 255}})
	want := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2), ir.FromInt(255)})
	if !ir.Equal(got, want) {
		t.Errorf("B = %v, want %v", got, want)
	}
}

func TestUnmarshal_SetsCollapseToArrays(t *testing.T) {
	t.Run("SS", func(t *testing.T) {
		got := Unmarshal(&types.AttributeValueMemberSS{Value: []string{"a", "b"}})
		want := ir.FromSlice([]*ir.Node{ir.FromString("a"), ir.FromString("b")})
		if !ir.Equal(got, want) {
			t.Errorf("SS = %v, want %v", got, want)
		}
	})
	t.Run("NS", func(t *testing.T) {
		got := Unmarshal(&types.AttributeValueMemberNS{Value: []string{"1", "2.5", "oops"}})
		want := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromFloat(2.5), ir.FromString("oops")})
		if !ir.Equal(got, want) {
			t.Errorf("NS = %v, want %v", got, want)
		}
	})
	t.Run("BS", func(t *testing.T) {
		got := Unmarshal(&types.AttributeValueMemberBS{Value: [][]byte{{1}, {2, 3}}})
		want := ir.FromSlice([]*ir.Node{
			ir.FromSlice([]*ir.Node{ir.FromInt(1)}),
			ir.FromSlice([]*ir.Node{ir.FromInt(2), ir.FromInt(3)}),
		})
		if !ir.Equal(got, want) {
			t.Errorf("BS = %v, want %v", got, want)
		}
	})
}

func TestUnmarshal_SetRoundTripIsLossy(t *testing.T) {
	// SS -> array -> L, not back to SS. This is the one direction the
	// transcoder gives up: the value model has no set type.
	av := &types.AttributeValueMemberSS{Value: []string{"a", "b"}}
	back := Marshal(Unmarshal(av))
	if _, ok := back.(*types.AttributeValueMemberL); !ok {
		t.Errorf("SS round trip = %#v, want L", back)
	}
}

func TestUnmarshal_NestedCollections(t *testing.T) {
	av := &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
		"hello": &types.AttributeValueMemberS{Value: "world"},
		"list": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			&types.AttributeValueMemberN{Value: "1"},
			&types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
				"deep": &types.AttributeValueMemberBOOL{Value: true},
			}},
		}},
	}}
	got := Unmarshal(av)
	want := ir.FromMap(map[string]*ir.Node{
		"hello": ir.FromString("world"),
		"list": ir.FromSlice([]*ir.Node{
			ir.FromInt(1),
			ir.FromMap(map[string]*ir.Node{"deep": ir.FromBool(true)}),
		}),
	})
	if !ir.Equal(got, want) {
		t.Errorf("Unmarshal = %v, want %v", got, want)
	}
}

func TestUnmarshal_DepthLimitDegradesToNull(t *testing.T) {
	// deeply nested single-element lists
	var av types.AttributeValue = &types.AttributeValueMemberN{Value: "1"}
	for i := 0; i < 10; i++ {
		av = &types.AttributeValueMemberL{Value: []types.AttributeValue{av}}
	}
	got := Unmarshal(av, MaxDepth(3))

	cur := got
	depth := 0
	for cur.Type == ir.ArrayType && len(cur.Values) == 1 {
		cur = cur.Values[0]
		depth++
	}
	if cur.Type != ir.NullType {
		t.Errorf("expected null past the depth limit, got %v", cur)
	}
	if depth > 4 {
		t.Errorf("depth limit not enforced: walked %d levels", depth)
	}
}

func TestIsNumberText(t *testing.T) {
	valid := []string{
		"0", "42", "-42", "123.456", "-0.5",
		"1e3", "1E3", "1e-3", "1.5e+10",
		"999999999999999999999",
	}
	for _, s := range valid {
		if !isNumberText(s) {
			t.Errorf("isNumberText(%q) = false, want true", s)
		}
	}
	invalid := []string{
		"", "-", "abc", "123abc", "1.", ".5", "1e", "1e+",
		"+1", "1.2.3", " 1", "1 ", "0x10", "NaN", "Infinity",
	}
	for _, s := range invalid {
		if isNumberText(s) {
			t.Errorf("isNumberText(%q) = true, want false", s)
		}
	}
}
