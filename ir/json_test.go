package ir

import (
	"testing"
)

func TestFromJSONScalars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *Node
	}{
		{"null", `null`, Null()},
		{"true", `true`, FromBool(true)},
		{"int", `42`, FromNumber("42")},
		{"float", `123.456`, FromNumber("123.456")},
		{"string", `"hello"`, FromString("hello")},
		{"array", `[1,"two",null]`, FromSlice([]*Node{FromNumber("1"), FromString("two"), Null()})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromJSON([]byte(tt.in))
			if err != nil {
				t.Fatalf("FromJSON error: %v", err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("FromJSON(%s) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	docs := []string{
		`{"hello":"world","n":42,"some":{"deep":{"value":42}}}`,
		`["hello",123,true,null,{"nested":"object"}]`,
		`{"someField":null,"otherField":42,"arrayField":[null,1,true,"string"]}`,
	}
	for _, doc := range docs {
		node, err := FromJSON([]byte(doc))
		if err != nil {
			t.Fatalf("FromJSON(%s) error: %v", doc, err)
		}
		out, err := ToJSON(node)
		if err != nil {
			t.Fatalf("ToJSON error: %v", err)
		}
		back, err := FromJSON(out)
		if err != nil {
			t.Fatalf("FromJSON(round trip) error: %v", err)
		}
		if !Equal(node, back) {
			t.Errorf("round trip changed the tree for %s: got %s", doc, out)
		}
	}
}

func TestJSONNumberTextPreserved(t *testing.T) {
	// Decimal text wider than any machine type survives a round trip.
	node, err := FromJSON([]byte(`999999999999999999999`))
	if err != nil {
		t.Fatalf("FromJSON error: %v", err)
	}
	if node.Type != NumberType {
		t.Fatalf("expected number, got %s", node.Type)
	}
	out, err := ToJSON(node)
	if err != nil {
		t.Fatalf("ToJSON error: %v", err)
	}
	if string(out) != "999999999999999999999" {
		t.Errorf("number text mangled: %s", out)
	}
}

func TestJSONIntStaysInt(t *testing.T) {
	node, err := FromJSON([]byte(`42`))
	if err != nil {
		t.Fatalf("FromJSON error: %v", err)
	}
	out, err := ToJSON(node)
	if err != nil {
		t.Fatalf("ToJSON error: %v", err)
	}
	// Not "42.0" or any float-rounded variant.
	if string(out) != "42" {
		t.Errorf("ToJSON(42) = %s, want 42", out)
	}
}

func TestJSONObjectFieldOrderKept(t *testing.T) {
	obj := FromKeyVals([]KeyVal{
		{Key: "z", Val: FromInt(1)},
		{Key: "a", Val: FromString("two")},
	})
	out, err := ToJSON(obj)
	if err != nil {
		t.Fatalf("ToJSON error: %v", err)
	}
	if string(out) != `{"z":1,"a":"two"}` {
		t.Errorf("ToJSON = %s", out)
	}
}

func TestJSONInvalid(t *testing.T) {
	if _, err := FromJSON([]byte(`{"unterminated":`)); err == nil {
		t.Errorf("expected error for invalid JSON")
	}
}
