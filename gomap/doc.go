// Package gomap provides encoding and decoding between nodes and Go
// values.
//
// # Usage
//
//	// Decode a node into a Go struct
//	type User struct {
//	    Name string `marshall:"field=name"`
//	    Age  int    `marshall:"field=age"`
//	}
//	var user User
//	err := gomap.FromIR(node, &user)
//
//	// Encode a Go value to a node
//	node, err := gomap.ToIR(user)
//
//	// With options
//	node, err := gomap.ToIR(user, gomap.OmitNulls(true))
//
// Field visibility follows encoding/json: only exported struct fields
// are processed, matching is case-sensitive, and embedded structs have
// their fields promoted. Types may take over their own conversion by
// implementing IRMarshaler / IRUnmarshaler, or encode through
// encoding.TextMarshaler / TextUnmarshaler for text-shaped scalars.
//
// Decoding is strict by default: a non-optional struct field absent from
// the object is an error, and all field failures in a struct are
// aggregated so callers see every malformed field at once.
package gomap
