// Package ir provides the generic value tree sitting between JSON-shaped
// data and DynamoDB attribute values.
//
// # Overview
//
// The package defines a recursive Node structure covering the JSON data
// model: null, booleans, numbers, strings, arrays and objects. The tree
// is freshly constructed on every conversion, owns its children and
// cannot contain cycles by construction.
//
// # Numbers
//
// Numbers are carried as decimal text to preserve precision across the
// store boundary: a value parsed from the text "42" round-trips as "42",
// never as "42.0" or a float-rounded variant. Int64 and Float64 machine
// views are filled opportunistically when the text fits; consumers
// needing machine numeric types convert at the edges.
//
// # Bridges
//
// Node implements json.Marshaler and json.Unmarshaler over the plain
// JSON representation, and FromYAML/ToYAML provide the same bridge for
// YAML. FromGo/ToGo convert to and from the generic any-typed values
// produced by those decoders.
package ir
