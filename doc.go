// Package marshall converts between a generic JSON-shaped value tree and
// the DynamoDB attribute-value model.
//
// # Layers
//
// The value transcoder, Marshal and Unmarshal, is a pure recursive
// mapping between ir.Node trees and aws-sdk-go-v2 dynamodb
// types.AttributeValue trees. Neither direction can fail: unsupported
// or malformed attribute input degrades to Null (or to a string for
// non-numeric N text) instead of aborting the conversion.
//
// The typed transcoder, MarshalAny and UnmarshalAny, bridges arbitrary
// Go values through the value tree using the gomap package, and is
// fallible: structural encoding and decoding report errors with field
// paths.
//
//	attr, err := marshall.MarshalAny(record)
//	...
//	var out Record
//	err = marshall.UnmarshalAny(attr, &out)
//
// # Sets
//
// DynamoDB's native set types (SS, NS, BS) are never produced by this
// package. On the reverse path they are tolerated by collapsing them
// into plain lists, so a set does not survive a round trip: Unmarshal
// turns SS into an array of strings, and re-marshalling that array
// yields L, not SS. This is a documented lossy mapping, not a defect.
//
// # Numbers
//
// Numbers cross the boundary as decimal text. N("42") unmarshal and
// re-marshal reproduces N("42") exactly, including integers wider than
// int64; N text that does not scan as a decimal number ("123abc")
// degrades to a string.
package marshall
