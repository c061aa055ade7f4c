// Package debug gates diagnostic dumps of value trees behind
// MARSHALL_DEBUG_* environment variables.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Marshal   bool
	Unmarshal bool
	Gomap     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Marshal = boolEnv("MARSHALL_DEBUG_MARSHAL")
	d.Unmarshal = boolEnv("MARSHALL_DEBUG_UNMARSHAL")
	d.Gomap = boolEnv("MARSHALL_DEBUG_GOMAP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Marshal() bool {
	return d.Marshal
}
func Unmarshal() bool {
	return d.Unmarshal
}
func Gomap() bool {
	return d.Gomap
}
