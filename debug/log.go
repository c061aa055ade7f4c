package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/TheBinaryBrigade/dynamodb-marshall/ir"
)

// Logf writes a formatted diagnostic line to stderr, expanding node and
// generic-value arguments into indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			d, err := ir.ToJSON(x)
			if err != nil {
				args[i] = fmt.Sprintf("[raw node] %v", x)
				continue
			}
			args[i] = string(d)
		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
