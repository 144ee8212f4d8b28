package commands

import (
	"strconv"
	"strings"
)

// ContextFromConfig is the --context value used when the flag is given
// without a number. The configured context_lines applies in that case.
const ContextFromConfig = -1

// NormalizeArgs rewrites a bare -c/--context into --context=-1 so the flag
// can be parsed as an integer. A following non-negative integer is kept as
// the flag value. Arguments after "--" are left alone.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}

		if arg != "-c" && arg != "--context" {
			out = append(out, arg)
			continue
		}

		if i+1 < len(args) && isCount(args[i+1]) {
			out = append(out, arg, args[i+1])
			i++
			continue
		}

		out = append(out, "--context="+strconv.Itoa(ContextFromConfig))
	}

	return out
}

func isCount(s string) bool {
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0
}
