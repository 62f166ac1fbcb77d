package codegen

import "strings"

// indent prefixes every non-blank line of s with n spaces. Blank lines stay
// blank so generated files carry no trailing whitespace.
func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
