package cpf

import "strings"

// Length is the number of digits in a complete CPF.
const Length = 11

// baseLength is the number of digits the check digits are computed from.
const baseLength = 9

// Clean strips every byte that is not an ASCII decimal digit, preserving
// order. It enforces no length.
func Clean(input string) string {
	if input == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		if c := input[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// significant returns the cleaned digits truncated to Length.
func significant(input string) string {
	d := Clean(input)
	if len(d) > Length {
		return d[:Length]
	}
	return d
}
