package cpf

import (
	dErrors "credito/pkg/domain-errors"
)

// CPF is a validated taxpayer number. The zero value is not a valid CPF.
//
// Invariants:
//   - Exactly 11 ASCII digits
//   - Passes IsValid
type CPF struct {
	digits string
}

// Parse validates input and returns it as a CPF. Punctuation is accepted
// and discarded. The error carries CodeValidation and the reason message.
func Parse(input string) (CPF, error) {
	res := Validate(input)
	if !res.Valid {
		return CPF{}, dErrors.New(dErrors.CodeValidation, "invalid cpf: "+res.Messages()[0])
	}
	return CPF{digits: res.Digits}, nil
}

// MustParse is Parse that panics on invalid input. Use in tests.
func MustParse(input string) CPF {
	c, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the 11 bare digits.
func (c CPF) String() string {
	return c.digits
}

// Formatted returns the canonical XXX.XXX.XXX-XX form.
func (c CPF) Formatted() string {
	return Format(c.digits, false)
}

// Masked hides the first group and the check digits, for logs.
func (c CPF) Masked() string {
	return Mask(c.digits)
}

// IsZero reports whether c is the zero value.
func (c CPF) IsZero() bool {
	return c.digits == ""
}

// Mask redacts raw input for logging: ***.456.789-** for a complete CPF
// and a fixed placeholder for anything else.
func Mask(input string) string {
	d := Clean(input)
	if len(d) != Length {
		return "***"
	}
	return "***." + d[3:6] + "." + d[6:9] + "-**"
}
