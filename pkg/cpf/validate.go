package cpf

import (
	"errors"
	"fmt"
)

// Reason identifies why a CPF failed validation.
type Reason string

const (
	ReasonEmpty            Reason = "empty"
	ReasonWrongLength      Reason = "wrong_length"
	ReasonRepeatedDigits   Reason = "repeated_digits"
	ReasonKnownInvalid     Reason = "known_invalid"
	ReasonFirstCheckDigit  Reason = "first_check_digit"
	ReasonSecondCheckDigit Reason = "second_check_digit"
	ReasonInternal         Reason = "internal"
)

var reasonMessages = map[Reason]string{
	ReasonEmpty:            "CPF not provided",
	ReasonWrongLength:      "CPF must have 11 digits",
	ReasonRepeatedDigits:   "CPF is a repeated-digit sequence",
	ReasonKnownInvalid:     "CPF is a known invalid sequence",
	ReasonFirstCheckDigit:  "first check digit mismatch",
	ReasonSecondCheckDigit: "second check digit mismatch",
	ReasonInternal:         "CPF could not be validated",
}

// Message returns a human-readable description of r.
func (r Reason) Message() string {
	if m, ok := reasonMessages[r]; ok {
		return m
	}
	return string(r)
}

// knownInvalid holds non-repeating sequences rejected regardless of checksum.
var knownInvalid = map[string]struct{}{
	"12345678909": {},
}

// ErrInvalidBase is returned by CheckDigits for a base that is not 9 digits.
var ErrInvalidBase = errors.New("cpf: base must be exactly 9 digits")

// Result is the structured outcome of Validate.
type Result struct {
	Digits    string
	Formatted string
	Valid     bool
	Reasons   []Reason
}

// Messages renders Reasons for display. The length message carries the
// number of digits that were found.
func (r Result) Messages() []string {
	if len(r.Reasons) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Reasons))
	for _, reason := range r.Reasons {
		if reason == ReasonWrongLength {
			out = append(out, fmt.Sprintf("%s (found %d)", reason.Message(), len(r.Digits)))
			continue
		}
		out = append(out, reason.Message())
	}
	return out
}

// IsValid reports whether input holds a valid CPF once non-digits are
// stripped.
func IsValid(input string) bool {
	return check(Clean(input)) == ""
}

// Validate checks input and explains the first failing rule.
func Validate(input string) Result {
	digits := Clean(input)
	res := Result{
		Digits:    digits,
		Formatted: Format(digits, false),
	}
	if reason := check(digits); reason != "" {
		res.Reasons = []Reason{reason}
		return res
	}
	res.Valid = true
	return res
}

// check returns the first failing rule for already cleaned digits, or ""
// when they form a valid CPF. A panic is reported as ReasonInternal.
func check(digits string) (reason Reason) {
	defer func() {
		if recover() != nil {
			reason = ReasonInternal
		}
	}()

	switch {
	case digits == "":
		return ReasonEmpty
	case len(digits) != Length:
		return ReasonWrongLength
	case repeated(digits):
		return ReasonRepeatedDigits
	}
	if _, ok := knownInvalid[digits]; ok {
		return ReasonKnownInvalid
	}

	if int(digits[9]-'0') != checkDigit(digits[:9]) {
		return ReasonFirstCheckDigit
	}
	if int(digits[10]-'0') != checkDigit(digits[:10]) {
		return ReasonSecondCheckDigit
	}
	return ""
}

// CheckDigits computes both check digits of a 9-digit base.
func CheckDigits(base string) (v1, v2 int, err error) {
	if len(base) != baseLength || Clean(base) != base {
		return 0, 0, ErrInvalidBase
	}
	v1 = checkDigit(base)
	v2 = checkDigit(base + string(rune('0'+v1)))
	return v1, v2, nil
}

// checkDigit computes the check digit following prefix. Weights descend
// from len(prefix)+1 to 2.
func checkDigit(prefix string) int {
	weight := len(prefix) + 1
	sum := 0
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * (weight - i)
	}
	if rem := sum % 11; rem >= 2 {
		return 11 - rem
	}
	return 0
}

func repeated(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
