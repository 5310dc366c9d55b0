//go:build property

package cpf

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCPFProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1114447)
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("generated CPFs are valid", prop.ForAll(
		func(seed uint64) bool {
			c := GenerateFrom(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
			return IsValid(c.String()) && IsValid(c.Formatted())
		},
		gen.UInt64(),
	))

	properties.Property("repeated-digit sequences are invalid", prop.ForAll(
		func(d int) bool {
			return !IsValid(strings.Repeat(string(rune('0'+d)), Length))
		},
		gen.IntRange(0, 9),
	))

	properties.Property("computed check digits validate their base", prop.ForAll(
		func(base []int) bool {
			var b strings.Builder
			for _, d := range base {
				b.WriteByte(byte('0' + d))
			}
			v1, v2, err := CheckDigits(b.String())
			if err != nil {
				return false
			}
			digits := b.String() + string(rune('0'+v1)) + string(rune('0'+v2))
			if repeated(digits) {
				return !IsValid(digits)
			}
			if _, ok := knownInvalid[digits]; ok {
				return !IsValid(digits)
			}
			return IsValid(digits)
		},
		gen.SliceOfN(9, gen.IntRange(0, 9)),
	))

	properties.Property("full format is idempotent", prop.ForAll(
		func(s string) bool {
			once := Format(s, false)
			return Format(once, false) == once
		},
		gen.AnyString(),
	))

	properties.Property("formatting keeps significant digits", prop.ForAll(
		func(s string, partial bool) bool {
			return Clean(Format(s, partial)) == significant(s)
		},
		gen.AnyString(),
		gen.Bool(),
	))

	properties.Property("numeric strings round-trip through the full mask", prop.ForAll(
		func(s string) bool {
			if len(s) != Length {
				return true
			}
			return Clean(Format(s, false)) == s
		},
		gen.NumString(),
	))

	properties.Property("validation ignores punctuation", prop.ForAll(
		func(seed uint64) bool {
			c := GenerateFrom(rand.New(rand.NewPCG(seed, 7)))
			return Validate(c.Formatted()).Valid == Validate(c.String()).Valid
		},
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
