package cpf

import (
	"testing"
	"unicode/utf8"
)

// FuzzValidate checks that no input panics and that the operations agree
// with each other.
func FuzzValidate(f *testing.F) {
	f.Add("")
	f.Add("11144477735")
	f.Add("111.444.777-35")
	f.Add("11111111111")
	f.Add("123.456.789-09")
	f.Add("'; DROP TABLE proponentes;--")
	f.Add(string([]byte{0xff, 0xfe, '1', '2'}))
	f.Add("1234567890123456789")

	f.Fuzz(func(t *testing.T, input string) {
		res := Validate(input)

		if res.Valid != IsValid(input) {
			t.Fatalf("Validate and IsValid disagree for %q", input)
		}
		if res.Valid && len(res.Reasons) != 0 {
			t.Fatalf("valid result carries reasons for %q", input)
		}
		if !res.Valid && len(res.Reasons) != 1 {
			t.Fatalf("invalid result must carry exactly one reason for %q", input)
		}

		for _, partial := range []bool{true, false} {
			out := Format(input, partial)
			if !utf8.ValidString(out) {
				t.Fatalf("Format produced invalid UTF-8 for %q", input)
			}
			if Clean(out) != significant(input) {
				t.Fatalf("Format changed digits for %q: %q", input, out)
			}
		}
	})
}
