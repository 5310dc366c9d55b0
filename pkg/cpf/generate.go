package cpf

import "math/rand/v2"

// Generate returns a random valid CPF. Intended for fixtures only.
func Generate() CPF {
	return GenerateFrom(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// GenerateFrom returns a random valid CPF drawn from r. Bases that would
// yield a repeated or blocklisted number are redrawn.
func GenerateFrom(r *rand.Rand) CPF {
	var base [baseLength]byte
	for {
		for i := range base {
			base[i] = byte('0' + r.IntN(10))
		}
		v1, v2, _ := CheckDigits(string(base[:]))
		digits := string(base[:]) + string(rune('0'+v1)) + string(rune('0'+v2))
		if check(digits) == "" {
			return CPF{digits: digits}
		}
	}
}
