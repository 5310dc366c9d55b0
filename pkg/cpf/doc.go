// Package cpf validates and formats Brazilian individual taxpayer numbers
// (Cadastro de Pessoas Físicas).
//
// A CPF is 11 decimal digits: a 9-digit base followed by two check digits
// computed with a weighted sum modulo 11. Everything in this package is a
// pure function of its input. Nothing here performs I/O or keeps state.
//
// Validation policy:
//   - Strict length: only exactly 11 digits can be valid. Shorter input is
//     rejected, not passed through as "still typing".
//   - Repeated-digit sequences (00000000000 … 99999999999) are invalid even
//     though they satisfy the checksum.
//   - 12345678909 is blocklisted as a well-known placeholder.
//   - Fail closed: an unexpected internal failure reports invalid.
//
// Formatting never validates. It masks whatever digits are present:
//
//	cpf.Format("1234567", true)      // "123.456.7"
//	cpf.Format("11144477735", false) // "111.444.777-35"
package cpf
