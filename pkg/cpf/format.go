package cpf

// Format masks input with the XXX.XXX.XXX-XX pattern. Digits past the 11th
// are dropped.
//
// With partial set (the live-typing mode) separators appear as soon as the
// digit count reaches each group: "1234" -> "123.4". Without it, fewer than
// 9 digits are returned unmasked, 9 digits render as XXX.XXX.XXX and the
// hyphen segment is added from the 10th digit on.
func Format(input string, partial bool) string {
	d := significant(input)
	n := len(d)

	switch {
	case n == 0:
		return ""
	case partial && n <= 3:
		return d
	case partial && n <= 6:
		return d[:3] + "." + d[3:]
	case partial && n <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	case n < 9:
		return d
	case n == 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// FormatPartial is Format in live-typing mode.
func FormatPartial(input string) string {
	return Format(input, true)
}

// MaskStage is the position of a partially typed CPF in the mask; each
// added or removed digit moves between adjacent stages.
type MaskStage int

const (
	StageEmpty MaskStage = iota
	StageFirstGroup
	StageSecondGroup
	StageThirdGroup
	StageCheckDigit
	StageComplete
)

var stageNames = [...]string{
	StageEmpty:       "empty",
	StageFirstGroup:  "1-3",
	StageSecondGroup: "4-6",
	StageThirdGroup:  "7-9",
	StageCheckDigit:  "10",
	StageComplete:    "11+",
}

func (s MaskStage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// Stage reports which mask stage the digits of input fall in.
func Stage(input string) MaskStage {
	switch n := len(Clean(input)); {
	case n == 0:
		return StageEmpty
	case n <= 3:
		return StageFirstGroup
	case n <= 6:
		return StageSecondGroup
	case n <= 9:
		return StageThirdGroup
	case n == 10:
		return StageCheckDigit
	default:
		return StageComplete
	}
}
