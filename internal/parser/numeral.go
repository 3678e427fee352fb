package parser

import (
	"strconv"
	"strings"
)

var romanValues = map[byte]int{
	'I': 1,
	'V': 5,
	'X': 10,
	'L': 50,
	'C': 100,
	'D': 500,
	'M': 1000,
}

// RomanToInt converts a Roman numeral using subtractive notation.
// Case is ignored. Unrecognised symbols contribute nothing; the boolean is
// false when the result is zero, meaning the conversion failed.
func RomanToInt(s string) (int, bool) {
	upper := strings.ToUpper(s)
	result := 0
	for i := 0; i < len(upper); i++ {
		current := romanValues[upper[i]]
		if current == 0 {
			continue
		}
		if i+1 < len(upper) {
			next := romanValues[upper[i+1]]
			if next != 0 && current < next {
				result += next - current
				i++
				continue
			}
		}
		result += current
	}
	return result, result > 0
}

// parseNumeral converts a Roman or Arabic chapter numeral, falling back to
// position when conversion fails or yields zero.
func parseNumeral(s string, position int) int {
	if s == "" {
		return position
	}
	if s[0] >= '0' && s[0] <= '9' {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return position
		}
		return n
	}
	n, ok := RomanToInt(s)
	if !ok {
		return position
	}
	return n
}
