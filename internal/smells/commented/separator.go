package commented

import "strings"

// IsSeparator reports whether a stripped comment line is decoration, i.e.
// at least threshold of its characters are '/', '*' or '-'. An empty line
// is never a separator.
func IsSeparator(line string, threshold float64) bool {
	total := 0
	decorative := 0
	for _, r := range line {
		total++
		if strings.ContainsRune(DefaultSeparatorChars, r) {
			decorative++
		}
	}
	if total == 0 {
		return false
	}
	return float64(decorative)/float64(total) >= threshold
}
