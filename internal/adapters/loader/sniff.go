package loader

import "strings"

// candidateDelimiters in tie-break order.
var candidateDelimiters = []rune{',', ';', '\t', '|', ':'}

// SniffDelimiter picks the delimiter of a delimited file from its first
// line: the candidate that occurs most often outside double quotes. Ties go
// to the earlier candidate and a line with none of them yields a comma.
func SniffDelimiter(line string) rune {
	counts := make(map[rune]int, len(candidateDelimiters))
	inQuotes := false
	for _, r := range line {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes && strings.ContainsRune(",;\t|:", r) {
			counts[r]++
		}
	}

	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}
