package document

import "strings"

// InsertAt inserts insert into text at the zero-based cursor row and column,
// counted in runes. When selection is non-empty and sits directly before or
// after the cursor, it is replaced. The returned row and column point just
// past the inserted text.
func InsertAt(text string, row, col int, selection, insert string) (string, int, int) {
	runes := []rune(text)
	start := offsetOf(runes, row, col)
	end := start

	if selection != "" {
		selected := []rune(selection)
		switch {
		case hasRunesBefore(runes, start, selected):
			start -= len(selected)
		case hasRunesAfter(runes, end, selected):
			end += len(selected)
		}
	}

	result := string(runes[:start]) + insert + string(runes[end:])
	newRow, newCol := positionOf([]rune(result), start+len([]rune(insert)))
	return result, newRow, newCol
}

func offsetOf(runes []rune, row, col int) int {
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	offset := 0
	for current := 0; current < row; current++ {
		next := indexRune(runes[offset:], '\n')
		if next < 0 {
			return len(runes)
		}
		offset += next + 1
	}
	lineEnd := indexRune(runes[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(runes) - offset
	}
	if col > lineEnd {
		col = lineEnd
	}
	return offset + col
}

func positionOf(runes []rune, offset int) (int, int) {
	prefix := string(runes[:offset])
	row := strings.Count(prefix, "\n")
	lastBreak := strings.LastIndex(prefix, "\n")
	return row, len([]rune(prefix[lastBreak+1:]))
}

func indexRune(runes []rune, target rune) int {
	for i, r := range runes {
		if r == target {
			return i
		}
	}
	return -1
}

func hasRunesBefore(runes []rune, offset int, want []rune) bool {
	if offset < len(want) {
		return false
	}
	return string(runes[offset-len(want):offset]) == string(want)
}

func hasRunesAfter(runes []rune, offset int, want []rune) bool {
	if offset+len(want) > len(runes) {
		return false
	}
	return string(runes[offset:offset+len(want)]) == string(want)
}
