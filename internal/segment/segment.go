package segment

import "strings"

// Normalize collapses every run of whitespace (spaces, tabs, line breaks
// left over from page extraction) into a single space and trims the ends.
// Whitespace-only input yields "".
func Normalize(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// Split cuts normalized text into sentences at each '.', '!' or '?' that
// is followed by whitespace. The separating whitespace is consumed. Pieces
// are trimmed and empty pieces dropped. Text without a terminator comes
// back as a single sentence; empty input yields no sentences.
//
// This is a punctuation heuristic: abbreviations ("Mr. Smith") and
// similar constructs split incorrectly. That is an accepted limitation,
// not something to be patched with guesses.
func Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sentences := make([]string, 0, 16)
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if i+1 >= len(text) || !isSpace(text[i+1]) {
			continue
		}
		piece := strings.TrimSpace(text[start : i+1])
		if piece != "" {
			sentences = append(sentences, piece)
		}
		j := i + 1
		for j < len(text) && isSpace(text[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(text) {
		piece := strings.TrimSpace(text[start:])
		if piece != "" {
			sentences = append(sentences, piece)
		}
	}
	return sentences
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
