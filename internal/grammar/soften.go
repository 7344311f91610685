package grammar

import "strings"

// softening maps root-final consonants to their voiced forms before a
// vowel-initial suffix (ünsüz yumuşaması).
var softening = map[rune]rune{
	'p': 'b',
	'ç': 'c',
	't': 'd',
	'k': 'ğ',
}

// Soften returns the consonant-softened variant of root, or "" when the
// final rune does not soften. Only the last consonant is tried; roots that
// soften an earlier consonant under suffixation are not covered.
func Soften(root string) string {
	runes := []rune(root)
	if len(runes) == 0 {
		return ""
	}
	last := runes[len(runes)-1]
	soft, ok := softening[last]
	if !ok {
		return ""
	}
	runes[len(runes)-1] = soft
	return string(runes)
}

// ContainsVerbForm reports whether the sentence contains the full conjugated
// form, the bare root, or the softened root, case-insensitively. Turkish
// dotted/dotless i casing is handled by strings.ToLower well enough for
// substring matching of forms the model itself produced.
func ContainsVerbForm(sentence, root, full string) bool {
	s := strings.ToLower(sentence)
	if full != "" && strings.Contains(s, strings.ToLower(full)) {
		return true
	}
	if root != "" && strings.Contains(s, strings.ToLower(root)) {
		return true
	}
	if soft := Soften(root); soft != "" && strings.Contains(s, strings.ToLower(soft)) {
		return true
	}
	return false
}
