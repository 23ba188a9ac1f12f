package bengali

import (
	"strings"
	"unicode/utf8"
)

// stopWords are common Bengali function words excluded from keyword sets.
var stopWords = map[string]bool{
	"এবং": true, "বা": true, "কিন্তু": true, "তবে": true, "যদি": true,
	"তাহলে": true, "এই": true, "সেই": true, "যে": true, "যা": true,
	"যার": true, "তার": true, "এর": true, "সে": true, "তা": true,
	"এটা": true, "ওটা": true, "একটি": true, "একটা": true, "কোনো": true,
	"কোন": true,
}

// sentencePunct is the punctuation stripped before keyword tokenization.
const sentencePunct = "।,;:!?-()"

const maxTags = 5

// ExtractKeywords lower-cases content, strips Bengali sentence punctuation,
// and returns the deduplicated tokens longer than two runes that are not
// stop words. Order follows first occurrence.
func ExtractKeywords(content string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(sentencePunct, r) {
			return ' '
		}
		return r
	}, strings.ToLower(content))

	var keywords []string
	seen := make(map[string]bool)
	for _, w := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(w) <= 2 || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
	}
	return keywords
}

// ExtractTags returns up to five deduplicated word tokens of at least three
// runes, in extraction order. Tags are a short display-oriented subset of the
// content vocabulary, distinct from the full keyword set.
func ExtractTags(content string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, seg := range split(strings.ToLower(content)) {
		if !seg.isToken || utf8.RuneCountInString(seg.text) < 3 {
			continue
		}
		if seen[seg.text] {
			continue
		}
		seen[seg.text] = true
		tags = append(tags, seg.text)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}
