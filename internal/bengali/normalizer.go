// Package bengali provides text canonicalization and token extraction for
// Bengali prose. Matching elsewhere in the system is keyword- and regex-based,
// so recall depends on collapsing common spelling and inflection variants to a
// single canonical form first.
package bengali

import (
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
)

// synonymEntry maps a canonical word to the variants that should collapse
// into it. Entry order is significant: when a variant is listed under more
// than one canonical, the first entry wins.
type synonymEntry struct {
	canonical string
	variants  []string
}

// synonymTable covers Bengali interrogatives, classical verb forms, and
// kinship terms. Roughly 25 entries of fixed domain data.
var synonymTable = []synonymEntry{
	{"কি", []string{"কী", "কেমন", "কোন"}},
	{"কী", []string{"কি", "কেমন", "কোন"}},
	{"কে", []string{"কার", "কাকে", "কাহার"}},
	{"কেন", []string{"কিসের জন্য", "কোন কারণে"}},
	{"কিভাবে", []string{"কেমনে", "কিরূপে", "কোন উপায়ে"}},
	{"কোথায়", []string{"কোন জায়গায়", "কোন স্থানে"}},
	{"কখন", []string{"কোন সময়", "কত সময়"}},
	{"কত", []string{"কতটা", "কেমন"}},
	{"কোন", []string{"কোনটা", "কোনো"}},
	{"হয়", []string{"হওয়া", "হইয়া", "হল"}},
	{"করে", []string{"করা", "করিয়া", "করল"}},
	{"বলে", []string{"বলা", "বলিয়া", "বলল"}},
	{"দেয়", []string{"দেওয়া", "দিয়া", "দিল"}},
	{"নেয়", []string{"নেওয়া", "নিয়া", "নিল"}},
	{"আছে", []string{"আছিল", "থাকে", "রয়েছে"}},
	{"ছিল", []string{"ছিলো", "ছাইল", "আছিল"}},
	{"মৃত্যুবরণ", []string{"মারা যান", "মৃত্যু", "মরে যান", "ইন্তেকাল"}},
	{"জন্মগ্রহণ", []string{"জন্ম", "জন্মায়", "জন্মেছিলেন"}},
	{"গ্রাম", []string{"গ্রামে", "পল্লী", "পল্লীতে"}},
	{"নাম", []string{"নামধারী", "নামক", "নামের"}},
	{"বাবা", []string{"পিতা", "পিতার", "বাবার"}},
	{"মা", []string{"মাতা", "মায়ের", "মাতার"}},
	{"মেয়ে", []string{"কন্যা", "কন্যার", "মেয়ের"}},
	{"ছেলে", []string{"পুত্র", "পুত্রের", "ছেলের"}},
}

const (
	cacheSize = 1024
	// maxPasses bounds the fixed-point loop in Normalize. A replacement can
	// form a new multi-word variant out of adjacent canonicals, so one pass
	// is not always enough; chains are short in practice.
	maxPasses = 4
)

// Normalizer canonicalizes Bengali text via whole-word synonym substitution.
// Safe for concurrent use.
type Normalizer struct {
	words   map[string]string   // single-token variant -> canonical
	phrases map[string][]phrase // first token -> multi-token variants
	cache   *lru.Cache[string, string]
}

type phrase struct {
	tokens    []string
	canonical string
}

// NewNormalizer builds a normalizer from the fixed synonym table.
func NewNormalizer() *Normalizer {
	n := &Normalizer{
		words:   make(map[string]string),
		phrases: make(map[string][]phrase),
	}

	canonicals := make(map[string]bool, len(synonymTable))
	for _, e := range synonymTable {
		canonicals[e.canonical] = true
	}

	for _, e := range synonymTable {
		for _, v := range e.variants {
			parts := strings.Fields(v)
			if len(parts) > 1 {
				n.phrases[parts[0]] = append(n.phrases[parts[0]], phrase{
					tokens:    parts,
					canonical: e.canonical,
				})
				continue
			}
			// A variant that is itself a canonical key stays untouched;
			// otherwise the substitution would oscillate between mutually
			// listed keys and normalization would not be idempotent.
			if canonicals[v] {
				continue
			}
			if _, seen := n.words[v]; !seen {
				n.words[v] = e.canonical
			}
		}
	}

	// Longer phrases first so the longest variant wins at each position.
	for k := range n.phrases {
		ps := n.phrases[k]
		for i := 1; i < len(ps); i++ {
			for j := i; j > 0 && len(ps[j].tokens) > len(ps[j-1].tokens); j-- {
				ps[j], ps[j-1] = ps[j-1], ps[j]
			}
		}
	}

	n.cache, _ = lru.New[string, string](cacheSize)
	return n
}

// Normalize lower-cases and trims text, then replaces every whole-word (and
// whole-phrase) occurrence of a listed variant with its canonical key. The
// rewrite runs to a fixed point, so Normalize(Normalize(s)) == Normalize(s).
// Always returns a string, possibly unchanged.
func (n *Normalizer) Normalize(text string) string {
	trimmed := strings.TrimSpace(strings.ToLower(text))
	if trimmed == "" {
		return ""
	}
	if v, ok := n.cache.Get(trimmed); ok {
		return v
	}

	out := trimmed
	for i := 0; i < maxPasses; i++ {
		next := n.rewrite(out)
		if next == out {
			break
		}
		out = next
	}

	n.cache.Add(trimmed, out)
	return out
}

// segment is either one word token or the separator run between tokens.
type segment struct {
	text    string
	isToken bool
}

// rewrite performs a single left-to-right substitution pass.
func (n *Normalizer) rewrite(text string) string {
	segs := split(text)

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(segs); i++ {
		s := segs[i]
		if !s.isToken {
			b.WriteString(s.text)
			continue
		}

		if consumed, canonical := n.matchPhrase(segs, i); consumed > 0 {
			b.WriteString(canonical)
			i += consumed - 1
			continue
		}

		if c, ok := n.words[s.text]; ok {
			b.WriteString(c)
		} else {
			b.WriteString(s.text)
		}
	}

	return b.String()
}

// matchPhrase tries the multi-word variants anchored at segment index i.
// Returns the number of segments consumed (tokens plus inner separators)
// and the canonical replacement, or 0 when nothing matches. Tokens of a
// phrase must be separated by whitespace only.
func (n *Normalizer) matchPhrase(segs []segment, i int) (int, string) {
	candidates, ok := n.phrases[segs[i].text]
	if !ok {
		return 0, ""
	}

outer:
	for _, p := range candidates {
		j := i
		for t := 1; t < len(p.tokens); t++ {
			if j+2 >= len(segs) {
				continue outer
			}
			sep, tok := segs[j+1], segs[j+2]
			if sep.isToken || strings.TrimSpace(sep.text) != "" {
				continue outer
			}
			if tok.text != p.tokens[t] {
				continue outer
			}
			j += 2
		}
		return j - i + 1, p.canonical
	}
	return 0, ""
}

// isWordRune reports whether r belongs inside a word token. Combining marks
// must count: Bengali vowel signs (matras) and the nukta are Unicode marks,
// not letters, and splitting on them would shred every inflected word.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || r == '_'
}

// split cuts text into alternating token and separator segments. Tokens are
// runs of word runes; everything else (including the Bengali danda) separates.
func split(text string) []segment {
	var segs []segment
	var cur strings.Builder
	curToken := false

	flush := func() {
		if cur.Len() > 0 {
			segs = append(segs, segment{text: cur.String(), isToken: curToken})
			cur.Reset()
		}
	}

	for _, r := range text {
		isWord := isWordRune(r)
		if isWord != curToken {
			flush()
			curToken = isWord
		}
		cur.WriteRune(r)
	}
	flush()

	return segs
}
