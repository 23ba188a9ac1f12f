// Package facts extracts structured (subject, predicate, object) tuples from
// Bengali prose via an ordered battery of regex rules. Facts are ephemeral:
// they are recomputed from item content on every query and never persisted.
package facts

import (
	"fmt"
	"regexp"
	"strings"
)

// Type classifies what a fact asserts.
type Type string

const (
	TypeLocation     Type = "location"
	TypeTime         Type = "time"
	TypeName         Type = "name"
	TypeRelationship Type = "relationship"
	TypeGeneral      Type = "general"
)

// Fact is one extracted assertion with a fixed per-rule confidence in [0,1].
type Fact struct {
	Type       Type
	Subject    string
	Predicate  string
	Object     string
	Confidence float64
}

const defaultSubject = "তিনি"

// Sentence terminators: danda, exclamation, question mark, newline.
var sentenceSplit = regexp.MustCompile(`[।!?\n]`)

var (
	// Strict birth location: subject + region + district + village + birth
	// keyword. Captured groups are recomposed into one location string.
	birthLocationRe = regexp.MustCompile(`(.+?)\s+(পশ্চিমবঙ্গের?|বাংলাদেশের?|ভারতের?|ঢাকার?)\s*(.+?)\s*(জেলার?|বিভাগের?|এর?)\s*(.+?)\s*(গ্রামে?|শহরে?|এলাকায়?)\s*(জন্মগ্রহণ|জন্ম)`)

	// Loose birth location, tried only when the strict pattern missed. The
	// place is the last word before the locality keyword.
	looseBirthRe = regexp.MustCompile(`(জন্মগ্রহণ|জন্ম).*?(\S+)\s+(গ্রামে?|শহরে?|জেলায়?)`)

	relationRe = regexp.MustCompile(`(তার|তাঁর|তিনি|এর|তাদের)\s+(বাবার|মাতার|মায়ের|মেয়ের|ছেলের|পিতার|কন্যার|পুত্রের)\s+নাম\s+(.+)`)

	// Years match ASCII and Bengali digits; content almost always uses the
	// latter.
	birthYearRe = regexp.MustCompile(`([0-9০-৯]{4})\s*সালে?\s*(জন্ম|জন্মগ্রহণ)`)
	deathYearRe = regexp.MustCompile(`([0-9০-৯]{4})\s*সালে?\s*(মৃত্যু|মারা)`)
)

// relationAliases collapses formal kinship genitives onto the forms the
// question intents look for, so "পিতার নাম" answers a "বাবার নাম" question.
var relationAliases = map[string]string{
	"পিতার":   "বাবার",
	"মাতার":   "মায়ের",
	"কন্যার":  "মেয়ের",
	"পুত্রের": "ছেলের",
}

// rule pairs a category name with its extraction attempt. Rules run in order
// against every sentence and each yields at most one fact per sentence.
type rule struct {
	name  string
	apply func(sentence string) (Fact, bool)
}

var rules = []rule{
	{"birth_location", extractBirthLocation},
	{"relationship_name", extractRelationship},
	{"birth_year", extractBirthYear},
	{"death_year", extractDeathYear},
}

// Extract splits content into sentences and collects every fact the rule
// battery produces. Deterministic for fixed input; an empty result is not an
// error.
func Extract(content string) []Fact {
	var out []Fact
	for _, sentence := range sentenceSplit.Split(content, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		for _, r := range rules {
			if f, ok := r.apply(sentence); ok {
				out = append(out, f)
			}
		}
	}
	return out
}

// extractBirthLocation tries the strict pattern first and falls back to the
// loose one with lower confidence.
func extractBirthLocation(sentence string) (Fact, bool) {
	if m := birthLocationRe.FindStringSubmatch(sentence); m != nil {
		region := strings.TrimSuffix(m[2], "র")
		location := strings.TrimSpace(fmt.Sprintf("%s %s জেলার %s গ্রামে", region, m[3], m[5]))

		subject := strings.TrimSpace(m[1])
		if subject == "" {
			subject = defaultSubject
		}
		return Fact{
			Type:       TypeLocation,
			Subject:    subject,
			Predicate:  "জন্মগ্রহণ করেছেন",
			Object:     location,
			Confidence: 0.9,
		}, true
	}

	if m := looseBirthRe.FindStringSubmatch(sentence); m != nil {
		return Fact{
			Type:       TypeLocation,
			Subject:    defaultSubject,
			Predicate:  "জন্মগ্রহণ করেছেন",
			Object:     strings.TrimSpace(m[2]) + " " + m[3],
			Confidence: 0.7,
		}, true
	}

	return Fact{}, false
}

func extractRelationship(sentence string) (Fact, bool) {
	m := relationRe.FindStringSubmatch(sentence)
	if m == nil {
		return Fact{}, false
	}

	relation := m[2]
	if alias, ok := relationAliases[relation]; ok {
		relation = alias
	}

	return Fact{
		Type:       TypeRelationship,
		Subject:    m[1],
		Predicate:  relation + " নাম",
		Object:     strings.TrimSpace(m[3]),
		Confidence: 0.9,
	}, true
}

func extractBirthYear(sentence string) (Fact, bool) {
	m := birthYearRe.FindStringSubmatch(sentence)
	if m == nil {
		return Fact{}, false
	}
	return Fact{
		Type:       TypeTime,
		Subject:    defaultSubject,
		Predicate:  "জন্মগ্রহণ করেছেন",
		Object:     m[1] + " সালে",
		Confidence: 0.9,
	}, true
}

func extractDeathYear(sentence string) (Fact, bool) {
	m := deathYearRe.FindStringSubmatch(sentence)
	if m == nil {
		return Fact{}, false
	}
	return Fact{
		Type:       TypeTime,
		Subject:    defaultSubject,
		Predicate:  "মৃত্যুবরণ করেছেন",
		Object:     m[1] + " সালে",
		Confidence: 0.9,
	}, true
}
