// Package question classifies Bengali questions into intent categories and
// extracts the asked-about subject. Classification is a priority-ordered
// trigger-substring table with a heuristic cascade behind it; there is no
// language model.
package question

import (
	"regexp"
	"strings"

	"github.com/bengali-knowledge-assistant/internal/bengali"
)

// Analysis is the result of analyzing one question. Subject is empty when no
// name-like phrase precedes the interrogative.
type Analysis struct {
	Type    string
	Intent  string
	Subject string
}

// intentRule maps an intent category to the normalized substrings that
// trigger it. Order is the tie-break: specific categories (birth_location)
// must come before the generic ones (where) that share triggers.
type intentRule struct {
	typ      string
	triggers []string
}

var intentRules = []intentRule{
	{"birth_location", []string{"কোথায় জন্মগ্রহণ", "কোথায় জন্ম", "জন্মস্থান", "কোন গ্রামে জন্ম", "কোন জায়গায় জন্ম"}},
	{"death_location", []string{"কোথায় মৃত্যু", "কোথায় মারা", "মৃত্যুস্থান"}},
	{"birth_time", []string{"কখন জন্মগ্রহণ", "কখন জন্ম", "জন্ম সাল", "কত সালে জন্ম"}},
	{"death_time", []string{"কখন মৃত্যু", "কখন মারা", "মৃত্যু সাল", "কত সালে মৃত্যু"}},
	{"name", []string{"নাম কি", "নাম কী", "কি নাম", "কী নাম"}},
	{"father_name", []string{"বাবার নাম", "পিতার নাম"}},
	{"mother_name", []string{"মায়ের নাম", "মাতার নাম"}},
	{"daughter_name", []string{"মেয়ের নাম", "কন্যার নাম"}},
	{"son_name", []string{"ছেলের নাম", "পুত্রের নাম"}},
	{"where", []string{"কোথায়", "কোন জায়গায়", "কোন স্থানে", "কোন দেশে", "কোন এলাকায়", "কোন গ্রামে", "কোন শহরে"}},
	{"when", []string{"কখন", "কোন সময়", "কত সালে", "কোন বছর", "কোন তারিখে"}},
	{"what", []string{"কি", "কী", "কোন জিনিস"}},
	{"who", []string{"কে", "কার", "কোন ব্যক্তি"}},
	{"how", []string{"কিভাবে", "কেমনে", "কোন উপায়ে"}},
	{"why", []string{"কেন", "কিসের জন্য", "কোন কারণে"}},
}

// subjectRe captures the name-like run immediately before an interrogative.
var subjectRe = regexp.MustCompile(`([a-zA-Z\p{Bengali}][a-zA-Z\p{Bengali}\s]*?)\s+(কোথায়|কখন|কার|কী|কি)`)

// subjectNoise are words that make a captured "subject" meaningless: the
// question was about a relation, not a named person.
var subjectNoise = map[string]bool{
	"নাম": true, "বাবার": true, "পিতার": true, "মায়ের": true, "মাতার": true,
	"মেয়ের": true, "কন্যার": true, "ছেলের": true, "পুত্রের": true,
}

// Analyzer classifies questions. Safe for concurrent use.
type Analyzer struct {
	normalizer *bengali.Normalizer
}

// NewAnalyzer creates an analyzer sharing the given normalizer.
func NewAnalyzer(n *bengali.Normalizer) *Analyzer {
	return &Analyzer{normalizer: n}
}

// Analyze normalizes the question, extracts its subject, and resolves the
// intent category. Falls back through a heuristic cascade to "general"; it
// never fails.
func (a *Analyzer) Analyze(q string) Analysis {
	norm := a.normalizer.Normalize(q)
	subject := extractSubject(q)

	for _, rule := range intentRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(norm, trigger) {
				return Analysis{Type: rule.typ, Intent: trigger, Subject: subject}
			}
		}
	}

	return fallbackAnalysis(norm, subject)
}

// extractSubject pulls the leading name-like phrase of the raw question.
func extractSubject(q string) string {
	m := subjectRe.FindStringSubmatch(q)
	if m == nil {
		return ""
	}
	subject := strings.TrimSpace(m[1])

	for _, w := range strings.Fields(subject) {
		if !subjectNoise[w] {
			return subject
		}
	}
	return ""
}

// fallbackAnalysis handles questions whose trigger phrasing is not in the
// table by combining interrogatives with topic keywords.
func fallbackAnalysis(norm, subject string) Analysis {
	switch {
	case strings.Contains(norm, "কোথায়"):
		if strings.Contains(norm, "জন্ম") {
			return Analysis{Type: "birth_location", Intent: "জন্মস্থান", Subject: subject}
		}
		if strings.Contains(norm, "মৃত্যু") {
			return Analysis{Type: "death_location", Intent: "মৃত্যুস্থান", Subject: subject}
		}
		return Analysis{Type: "where", Intent: "স্থান", Subject: subject}

	case strings.Contains(norm, "কখন"):
		if strings.Contains(norm, "জন্ম") {
			return Analysis{Type: "birth_time", Intent: "জন্মকাল", Subject: subject}
		}
		if strings.Contains(norm, "মৃত্যু") {
			return Analysis{Type: "death_time", Intent: "মৃত্যুকাল", Subject: subject}
		}
		return Analysis{Type: "when", Intent: "সময়", Subject: subject}

	case strings.Contains(norm, "নাম"):
		if strings.Contains(norm, "বাবা") || strings.Contains(norm, "পিতা") {
			return Analysis{Type: "father_name", Intent: "বাবার নাম", Subject: subject}
		}
		if strings.Contains(norm, "মা") || strings.Contains(norm, "মাতা") {
			return Analysis{Type: "mother_name", Intent: "মায়ের নাম", Subject: subject}
		}
		if strings.Contains(norm, "মেয়ে") || strings.Contains(norm, "কন্যা") {
			return Analysis{Type: "daughter_name", Intent: "মেয়ের নাম", Subject: subject}
		}
		if strings.Contains(norm, "ছেলে") || strings.Contains(norm, "পুত্র") {
			return Analysis{Type: "son_name", Intent: "ছেলের নাম", Subject: subject}
		}
		return Analysis{Type: "name", Intent: "নাম", Subject: subject}
	}

	return Analysis{Type: "general", Intent: "সাধারণ", Subject: subject}
}
