// Package response synthesizes Bengali answer sentences. Three strategies in
// falling order of precision: fact templates, relevant-sentence quoting, and
// canned replies.
package response

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/valyala/bytebufferpool"

	"github.com/bengali-knowledge-assistant/internal/bengali"
	"github.com/bengali-knowledge-assistant/internal/facts"
	"github.com/bengali-knowledge-assistant/internal/knowledge"
	"github.com/bengali-knowledge-assistant/internal/question"
)

// factNeed describes the fact shape an intent requires: the fact type plus a
// substring its predicate must contain.
type factNeed struct {
	typ       facts.Type
	predicate string
}

var intentNeeds = map[string]factNeed{
	"birth_location": {facts.TypeLocation, "জন্মগ্রহণ"},
	"death_location": {facts.TypeLocation, "মৃত্যু"},
	"birth_time":     {facts.TypeTime, "জন্মগ্রহণ"},
	"death_time":     {facts.TypeTime, "মৃত্যু"},
	"father_name":    {facts.TypeRelationship, "বাবার নাম"},
	"mother_name":    {facts.TypeRelationship, "মায়ের নাম"},
	"daughter_name":  {facts.TypeRelationship, "মেয়ের নাম"},
	"son_name":       {facts.TypeRelationship, "ছেলের নাম"},
}

var greetingWords = []string{"হ্যালো", "নমস্কার", "সালাম", "হাই", "hello", "hi"}
var thanksWords = []string{"ধন্যবাদ", "থ্যাংক", "thanks", "thank you"}

const (
	greetingReply = "নমস্কার! আমি একটা স্মার্ট AI বট। আপনি আমাকে যেকোনো প্রশ্ন করতে পারেন অথবা নতুন কিছু শেখাতে পারেন।"
	thanksReply   = "আপনাকেও ধন্যবাদ! আমি সব সময় আপনাকে সাহায্য করার জন্য এখানে আছি।"
	noKnowledge   = "এটি একটি আকর্ষণীয় প্রশ্ন! দুঃখিত, আমার কাছে এই বিষয়ে এখনো পর্যাপ্ত তথ্য নেই। আপনি চাইলে আমাকে এই বিষয়ে কিছু শেখাতে পারেন। আমি যত বেশি শিখব, তত ভালো উত্তর দিতে পারব।"
)

var generalPool = []string{
	"আমি আপনার কথা বুঝতে পারছি। আমি প্রশ্নের মূল অর্থ বুঝে সংক্ষিপ্ত, সঠিক উত্তর দিতে চেষ্টা করি।",
	"আকর্ষণীয়! আপনি চাইলে আমাকে এই বিষয়ে আরও শেখাতে পারেন। আমি প্রসঙ্গ বুঝে নির্দিষ্ট উত্তর দিতে পারি।",
	"আমি প্রতিদিন নতুন কিছু শিখছি এবং আরও বুদ্ধিমান হচ্ছি। নতুন তথ্য শেখালে আমি তা মনে রাখব।",
	"আমি আপনাকে সাহায্য করতে চাই। আমাকে কিছু শেখালে আমি সংক্ষিপ্ত এবং নির্ভুল উত্তর দিতে পারব।",
}

// Generator renders answers. The random source behind the generic reply pool
// is injectable so tests can pin the pick.
type Generator struct {
	normalizer *bengali.Normalizer
	mu         sync.Mutex
	rng        *rand.Rand
}

// NewGenerator creates a generator. src may be nil, in which case an
// unseeded time-based source is used.
func NewGenerator(n *bengali.Normalizer, src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(rand.Int63())
	}
	return &Generator{normalizer: n, rng: rand.New(src)}
}

// Intelligent renders a templated sentence when the extracted facts contain
// the shape the question intent requires. The boolean is false when they do
// not; the caller falls back.
func (g *Generator) Intelligent(fs []facts.Fact, a question.Analysis) (string, bool) {
	need, ok := intentNeeds[a.Type]
	if !ok {
		return "", false
	}

	var fact *facts.Fact
	for i := range fs {
		if fs[i].Type == need.typ && strings.Contains(fs[i].Predicate, need.predicate) {
			fact = &fs[i]
			break
		}
	}
	if fact == nil {
		return "", false
	}

	subject := a.Subject
	if subject == "" {
		subject = fact.Subject
	}

	switch a.Type {
	case "birth_location", "birth_time":
		return fmt.Sprintf("%s %s জন্মগ্রহণ করেছেন।", subject, fact.Object), true
	case "death_location", "death_time":
		return fmt.Sprintf("%s %s মৃত্যুবরণ করেছেন।", subject, fact.Object), true
	case "father_name":
		return fmt.Sprintf("%sএর বাবার নাম %s।", subject, fact.Object), true
	case "mother_name":
		return fmt.Sprintf("%sএর মায়ের নাম %s।", subject, fact.Object), true
	case "daughter_name":
		return fmt.Sprintf("%sএর মেয়ের নাম %s।", subject, fact.Object), true
	case "son_name":
		return fmt.Sprintf("%sএর ছেলের নাম %s।", subject, fact.Object), true
	}
	return "", false
}

// Smart quotes the most relevant sentences of the top-ranked item when no
// fact template applied. Always returns a non-empty answer.
func (g *Generator) Smart(q string, items []knowledge.Item) string {
	norm := g.normalizer.Normalize(q)
	words := strings.Fields(norm)

	primary := items[0]
	content := relevantSentences(g.normalizer, primary.Content, words)

	switch questionClass(words) {
	case "what":
		return fmt.Sprintf("\"%s\" সম্পর্কে আমি জানি যে: %s", primary.Title, clip(content, 400))
	case "how":
		return fmt.Sprintf("\"%s\" সম্পর্কিত প্রক্রিয়া হলো: %s", primary.Title, clip(content, 400))
	case "why":
		return fmt.Sprintf("\"%s\" এর কারণ: %s", primary.Title, clip(content, 400))
	case "where":
		return fmt.Sprintf("\"%s\" সম্পর্কে স্থান/অবস্থান: %s", primary.Title, clip(content, 400))
	case "when":
		return fmt.Sprintf("\"%s\" এর সময়কাল: %s", primary.Title, clip(content, 400))
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString("আপনার প্রশ্নের উত্তরে আমি বলতে পারি:\n\n")
	buf.WriteString(fmt.Sprintf("\"%s\" থেকে: %s", primary.Title, clip(content, 300)))
	if len(items) > 1 {
		buf.WriteString(fmt.Sprintf("\n\nঅতিরিক্ত তথ্য \"%s\" থেকে: %s...",
			items[1].Title, truncate(items[1].Content, 200)))
	}
	return buf.String()
}

// General handles questions that matched no stored knowledge.
func (g *Generator) General(q string) string {
	lower := strings.ToLower(q)

	for _, w := range greetingWords {
		if strings.Contains(lower, w) {
			return greetingReply
		}
	}
	for _, w := range thanksWords {
		if strings.Contains(lower, w) {
			return thanksReply
		}
	}
	if strings.Contains(q, "?") || strings.Contains(q, "কী") ||
		strings.Contains(q, "কিভাবে") || strings.Contains(q, "কেন") {
		return noKnowledge
	}

	g.mu.Lock()
	pick := g.rng.Intn(len(generalPool))
	g.mu.Unlock()
	return generalPool[pick]
}

// questionClass picks the coarse question kind by question-word membership.
// Checked in what/how/why/where/when order; the first hit wins. Tokens keep
// trailing punctuation, so a question ending "কি?" does not classify and
// takes the generic wrapper instead.
func questionClass(words []string) string {
	classes := []struct {
		name    string
		markers []string
	}{
		{"what", []string{"কি", "কী", "কোন"}},
		{"how", []string{"কিভাবে", "কেমনে"}},
		{"why", []string{"কেন", "কিসের"}},
		{"where", []string{"কোথায়", "কোন"}},
		{"when", []string{"কখন", "কত"}},
	}
	for _, c := range classes {
		for _, w := range words {
			for _, m := range c.markers {
				if w == m {
					return c.name
				}
			}
		}
	}
	return "general"
}

// relevantSentences keeps the sentences sharing a question word longer than
// two runes, falling back to the whole content when none do.
func relevantSentences(n *bengali.Normalizer, content string, words []string) string {
	var kept []string
	for _, sentence := range strings.FieldsFunc(content, func(r rune) bool {
		return r == '।' || r == '!' || r == '?'
	}) {
		sn := n.Normalize(sentence)
		for _, w := range words {
			if len([]rune(w)) > 2 && strings.Contains(sn, w) {
				kept = append(kept, strings.TrimSpace(sentence))
				break
			}
		}
	}
	if len(kept) == 0 {
		return content
	}
	return strings.Join(kept, "। ") + "।"
}

// clip truncates to limit runes, marking the cut with an ellipsis.
func clip(s string, limit int) string {
	if len([]rune(s)) <= limit {
		return s
	}
	return truncate(s, limit) + "..."
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
