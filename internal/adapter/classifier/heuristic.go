package classifier

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
)

// HeuristicKind is the entity kind reported for capitalized phrases.
const HeuristicKind = "UNKNOWN"

// CategoryRule maps keywords to a category path such as "/Travel/Tourist Destinations".
type CategoryRule struct {
	Category string
	Keywords []string
}

// DefaultCategoryRules is a small offline taxonomy.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{Category: "/Travel/Tourist Destinations", Keywords: []string{"travel", "trip", "island", "beach", "hiking", "holiday", "vacation", "tourist", "levada"}},
		{Category: "/Travel/Hotels & Accommodations", Keywords: []string{"hotel", "hostel", "resort", "accommodation"}},
		{Category: "/Food & Drink", Keywords: []string{"food", "recipe", "restaurant", "wine", "coffee", "cooking", "dinner", "pastry"}},
		{Category: "/Sports", Keywords: []string{"football", "soccer", "tennis", "match", "league", "marathon"}},
		{Category: "/Arts & Entertainment", Keywords: []string{"music", "film", "movie", "concert", "painting", "museum"}},
		{Category: "/Computers & Electronics", Keywords: []string{"software", "computer", "laptop", "programming", "smartphone"}},
		{Category: "/Business & Industrial", Keywords: []string{"business", "startup", "company", "market", "investment"}},
	}
}

var sentenceStarters = map[string]bool{
	"a": true, "an": true, "and": true, "but": true, "i": true, "in": true, "it": true,
	"my": true, "on": true, "our": true, "the": true, "this": true, "we": true, "you": true,
	"after": true, "he": true, "next": true, "she": true, "then": true, "there": true, "they": true,
}

// HeuristicClassifier needs no network access. Categories come from keyword
// rules and entities from runs of capitalized words, scored by frequency.
type HeuristicClassifier struct {
	rules       []CategoryRule
	maxEntities int
}

func NewHeuristicClassifier(rules []CategoryRule, maxEntities int) *HeuristicClassifier {
	if len(rules) == 0 {
		rules = DefaultCategoryRules()
	}
	return &HeuristicClassifier{rules: rules, maxEntities: maxEntities}
}

func (c *HeuristicClassifier) ClassifyAndExtract(ctx context.Context, html string) (entity.Classification, error) {
	var out entity.Classification
	text, err := plainText(html)
	if err != nil {
		return out, err
	}
	if text == "" {
		return out, nil
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[w] = true
		seen[strings.TrimSuffix(w, "s")] = true
	}
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if seen[kw] {
				out.Categories = append(out.Categories, rule.Category)
				break
			}
		}
	}

	out.Entities = c.entities(text)
	return out, nil
}

// plainText flattens the HTML into block-separated text.
func plainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()

	var parts []string
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, blockquote").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		return strings.TrimSpace(doc.Text()), nil
	}
	return strings.Join(parts, ". "), nil
}

func (c *HeuristicClassifier) entities(text string) []entity.Entity {
	counts := map[string]int{}
	var order []string
	total := 0

	flush := func(run []string) {
		if len(run) == 0 {
			return
		}
		name := strings.Join(run, " ")
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
		total++
	}

	for _, sentence := range splitSentences(text) {
		var run []string
		for i, raw := range strings.Fields(sentence) {
			word := strings.TrimFunc(raw, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
			capitalized := word != "" && unicode.IsUpper([]rune(word)[0])
			if capitalized && i == 0 && sentenceStarters[strings.ToLower(word)] {
				capitalized = false
			}
			if !capitalized {
				flush(run)
				run = nil
				continue
			}
			run = append(run, word)
			if raw != word && strings.ContainsAny(raw[len(raw)-1:], ",;:") {
				flush(run)
				run = nil
			}
		}
		flush(run)
	}

	out := make([]entity.Entity, 0, len(order))
	for _, name := range order {
		out = append(out, entity.Entity{
			Name:     name,
			Salience: float64(counts[name]) / float64(total),
			Kind:     HeuristicKind,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Salience > out[j].Salience })
	if c.maxEntities > 0 && len(out) > c.maxEntities {
		out = out[:c.maxEntities]
	}
	return out
}

func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
}
