package classify

import "strings"

// UnspecifiedLanguage is the tag recorded when no language group matches.
const UnspecifiedLanguage = "Not specified"

type LanguageGroup struct {
	Tag   string
	Terms []string
}

// Classifier decides whether a posting title is worth keeping and which
// spoken languages a text mentions. Matching is case-insensitive substring
// matching only; no tokenization, no stemming.
type Classifier struct {
	exclude   []string
	junior    []string
	senior    []string
	languages []LanguageGroup
}

func New(exclude, junior, senior []string, languages []LanguageGroup) *Classifier {
	return &Classifier{
		exclude:   lowerAll(exclude),
		junior:    lowerAll(junior),
		senior:    lowerAll(senior),
		languages: lowerGroups(languages),
	}
}

// IsRelevant reports whether a title passes the relevance filter.
// Exclusion terms always win. Otherwise a title is kept if it looks
// junior-level, or if it mentions no senior-tier term.
func (c *Classifier) IsRelevant(title string) bool {
	t := strings.ToLower(title)
	if containsAny(t, c.exclude) {
		return false
	}
	if containsAny(t, c.junior) {
		return true
	}
	return !containsAny(t, c.senior)
}

// Languages returns the tags of every language group mentioned in text,
// or the UnspecifiedLanguage sentinel if none matched.
func (c *Classifier) Languages(text string) []string {
	t := strings.ToLower(text)
	var out []string
	for _, g := range c.languages {
		if containsAny(t, g.Terms) {
			out = append(out, g.Tag)
		}
	}
	if len(out) == 0 {
		return []string{UnspecifiedLanguage}
	}
	return out
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if n == "" {
			continue
		}
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func lowerAll(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		x = strings.ToLower(strings.TrimSpace(x))
		if x == "" {
			continue
		}
		out = append(out, x)
	}
	return out
}

func lowerGroups(groups []LanguageGroup) []LanguageGroup {
	out := make([]LanguageGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, LanguageGroup{Tag: g.Tag, Terms: lowerAll(g.Terms)})
	}
	return out
}
