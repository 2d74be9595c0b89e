package portfolio

import (
	"errors"
	"regexp"
	"strings"
)

// ErrFieldNotFound is the only failure a rule reports. It is never fatal: the
// extractor substitutes the rule's default.
var ErrFieldNotFound = errors.New("field not found")

// Rule fills one field of a Profile from the document text.
//
// Apply writes the field only when it matched and returns ErrFieldNotFound
// otherwise. Default writes the rule's canonical value.
type Rule interface {
	Field() string
	Apply(text string, p *Profile) error
	Default(p *Profile)
}

// LabelRule captures a single-line value that follows a field label, as in
// "Name: Jane Doe" or "Title\nSenior Engineer". Matching is case-insensitive,
// the label must start a word ("Username" does not match "Name") and the
// first occurrence of the label wins, even when its value is empty.
type LabelRule struct {
	field    string
	label    string
	fallback string
	set      func(p *Profile, value string)
	re       *regexp.Regexp
}

func NewLabelRule(field, label, fallback string, set func(p *Profile, value string)) *LabelRule {
	return &LabelRule{
		field:    field,
		label:    label,
		fallback: fallback,
		set:      set,
		re:       regexp.MustCompile(labelPattern(label)),
	}
}

// labelPattern matches the label at a word start, then either a colon and
// the rest of that line, or a bare newline and the whole next line. A value
// never spills over onto a later line.
func labelPattern(label string) string {
	prefix := `(?i)`
	if label != "" && isWordByte(label[0]) {
		prefix += `\b`
	}
	return prefix + regexp.QuoteMeta(label) + `[ \t]*(?::[ \t]*|\n[ \t]*)([^\n]*)`
}

func isWordByte(b byte) bool {
	return b == '_' || '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func (r *LabelRule) Field() string { return r.field }

// Match returns the trimmed value for the first occurrence of the label.
// An empty value counts as no match.
func (r *LabelRule) Match(text string) (string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}

func (r *LabelRule) Apply(text string, p *Profile) error {
	v, ok := r.Match(text)
	if !ok {
		return ErrFieldNotFound
	}
	r.set(p, v)
	return nil
}

func (r *LabelRule) Default(p *Profile) { r.set(p, r.fallback) }

// BlockRule captures the multi-line span that follows a heading and a
// sub-marker, up to a terminating marker. All three must appear in order.
type BlockRule struct {
	field    string
	fallback string
	set      func(p *Profile, value string)
	re       *regexp.Regexp
}

func NewBlockRule(field, heading, marker, terminator, fallback string, set func(p *Profile, value string)) *BlockRule {
	pattern := `(?is)` + regexp.QuoteMeta(heading) + `.*?` + regexp.QuoteMeta(marker) + `(.*?)` + regexp.QuoteMeta(terminator)
	return &BlockRule{
		field:    field,
		fallback: fallback,
		set:      set,
		re:       regexp.MustCompile(pattern),
	}
}

func (r *BlockRule) Field() string { return r.field }

func (r *BlockRule) Match(text string) (string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}

func (r *BlockRule) Apply(text string, p *Profile) error {
	v, ok := r.Match(text)
	if !ok {
		return ErrFieldNotFound
	}
	r.set(p, v)
	return nil
}

func (r *BlockRule) Default(p *Profile) { r.set(p, r.fallback) }

// CollectionRule fills a structured section that is not parsed from the
// document yet. It always yields the canonical values, whatever the input.
type CollectionRule struct {
	field string
	fill  func(p *Profile)
}

func NewCollectionRule(field string, fill func(p *Profile)) *CollectionRule {
	return &CollectionRule{field: field, fill: fill}
}

func (r *CollectionRule) Field() string { return r.field }

func (r *CollectionRule) Apply(_ string, p *Profile) error {
	r.fill(p)
	return nil
}

func (r *CollectionRule) Default(p *Profile) { r.fill(p) }

// DefaultRules returns the rule set used by Extract, one rule per field.
func DefaultRules() []Rule {
	return []Rule{
		NewLabelRule("hero.name", "Name", defaultName, func(p *Profile, v string) { p.Hero.Name = v }),
		NewLabelRule("hero.title", "Title", defaultTitle, func(p *Profile, v string) { p.Hero.Title = v }),
		NewLabelRule("hero.positioning", "Positioning Statement", defaultPositioning, func(p *Profile, v string) { p.Hero.Positioning = v }),
		NewCollectionRule("hero.tags", func(p *Profile) { p.Hero.Tags = canonicalTags() }),
		NewBlockRule("about.summary", "Professional Summary", "paragraph:", "\n\n3. Skills", defaultSummary, func(p *Profile, v string) { p.About.Summary = v }),
		NewCollectionRule("skills", func(p *Profile) { p.Skills = canonicalSkills() }),
		NewCollectionRule("projects", func(p *Profile) { p.Projects = canonicalProjects() }),
		NewCollectionRule("research", func(p *Profile) { p.Research = canonicalResearch() }),
		NewCollectionRule("education", func(p *Profile) { p.Education = canonicalEducation() }),
		NewCollectionRule("achievements", func(p *Profile) { p.Achievements = canonicalAchievements() }),
		NewCollectionRule("contact", func(p *Profile) { p.Contact = canonicalContact() }),
		NewCollectionRule("vision", func(p *Profile) { p.Vision = defaultVision }),
	}
}
