package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelRuleMatch(t *testing.T) {
	rule := NewLabelRule("hero.title", "Title", "default", func(p *Profile, v string) { p.Hero.Title = v })

	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{name: "colon", text: "Title: Engineer", want: "Engineer", wantOK: true},
		{name: "spaces around colon", text: "Title   :   Engineer  ", want: "Engineer", wantOK: true},
		{name: "newline separator", text: "Title\nEngineer", want: "Engineer", wantOK: true},
		{name: "label inside a line", text: "Job Title: Engineer", want: "Engineer", wantOK: true},
		{name: "regex characters in value", text: "Title: C++ (.*) dev", want: "C++ (.*) dev", wantOK: true},
		{name: "no separator", text: "Title Engineer", wantOK: false},
		{name: "empty value does not take the next label", text: "Title:\nName: X", wantOK: false},
		{name: "empty first occurrence wins", text: "Title:   \nTitle: B", wantOK: false},
		{name: "bare newline then blank line", text: "Title\n\nEngineer", wantOK: false},
		{name: "label inside a word", text: "Subtitle: Engineer", wantOK: false},
		{name: "absent", text: "Name: Jane", wantOK: false},
		{name: "label at end of text", text: "Title:", wantOK: false},
		{name: "empty text", text: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rule.Match(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLabelRuleQuotesLabel(t *testing.T) {
	rule := NewLabelRule("x", "C.V. (short)", "", func(p *Profile, v string) { p.Vision = v })

	_, ok := rule.Match("CxVx short: nope")
	assert.False(t, ok)

	got, ok := rule.Match("c.v. (short): yes")
	require.True(t, ok)
	assert.Equal(t, "yes", got)
}

func TestLabelRuleApplyAndDefault(t *testing.T) {
	rule := NewLabelRule("hero.name", "Name", "Fallback", func(p *Profile, v string) { p.Hero.Name = v })

	var p Profile
	err := rule.Apply("nothing here", &p)
	assert.ErrorIs(t, err, ErrFieldNotFound)
	assert.Empty(t, p.Hero.Name, "a failed Apply must not write")

	rule.Default(&p)
	assert.Equal(t, "Fallback", p.Hero.Name)

	require.NoError(t, rule.Apply("Name: Jane", &p))
	assert.Equal(t, "Jane", p.Hero.Name)
	assert.Equal(t, "hero.name", rule.Field())
}

func TestBlockRuleMatch(t *testing.T) {
	rule := NewBlockRule("about.summary", "Professional Summary", "paragraph:", "\n\n3. Skills", "default",
		func(p *Profile, v string) { p.About.Summary = v })

	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "single line",
			text:   "Professional Summary\nparagraph: I am a builder.\n\n3. Skills",
			want:   "I am a builder.",
			wantOK: true,
		},
		{
			name:   "multi line stops at first terminator",
			text:   "PROFESSIONAL SUMMARY\nOne paragraph:\nline one\nline two\n\n3. Skills\nGo\n\n3. Skills",
			want:   "line one\nline two",
			wantOK: true,
		},
		{
			name:   "text between heading and marker is skipped",
			text:   "Professional Summary\n(draft)\nparagraph: Hello\n\n3. Skills",
			want:   "Hello",
			wantOK: true,
		},
		{name: "missing heading", text: "paragraph: Hello\n\n3. Skills", wantOK: false},
		{name: "missing marker", text: "Professional Summary\nHello\n\n3. Skills", wantOK: false},
		{name: "missing terminator", text: "Professional Summary\nparagraph: Hello\n3. Skills", wantOK: false},
		{name: "empty block", text: "Professional Summary\nparagraph:   \n\n3. Skills", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rule.Match(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCollectionRuleIgnoresText(t *testing.T) {
	rule := NewCollectionRule("research", func(p *Profile) { p.Research = canonicalResearch() })

	var fromText, fromDefault Profile
	require.NoError(t, rule.Apply("Research: underwater basket weaving", &fromText))
	rule.Default(&fromDefault)

	assert.Equal(t, canonicalResearch(), fromText.Research)
	assert.Equal(t, fromDefault.Research, fromText.Research)
}

func TestDefaultRulesCoverEveryField(t *testing.T) {
	var p Profile
	for _, r := range DefaultRules() {
		r.Default(&p)
	}

	assert.Empty(t, p.Missing())
	assert.Equal(t, ExtractDefaults(), p)
}

func TestDefaultRulesHaveUniqueFields(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range DefaultRules() {
		assert.False(t, seen[r.Field()], "duplicate rule for %s", r.Field())
		seen[r.Field()] = true
	}
}
