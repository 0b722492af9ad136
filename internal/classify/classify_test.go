package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClassifier() *Classifier {
	return New(
		[]string{"project manager", "senior", "lead", "principal", "director", "head of", "developer"},
		[]string{"junior", "entry", "graduate", "trainee", "praktikum", "werkstudent"},
		[]string{"senior", "lead", "principal"},
		[]LanguageGroup{
			{Tag: "English", Terms: []string{"english", "englisch"}},
			{Tag: "German", Terms: []string{"german", "deutsch"}},
		},
	)
}

func TestIsRelevant(t *testing.T) {
	c := testClassifier()

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"excluded term wins", "Senior Data Analyst", false},
		{"excluded term wins over junior term", "Junior Project Manager", false},
		{"excluded is case-insensitive", "HEAD OF Digital Health", false},
		{"junior term kept", "Junior Health IT Consultant", true},
		{"werkstudent kept", "Werkstudent eHealth (m/w/d)", true},
		{"ambiguous title kept by default", "Health Informatics Specialist", true},
		{"empty title is ambiguous", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsRelevant(tt.title))
		})
	}
}

func TestLanguages(t *testing.T) {
	c := testClassifier()

	got := c.Languages("Fluent in English and Deutsch required")
	require.Len(t, got, 2)
	assert.Contains(t, got, "English")
	assert.Contains(t, got, "German")

	assert.Equal(t, []string{UnspecifiedLanguage}, c.Languages("no language mentioned"))
	assert.Equal(t, []string{"German"}, c.Languages("Sehr gutes DEUTSCH erforderlich"))
}
