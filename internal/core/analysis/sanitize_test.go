package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRemovesFence(t *testing.T) {
	assert.Equal(t, `["a"]`, Sanitize("```json\n[\"a\"]\n```"))
}

func TestSanitizeFenceWithoutLanguageTag(t *testing.T) {
	assert.Equal(t, `{"recipes":[]}`, Sanitize("```\n{\"recipes\":[]}\n```"))
}

func TestSanitizeLeavesCleanTextUnchanged(t *testing.T) {
	assert.Equal(t, `["eggs","milk"]`, Sanitize(`["eggs","milk"]`))
}

func TestSanitizeTrimsWhitespace(t *testing.T) {
	assert.Equal(t, `["eggs"]`, Sanitize("  \n[\"eggs\"]\n\t"))
}

func TestSanitizeFenceOnlyInput(t *testing.T) {
	assert.Equal(t, "", Sanitize("```"))
	assert.Equal(t, "", Sanitize("```json\n```"))
}

func TestSanitizeMultilineBody(t *testing.T) {
	raw := "```json\n{\n  \"recipes\": []\n}\n```"
	assert.Equal(t, "{\n  \"recipes\": []\n}", Sanitize(raw))
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n[\"a\"]\n```",
		"```\n```",
		`["eggs","milk"]`,
		"   plain text   ",
		"",
		"```",
	}
	for _, input := range inputs {
		once := Sanitize(input)
		assert.Equal(t, once, Sanitize(once), "input %q", input)
	}
}
