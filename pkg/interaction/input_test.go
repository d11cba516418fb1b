// pkg/interaction/input_test.go

package interaction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withInput(t *testing.T, input string) {
	t.Helper()
	old := Reader
	Reader = strings.NewReader(input)
	t.Cleanup(func() { Reader = old })
}

func TestPromptInputDefault(t *testing.T) {
	withInput(t, "\n")
	assert.Equal(t, "fallback@example.com", PromptInput("Email", "fallback@example.com"))
}

func TestPromptInputValue(t *testing.T) {
	withInput(t, "ops@example.com\n")
	assert.Equal(t, "ops@example.com", PromptInput("Email", "fallback@example.com"))
}

func TestNormalizeYesNoInput(t *testing.T) {
	for _, in := range []string{"y", "Y", "yes", " YES \n"} {
		answer, ok := NormalizeYesNoInput(in)
		assert.True(t, ok, in)
		assert.True(t, answer, in)
	}
	for _, in := range []string{"n", "No", "N\n"} {
		answer, ok := NormalizeYesNoInput(in)
		assert.True(t, ok, in)
		assert.False(t, answer, in)
	}
	_, ok := NormalizeYesNoInput("maybe")
	assert.False(t, ok)
}

func TestPromptYesNoFallsBackToDefault(t *testing.T) {
	withInput(t, "gibberish\n")
	assert.True(t, PromptYesNo("Continue", true))

	withInput(t, "gibberish\n")
	assert.False(t, PromptYesNo("Continue", false))
}

func TestPromptToContinueConsumesLine(t *testing.T) {
	withInput(t, "\n")
	PromptToContinue("waiting for DNS record")
}
