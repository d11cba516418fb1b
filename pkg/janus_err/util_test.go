// pkg/janus_err/util_test.go

package janus_err

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSummary(t *testing.T) {
	tests := []struct {
		name          string
		output        string
		maxCandidates int
		want          string
	}{
		{
			name:          "empty output",
			output:        "",
			maxCandidates: 2,
			want:          "No output provided.",
		},
		{
			name:          "picks error lines",
			output:        "pulling image\nError: manifest not found\ndone",
			maxCandidates: 2,
			want:          "Error: manifest not found",
		},
		{
			name:          "joins multiple candidates",
			output:        "step one failed\nconnection timeout\nok",
			maxCandidates: 2,
			want:          "step one failed - connection timeout",
		},
		{
			name:          "truncates candidates",
			output:        "a failed\nb failed\nc failed",
			maxCandidates: 2,
			want:          "a failed - b failed",
		},
		{
			name:          "falls back to first non-empty line",
			output:        "\n\nall good here\n",
			maxCandidates: 2,
			want:          "all good here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSummary(tt.output, tt.maxCandidates))
		})
	}
}

func TestExpectedErrors(t *testing.T) {
	assert.Nil(t, NewExpectedError(nil))

	base := errors.New("dns record missing")
	wrapped := NewExpectedError(base)
	assert.True(t, IsExpectedUserError(wrapped))
	assert.Equal(t, base.Error(), wrapped.Error())
	assert.ErrorIs(t, wrapped, base)

	// A further wrap must still be detected.
	outer := fmt.Errorf("deploy: %w", wrapped)
	assert.True(t, IsExpectedUserError(outer))

	assert.False(t, IsExpectedUserError(errors.New("plain system error")))
}
