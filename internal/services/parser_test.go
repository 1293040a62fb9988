package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"single token", "1", []string{"1"}},
		{"multiple tokens", "1*2*500", []string{"1", "2", "500"}},
		{"trailing delimiter", "1*2*", []string{"1", "2"}},
		{"duplicate delimiters", "1**2", []string{"1", "2"}},
		{"only delimiters", "***", nil},
		{"tokens with spaces", " 1 * 2 ", []string{"1", "2"}},
		{"date token", "1*1*Maize*500*15/08/2024", []string{"1", "1", "Maize", "500", "15/08/2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInput(tt.text))
		})
	}
}

func TestResolveStep(t *testing.T) {
	assert.Equal(t, 0, ResolveStep(""))
	assert.Equal(t, 1, ResolveStep("1"))
	assert.Equal(t, 3, ResolveStep("1*2*3"))
	assert.Equal(t, 2, ResolveStep("1**2*"))
}

func TestParseInputIsDeterministic(t *testing.T) {
	text := "1*1*Maize*500*15/08/2024"
	first := ParseInput(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ParseInput(text))
	}
}
