package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"international with plus", "+2348012345678", "08012345678"},
		{"international without plus", "2348012345678", "08012345678"},
		{"already national", "08012345678", "08012345678"},
		{"spaces stripped", " +234 801 234 5678 ", "08012345678"},
		{"short 234-prefixed number left alone", "23480", "23480"},
		{"non-nigerian number left alone", "+14155552671", "14155552671"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.phone))
		})
	}
}

func TestMaskBVN(t *testing.T) {
	assert.Equal(t, "*******8901", MaskBVN("12345678901"))
	assert.Equal(t, "1234", MaskBVN("1234"))
	assert.Equal(t, "", MaskBVN(""))
}
