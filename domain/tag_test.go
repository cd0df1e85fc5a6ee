package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidTagName(t *testing.T) {
	req := require.New(t)

	req.True(ValidTagName("urgent"))
	req.True(ValidTagName(strings.Repeat("a", 50)))
	req.False(ValidTagName(""))
	req.False(ValidTagName(strings.Repeat("a", 51)))
}

func TestValidTagColor(t *testing.T) {
	tests := []struct {
		name  string
		color string
		want  bool
	}{
		{"Empty is allowed", "", true},
		{"Uppercase hex", "#FF00AA", true},
		{"Lowercase hex", "#ff00aa", true},
		{"Missing hash", "FF00AA", false},
		{"Too short", "#FFF", false},
		{"Non-hex digits", "#GG0000", false},
		{"Named color", "red", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ValidTagColor(tt.color))
		})
	}
}
