package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMentions(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"No mention", "plain text without any mention", nil},
		{"Single mention", "ping @ada about this", []string{"ada"}},
		{"Multiple mentions keep order", "@ada and @grace should review", []string{"ada", "grace"}},
		{"Duplicates collapse", "@ada @grace @ada again", []string{"ada", "grace"}},
		{"Underscores and digits", "cc @dev_ops2", []string{"dev_ops2"}},
		{"Bare at sign", "meet @ the office", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMentions(tt.content)
			if tt.want == nil {
				req.Empty(got)
				return
			}
			req.Equal(tt.want, got)
		})
	}
}
