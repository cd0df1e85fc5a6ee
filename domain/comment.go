package domain

import (
	"regexp"
	"time"

	"github.com/samber/lo"
)

type Comment struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"taskId"`
	UserID    string     `json:"userId"`
	Content   string     `json:"content"`
	Author    PublicUser `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
}

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// ParseMentions extracts the unique @name mentions from a comment body,
// in order of first appearance. Names are matched against user names by
// the caller; unknown names are simply dropped there.
func ParseMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	names := lo.Map(matches, func(m []string, _ int) string { return m[1] })
	return lo.Uniq(names)
}
