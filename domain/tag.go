package domain

import (
	"regexp"
	"time"
)

const maxTagNameLength = 50

var tagColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Tag is a label for organizing tasks. A tag with a TeamID is shared
// among that team's members; one without belongs to no team and carries
// no access rule beyond authentication.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	TeamID    string    `json:"teamId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidTagName reports whether a (trimmed) tag name is usable.
func ValidTagName(name string) bool {
	return name != "" && len(name) <= maxTagNameLength
}

// ValidTagColor accepts the #RRGGBB hex format; empty means unset.
func ValidTagColor(color string) bool {
	return color == "" || tagColorPattern.MatchString(color)
}
