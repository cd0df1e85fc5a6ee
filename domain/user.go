package domain

import "time"

// User is the domain-friendly representation of an account.
// The password hash never leaves the repositories/services layers.
type User struct {
	ID           string
	Email        string
	Name         string
	AvatarURL    string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the projection of a user that may be broadcast to
// other team members (presence events, mentions, member listings).
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}
