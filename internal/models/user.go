package models

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID         string     `json:"id"`
	OpenID     string     `json:"openId"`
	Name       string     `json:"name"`
	Email      string     `json:"email,omitempty"`
	AvatarURL  string     `json:"avatarUrl,omitempty"`
	Role       UserRole   `json:"role"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	LastSeenAt *time.Time `json:"lastSeenAt,omitempty"`
}
