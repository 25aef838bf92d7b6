package models

import "time"

type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	ShortBiography string    `json:"short_biography"`
	BirthDate      string    `json:"birth_date,omitempty"`
	Country        string    `json:"country"`
	City           string    `json:"city"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserCounts aggregates the numbers shown on a profile.
type UserCounts struct {
	Posts         int `json:"posts_number"`
	Subscribers   int `json:"subscribers_number"`
	Subscriptions int `json:"subscriptions_number"`
}

type Interest struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
