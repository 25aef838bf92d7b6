package models

import "time"

// Post represents a blog post. Username is the author's handle, resolved
// alongside the row so responses don't need a second lookup.
type Post struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	Username      string    `json:"username,omitempty"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	DatePublished time.Time `json:"date_published"`
}
