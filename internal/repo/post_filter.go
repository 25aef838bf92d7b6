package repo

import "time"

const (
	DefaultPageNumber = 1
	DefaultPageCount  = 10
)

// PostFilter narrows a post search. Zero/nil fields are ignored.
// SubscriptionsOf restricts results to authors the given user subscribes to;
// Usernames further narrows it to specific authors.
type PostFilter struct {
	UserID          *int
	SubscriptionsOf *int
	Usernames       []string
	Title           string
	Content         string
	From            *time.Time
	To              *time.Time
	Page            int
	Count           int
}

func (f PostFilter) limit() int {
	if f.Count <= 0 {
		return DefaultPageCount
	}
	return f.Count
}

func (f PostFilter) offset() int {
	page := f.Page
	if page < 1 {
		page = DefaultPageNumber
	}
	return (page - 1) * f.limit()
}
