package repo

import (
	"sort"
	"strings"
	"time"

	"blogapi/internal/models"
)

// InMemoryPostRepository is an in-memory implementation of PostRepository.
type InMemoryPostRepository struct {
	posts  []models.Post
	nextID int
	users  *InMemoryUserRepository
}

func NewInMemoryPostRepository() *InMemoryPostRepository {
	return &InMemoryPostRepository{
		posts:  []models.Post{},
		nextID: 1,
	}
}

// SetUserRepository wires the user repository used to resolve author
// usernames and subscription membership.
func (r *InMemoryPostRepository) SetUserRepository(users *InMemoryUserRepository) {
	r.users = users
}

func (r *InMemoryPostRepository) Create(p models.Post) (models.Post, error) {
	p.ID = r.nextID
	r.nextID++
	if p.DatePublished.IsZero() {
		p.DatePublished = time.Now()
	}
	if p.Username == "" && r.users != nil {
		if u, err := r.users.GetByID(p.UserID); err == nil {
			p.Username = u.Username
		}
	}
	r.posts = append(r.posts, p)
	return p, nil
}

func (r *InMemoryPostRepository) GetByID(id int) (models.Post, error) {
	for _, p := range r.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Post{}, ErrPostNotFound
}

func (r *InMemoryPostRepository) Update(p models.Post) (models.Post, error) {
	for i, existing := range r.posts {
		if existing.ID == p.ID {
			existing.Title = p.Title
			existing.Content = p.Content
			r.posts[i] = existing
			return existing, nil
		}
	}
	return models.Post{}, ErrPostNotFound
}

func (r *InMemoryPostRepository) Latest(page, count int) ([]models.Post, int, error) {
	sorted := r.sortedNewestFirst(r.posts)
	f := PostFilter{Page: page, Count: count}

	start := clamp(f.offset(), 0, len(sorted))
	end := clamp(start+f.limit(), start, len(sorted))
	return sorted[start:end], len(r.posts), nil
}

func (r *InMemoryPostRepository) Search(f PostFilter) ([]models.Post, error) {
	var filtered []models.Post
	for _, p := range r.posts {
		if r.matchesFilter(p, f) {
			filtered = append(filtered, p)
		}
	}
	sorted := r.sortedNewestFirst(filtered)

	start := clamp(f.offset(), 0, len(sorted))
	end := clamp(start+f.limit(), start, len(sorted))
	return sorted[start:end], nil
}

func (r *InMemoryPostRepository) matchesFilter(p models.Post, f PostFilter) bool {
	if f.UserID != nil && p.UserID != *f.UserID {
		return false
	}
	if f.SubscriptionsOf != nil {
		if r.users == nil || !r.users.IsSubscribed(*f.SubscriptionsOf, p.UserID) {
			return false
		}
	}
	if len(f.Usernames) > 0 {
		found := false
		for _, name := range f.Usernames {
			if p.Username == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Title != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Title)) {
		return false
	}
	if f.Content != "" && !strings.Contains(strings.ToLower(p.Content), strings.ToLower(f.Content)) {
		return false
	}
	if f.From != nil && p.DatePublished.Before(*f.From) {
		return false
	}
	if f.To != nil && p.DatePublished.After(*f.To) {
		return false
	}
	return true
}

func (r *InMemoryPostRepository) sortedNewestFirst(posts []models.Post) []models.Post {
	sorted := append([]models.Post{}, posts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].DatePublished.Equal(sorted[j].DatePublished) {
			return sorted[i].DatePublished.After(sorted[j].DatePublished)
		}
		return sorted[i].ID > sorted[j].ID
	})
	return sorted
}

// CountByUser reports how many posts a user owns. Wired into the in-memory
// user repository's profile counts.
func (r *InMemoryPostRepository) CountByUser(userID int) int {
	n := 0
	for _, p := range r.posts {
		if p.UserID == userID {
			n++
		}
	}
	return n
}

// Clear drops all posts. For tests.
func (r *InMemoryPostRepository) Clear() {
	r.posts = []models.Post{}
	r.nextID = 1
}
