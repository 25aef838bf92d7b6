package repo

import (
	"sort"
	"time"

	"blogapi/internal/models"
)

// InMemoryUserRepository is an in-memory implementation of UserRepository.
type InMemoryUserRepository struct {
	users         []models.User
	nextID        int
	subscriptions map[int]map[int]bool // subscriber -> set of subscriptions
	interests     map[int][]string
	interestIDs   map[string]int
	nextInterest  int
	postCounter   func(userID int) int
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:         []models.User{},
		nextID:        1,
		subscriptions: map[int]map[int]bool{},
		interests:     map[int][]string{},
		interestIDs:   map[string]int{},
		nextInterest:  1,
	}
}

// SetPostCounter wires the post count used in Counts. The handler suites
// connect it to the in-memory post repository.
func (r *InMemoryUserRepository) SetPostCounter(counter func(userID int) int) {
	r.postCounter = counter
}

func (r *InMemoryUserRepository) Create(u models.User) (models.User, error) {
	for _, user := range r.users {
		if user.Username == u.Username {
			return models.User{}, ErrDuplicatedValueUnique
		}
	}

	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryUserRepository) GetByUsername(username string) (models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(id int) (models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) Update(u models.User) (models.User, error) {
	for _, user := range r.users {
		if user.Username == u.Username && user.ID != u.ID {
			return models.User{}, ErrDuplicatedValueUnique
		}
	}
	for i, user := range r.users {
		if user.ID == u.ID {
			u.CreatedAt = user.CreatedAt
			u.UpdatedAt = time.Now()
			r.users[i] = u
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) GetInterests(userID int) ([]models.Interest, error) {
	names := append([]string{}, r.interests[userID]...)
	sort.Strings(names)

	var interests []models.Interest
	for _, name := range names {
		interests = append(interests, models.Interest{ID: r.interestIDs[name], Name: name})
	}
	return interests, nil
}

func (r *InMemoryUserRepository) SetInterests(userID int, names []string) error {
	for _, name := range names {
		if _, ok := r.interestIDs[name]; !ok {
			r.interestIDs[name] = r.nextInterest
			r.nextInterest++
		}
	}
	r.interests[userID] = append([]string{}, names...)
	return nil
}

func (r *InMemoryUserRepository) Subscribe(subscriberID, targetID int) error {
	if r.subscriptions[subscriberID] == nil {
		r.subscriptions[subscriberID] = map[int]bool{}
	}
	r.subscriptions[subscriberID][targetID] = true
	return nil
}

func (r *InMemoryUserRepository) Unsubscribe(subscriberID, targetID int) error {
	delete(r.subscriptions[subscriberID], targetID)
	return nil
}

// IsSubscribed is used by the in-memory post repository for subscription
// feed filtering.
func (r *InMemoryUserRepository) IsSubscribed(subscriberID, targetID int) bool {
	return r.subscriptions[subscriberID][targetID]
}

func (r *InMemoryUserRepository) Counts(userID int) (models.UserCounts, error) {
	var c models.UserCounts
	if r.postCounter != nil {
		c.Posts = r.postCounter(userID)
	}
	c.Subscriptions = len(r.subscriptions[userID])
	for _, targets := range r.subscriptions {
		if targets[userID] {
			c.Subscribers++
		}
	}
	return c, nil
}

func (r *InMemoryUserRepository) ListOthers(excludeID, page, count int) ([]models.User, error) {
	var others []models.User
	for _, user := range r.users {
		if user.ID != excludeID {
			others = append(others, user)
		}
	}

	subscriberCount := func(id int) int {
		n := 0
		for _, targets := range r.subscriptions {
			if targets[id] {
				n++
			}
		}
		return n
	}
	sort.SliceStable(others, func(i, j int) bool {
		ci, cj := subscriberCount(others[i].ID), subscriberCount(others[j].ID)
		if ci != cj {
			return ci > cj
		}
		return others[i].ID < others[j].ID
	})

	if count <= 0 {
		count = DefaultPageCount
	}
	if page < 1 {
		page = DefaultPageNumber
	}
	start := clamp((page-1)*count, 0, len(others))
	end := clamp(start+count, start, len(others))
	return others[start:end], nil
}

// Clear drops everything. For tests.
func (r *InMemoryUserRepository) Clear() {
	r.users = []models.User{}
	r.nextID = 1
	r.subscriptions = map[int]map[int]bool{}
	r.interests = map[int][]string{}
	r.interestIDs = map[string]int{}
	r.nextInterest = 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
