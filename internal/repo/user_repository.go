package repo

import "blogapi/internal/models"

type UserRepository interface {
	Create(u models.User) (models.User, error)
	GetByUsername(username string) (models.User, error)
	GetByID(id int) (models.User, error)
	Update(u models.User) (models.User, error)
	GetInterests(userID int) ([]models.Interest, error)
	SetInterests(userID int, names []string) error
	Subscribe(subscriberID, targetID int) error
	Unsubscribe(subscriberID, targetID int) error
	Counts(userID int) (models.UserCounts, error)
	// ListOthers returns users other than excludeID ordered by subscriber
	// count, most popular first.
	ListOthers(excludeID, page, count int) ([]models.User, error)
}
