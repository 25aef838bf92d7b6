package repo

import "blogapi/internal/models"

type PostRepository interface {
	Create(p models.Post) (models.Post, error)
	GetByID(id int) (models.Post, error)
	Update(p models.Post) (models.Post, error)
	// Latest returns a page of posts newest first, plus the total post count.
	Latest(page, count int) ([]models.Post, int, error)
	Search(f PostFilter) ([]models.Post, error)
}
