package handlers

import (
	"blogapi/internal/cache"
	repo "blogapi/internal/repo"
)

var (
	userRepo  repo.UserRepository
	postRepo  repo.PostRepository
	postCache *cache.Cache
)

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetPostRepo(r repo.PostRepository) {
	postRepo = r
}

func SetPostCache(c *cache.Cache) {
	postCache = c
}
