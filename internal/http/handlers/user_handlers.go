package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"blogapi/internal/models"
	"blogapi/internal/repo"
)

const latestPostsPerProfile = 5

func parsePageCount(q url.Values) (int, int) {
	page := repo.DefaultPageNumber
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}
	count := repo.DefaultPageCount
	if v, err := strconv.Atoi(q.Get("count")); err == nil && v > 0 {
		count = v
	}
	return page, count
}

func buildProfileView(user models.User) (UserProfileView, error) {
	counts, err := userRepo.Counts(user.ID)
	if err != nil {
		return UserProfileView{}, err
	}
	interests, err := userRepo.GetInterests(user.ID)
	if err != nil {
		return UserProfileView{}, err
	}
	posts, err := postRepo.Search(repo.PostFilter{
		UserID: &user.ID,
		Page:   repo.DefaultPageNumber,
		Count:  latestPostsPerProfile,
	})
	if err != nil {
		return UserProfileView{}, err
	}

	return UserProfileView{
		Id:               user.ID,
		Username:         user.Username,
		ShortBiography:   user.ShortBiography,
		Country:          user.Country,
		City:             user.City,
		Interests:        interestNames(interests),
		SubscribersCount: counts.Subscribers,
		Posts:            toPostResponses(posts),
	}, nil
}

// GetUsersHandler godoc
// @Summary List other users ordered by popularity
// @Description Returns users other than the caller, most subscribed first, each with their 5 latest posts.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param count query int false "Results per page"
// @Success 200 {array} UserProfileView
// @Failure 401 {string} string "Unauthorized"
// @Router /users [get]
func GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	page, count := parsePageCount(r.URL.Query())

	users, err := userRepo.ListOthers(GetUserID(r), page, count)
	if err != nil {
		http.Error(w, "could not fetch users", http.StatusInternalServerError)
		return
	}

	views := make([]UserProfileView, len(users))
	for i, u := range users {
		view, err := buildProfileView(u)
		if err != nil {
			http.Error(w, "could not fetch users", http.StatusInternalServerError)
			return
		}
		views[i] = view
	}

	if err := writeJSON(w, http.StatusOK, views); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// GetUserProfileViewHandler godoc
// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} UserProfileView
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /users/{id} [get]
func GetUserProfileViewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch user", http.StatusInternalServerError)
		return
	}

	view, err := buildProfileView(user)
	if err != nil {
		http.Error(w, "could not fetch user", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, view); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// SubscribeHandler godoc
// @Summary Subscribe to a user
// @Tags users
// @Security BearerAuth
// @Param id path int true "Target user ID"
// @Success 204 "Subscribed"
// @Failure 400 {string} string "Invalid target"
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "Not found"
// @Router /users/{id}/subscribe [post]
func SubscribeHandler(w http.ResponseWriter, r *http.Request) {
	targetID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	subscriberID := GetUserID(r)
	if targetID == subscriberID {
		http.Error(w, "cannot subscribe to yourself", http.StatusBadRequest)
		return
	}

	if _, err := userRepo.GetByID(targetID); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not subscribe", http.StatusInternalServerError)
		return
	}

	if err := userRepo.Subscribe(subscriberID, targetID); err != nil {
		http.Error(w, "could not subscribe", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnsubscribeHandler godoc
// @Summary Unsubscribe from a user
// @Tags users
// @Security BearerAuth
// @Param id path int true "Target user ID"
// @Success 204 "Unsubscribed"
// @Failure 400 {string} string "Invalid target"
// @Failure 401 {string} string "Unauthorized"
// @Router /users/{id}/unsubscribe [post]
func UnsubscribeHandler(w http.ResponseWriter, r *http.Request) {
	targetID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	if err := userRepo.Unsubscribe(GetUserID(r), targetID); err != nil {
		http.Error(w, "could not unsubscribe", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
