package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"blogapi/internal/models"
	"blogapi/internal/repo"
)

// CreatePostHandler godoc
// @Summary Create a new post
// @Description Persists a post owned by the authenticated caller
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body PostRequest true "Post to add"
// @Success 201 {object} PostResponse
// @Failure 400 {array} ValidationError
// @Failure 401 {string} string "Unauthorized"
// @Router /posts [post]
func CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validatePost(req)
	if len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	post := models.Post{
		UserID:   GetUserID(r),
		Username: GetUsername(r),
		Title:    req.Title,
		Content:  req.Content,
	}
	created, err := postRepo.Create(post)
	if err != nil {
		http.Error(w, "could not create post", http.StatusInternalServerError)
		return
	}

	postCache.InvalidateLatest(r.Context())

	if err := writeJSON(w, http.StatusCreated, toPostResponse(created)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// GetPostsHandler godoc
// @Summary List the latest posts
// @Description Returns a page of posts, newest first, with the total post count
// @Tags posts
// @Produce json
// @Param page query int false "Page number"
// @Param count query int false "Results per page"
// @Success 200 {object} PostsSearchResult
// @Failure 500 {string} string "Internal error"
// @Router /posts [get]
func GetPostsHandler(w http.ResponseWriter, r *http.Request) {
	page, count := parsePageCount(r.URL.Query())

	posts, total, ok := postCache.GetLatest(r.Context(), page, count)
	if !ok {
		var err error
		posts, total, err = postRepo.Latest(page, count)
		if err != nil {
			http.Error(w, "could not fetch posts", http.StatusInternalServerError)
			return
		}
		postCache.SetLatest(r.Context(), page, count, posts, total)
	}

	resp := PostsSearchResult{
		Data: toPostResponses(posts),
		Meta: Meta{TotalCount: total},
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// GetPostByIDHandler godoc
// @Summary Get post by ID
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /posts/{id} [get]
func GetPostByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid post ID", http.StatusBadRequest)
		return
	}

	post, ok := postCache.GetPost(r.Context(), id)
	if !ok {
		post, err = postRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, repo.ErrPostNotFound) {
				http.Error(w, "post not found", http.StatusNotFound)
				return
			}
			http.Error(w, "could not fetch post", http.StatusInternalServerError)
			return
		}
		postCache.SetPost(r.Context(), post)
	}

	if err := writeJSON(w, http.StatusOK, toPostResponse(post)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// UpdatePostHandler godoc
// @Summary Update a post
// @Description Only the owner may update a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param post body PostRequest true "Updated post"
// @Success 200 {object} PostResponse
// @Failure 400 {array} ValidationError
// @Failure 401 {string} string "Unauthorized"
// @Failure 403 {string} string "Forbidden"
// @Failure 404 {string} string "Not found"
// @Router /posts/{id} [put]
func UpdatePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid post ID", http.StatusBadRequest)
		return
	}

	var req PostRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validatePost(req)
	if len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	post, err := postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrPostNotFound) {
			http.Error(w, "post not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch post", http.StatusInternalServerError)
		return
	}

	if post.UserID != GetUserID(r) {
		http.Error(w, "you don't have access to modify this post", http.StatusForbidden)
		return
	}

	post.Title = req.Title
	post.Content = req.Content
	updated, err := postRepo.Update(post)
	if err != nil {
		http.Error(w, "could not update post", http.StatusInternalServerError)
		return
	}

	postCache.InvalidatePost(r.Context(), id)
	postCache.InvalidateLatest(r.Context())

	if err := writeJSON(w, http.StatusOK, toPostResponse(updated)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

func parseDatePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(birthDateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func parsePostFilter(q url.Values) repo.PostFilter {
	page, count := parsePageCount(q)
	f := repo.PostFilter{
		Title:   q.Get("title"),
		Content: q.Get("content"),
		From:    parseDatePtr(q.Get("from")),
		Page:    page,
		Count:   count,
	}
	if to := parseDatePtr(q.Get("to")); to != nil {
		// Inclusive upper bound: take the whole day.
		end := to.Add(24*time.Hour - time.Nanosecond)
		f.To = &end
	}
	return f
}

func searchPosts(w http.ResponseWriter, f repo.PostFilter) {
	posts, err := postRepo.Search(f)
	if err != nil {
		http.Error(w, "could not search posts", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, toPostResponses(posts)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// GetMyPostsHandler godoc
// @Summary List the current user's latest posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param count query int false "Results per page"
// @Success 200 {array} PostResponse
// @Failure 401 {string} string "Unauthorized"
// @Router /me/posts [get]
func GetMyPostsHandler(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)
	page, count := parsePageCount(r.URL.Query())
	searchPosts(w, repo.PostFilter{UserID: &userID, Page: page, Count: count})
}

// SearchMyPostsHandler godoc
// @Summary Search the current user's posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param title query string false "Title substring"
// @Param content query string false "Content substring"
// @Param from query string false "Published on or after (YYYY-MM-DD)"
// @Param to query string false "Published on or before (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param count query int false "Results per page"
// @Success 200 {array} PostResponse
// @Failure 401 {string} string "Unauthorized"
// @Router /me/posts/search [get]
func SearchMyPostsHandler(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)
	f := parsePostFilter(r.URL.Query())
	f.UserID = &userID
	searchPosts(w, f)
}

// GetUserPostsHandler godoc
// @Summary List a user's latest posts
// @Tags posts
// @Produce json
// @Param id path int true "User ID"
// @Param page query int false "Page number"
// @Param count query int false "Results per page"
// @Success 200 {array} PostResponse
// @Failure 400 {string} string "Invalid ID"
// @Router /users/{id}/posts [get]
func GetUserPostsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	page, count := parsePageCount(r.URL.Query())
	searchPosts(w, repo.PostFilter{UserID: &userID, Page: page, Count: count})
}

// SearchUserPostsHandler godoc
// @Summary Search a user's posts
// @Tags posts
// @Produce json
// @Param id path int true "User ID"
// @Param title query string false "Title substring"
// @Param content query string false "Content substring"
// @Param from query string false "Published on or after (YYYY-MM-DD)"
// @Param to query string false "Published on or before (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param count query int false "Results per page"
// @Success 200 {array} PostResponse
// @Failure 400 {string} string "Invalid ID"
// @Router /users/{id}/posts/search [get]
func SearchUserPostsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	f := parsePostFilter(r.URL.Query())
	f.UserID = &userID
	searchPosts(w, f)
}

// GetSubscriptionPostsHandler godoc
// @Summary Search posts from subscribed authors
// @Description Searches the posts of users the caller subscribes to. The usernames parameter narrows results to specific authors.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param usernames query string false "Comma-separated author usernames"
// @Param title query string false "Title substring"
// @Param content query string false "Content substring"
// @Param from query string false "Published on or after (YYYY-MM-DD)"
// @Param to query string false "Published on or before (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param count query int false "Results per page"
// @Success 200 {array} PostResponse
// @Failure 401 {string} string "Unauthorized"
// @Router /me/subscriptions/posts [get]
func GetSubscriptionPostsHandler(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r)
	f := parsePostFilter(r.URL.Query())
	f.SubscriptionsOf = &userID
	if usernames := r.URL.Query().Get("usernames"); usernames != "" {
		for _, name := range strings.Split(usernames, ",") {
			if name = strings.TrimSpace(name); name != "" {
				f.Usernames = append(f.Usernames, name)
			}
		}
	}
	searchPosts(w, f)
}
