package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	api "blogapi/internal/http"
	handler "blogapi/internal/http/handlers"
)

func TestCreatePostHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllPosts)
	r := api.NewRouter()

	w := createPost(r, token, handler.PostRequest{Title: "First post", Content: "hello world"})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.PostResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Title != "First post" {
		t.Errorf("expected title 'First post', got %v", resp.Title)
	}
	if resp.Content != "hello world" {
		t.Errorf("expected content 'hello world', got %v", resp.Content)
	}
	if resp.Username != "admin" {
		t.Errorf("expected author 'admin', got %v", resp.Username)
	}
	if _, err := time.Parse(time.RFC3339, resp.DatePublished); err != nil {
		t.Errorf("expected RFC3339 publication date, got %v", resp.DatePublished)
	}
}

func TestCreatePostHandler_Unauthorized(t *testing.T) {
	r := api.NewRouter()

	w := createPost(r, "", handler.PostRequest{Title: "Sneaky", Content: "no token"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestCreatePostHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllPosts)
	r := api.NewRouter()

	tests := []struct {
		name           string
		payload        handler.PostRequest
		expectedErrors []string
	}{
		{
			name:           "Empty title and content",
			payload:        handler.PostRequest{Title: "", Content: ""},
			expectedErrors: []string{"Title", "Content"},
		},
		{
			name:           "Title too long",
			payload:        handler.PostRequest{Title: strings.Repeat("a", 101), Content: "ok"},
			expectedErrors: []string{"Title"},
		},
		{
			name:           "Content too long",
			payload:        handler.PostRequest{Title: "ok", Content: strings.Repeat("a", 1001)},
			expectedErrors: []string{"Content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createPost(r, token, tt.payload)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400 Bad Request, got %d", w.Code)
			}

			var resp []handler.ValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestGetPostsHandler(t *testing.T) {
	t.Cleanup(clearAllPosts)
	r := api.NewRouter()

	titles := []string{"one", "two", "three"}
	for _, title := range titles {
		w := createPost(r, token, handler.PostRequest{Title: title, Content: "content of " + title})
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to create test post %q", title)
		}
	}

	w := doGet(r, "/posts", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.PostsSearchResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Meta.TotalCount != 3 {
		t.Errorf("expected total count 3, got %d", resp.Meta.TotalCount)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(resp.Data))
	}
	// Newest first.
	if resp.Data[0].Title != "three" {
		t.Errorf("expected newest post 'three' first, got %v", resp.Data[0].Title)
	}
	if resp.Data[2].Title != "one" {
		t.Errorf("expected oldest post 'one' last, got %v", resp.Data[2].Title)
	}
}

func TestGetPostsHandler_Pagination(t *testing.T) {
	t.Cleanup(clearAllPosts)
	r := api.NewRouter()

	for i := 1; i <= 5; i++ {
		w := createPost(r, token, handler.PostRequest{Title: fmt.Sprintf("post %d", i), Content: "body"})
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to create test post %d", i)
		}
	}

	t.Run("Second page", func(t *testing.T) {
		w := doGet(r, "/posts?page=2&count=2", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		var resp handler.PostsSearchResult
		json.NewDecoder(w.Body).Decode(&resp)

		if len(resp.Data) != 2 {
			t.Errorf("expected 2 posts on page 2, got %d", len(resp.Data))
		}
		if resp.Meta.TotalCount != 5 {
			t.Errorf("expected total count 5, got %d", resp.Meta.TotalCount)
		}
	})

	t.Run("Page past the end", func(t *testing.T) {
		w := doGet(r, "/posts?page=9&count=2", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		var resp handler.PostsSearchResult
		json.NewDecoder(w.Body).Decode(&resp)

		if len(resp.Data) != 0 {
			t.Errorf("expected empty page, got %d posts", len(resp.Data))
		}
		if resp.Meta.TotalCount != 5 {
			t.Errorf("expected total count 5, got %d", resp.Meta.TotalCount)
		}
	})
}

func TestGetPostByIDHandler(t *testing.T) {
	t.Cleanup(clearAllPosts)
	r := api.NewRouter()

	w := createPost(r, token, handler.PostRequest{Title: "findable", Content: "look me up"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	var created handler.PostResponse
	json.NewDecoder(w.Body).Decode(&created)

	t.Run("Existing post", func(t *testing.T) {
		getW := doGet(r, fmt.Sprintf("/posts/%d", created.Id), "")
		if getW.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", getW.Code)
		}

		var resp handler.PostResponse
		if err := json.NewDecoder(getW.Body).Decode(&resp); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if resp.Title != "findable" {
			t.Errorf("expected title 'findable', got %v", resp.Title)
		}
	})

	t.Run("Missing post", func(t *testing.T) {
		getW := doGet(r, "/posts/999999", "")
		if getW.Code != http.StatusNotFound {
			t.Errorf("expected 404 Not Found, got %d", getW.Code)
		}
	})

	t.Run("Invalid ID", func(t *testing.T) {
		getW := doGet(r, "/posts/abc", "")
		if getW.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", getW.Code)
		}
	})
}

func TestUpdatePostHandler(t *testing.T) {
	t.Cleanup(clearAllPosts)
	t.Cleanup(clearAllUsersExceptAdmin)
	r := api.NewRouter()

	w := createPost(r, token, handler.PostRequest{Title: "Old title", Content: "old content"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	var created handler.PostResponse
	json.NewDecoder(w.Body).Decode(&created)

	path := fmt.Sprintf("/posts/%d", created.Id)

	t.Run("Without token", func(t *testing.T) {
		updateW := doJSON(r, http.MethodPut, path, "", handler.PostRequest{Title: "New", Content: "new"})
		if updateW.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", updateW.Code)
		}
	})

	t.Run("By another user", func(t *testing.T) {
		intruder := tokenFor(addUser("intruder"))

		updateW := doJSON(r, http.MethodPut, path, intruder, handler.PostRequest{Title: "Mine now", Content: "taken"})
		if updateW.Code != http.StatusForbidden {
			t.Errorf("expected 403 Forbidden, got %d", updateW.Code)
		}
	})

	t.Run("By the owner", func(t *testing.T) {
		updateW := doJSON(r, http.MethodPut, path, token, handler.PostRequest{Title: "New title", Content: "new content"})
		if updateW.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", updateW.Code)
		}

		var updated handler.PostResponse
		if err := json.NewDecoder(updateW.Body).Decode(&updated); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if updated.Title != "New title" {
			t.Errorf("expected title 'New title', got %v", updated.Title)
		}

		// The change must be visible on a subsequent read.
		getW := doGet(r, path, "")
		var fetched handler.PostResponse
		json.NewDecoder(getW.Body).Decode(&fetched)
		if fetched.Content != "new content" {
			t.Errorf("expected content 'new content', got %v", fetched.Content)
		}
	})

	t.Run("Missing post", func(t *testing.T) {
		updateW := doJSON(r, http.MethodPut, "/posts/999999", token, handler.PostRequest{Title: "Ghost", Content: "boo"})
		if updateW.Code != http.StatusNotFound {
			t.Errorf("expected 404 Not Found, got %d", updateW.Code)
		}
	})
}

func TestSearchMyPostsHandler(t *testing.T) {
	t.Cleanup(clearAllPosts)
	r := api.NewRouter()

	posts := []handler.PostRequest{
		{Title: "Gardening basics", Content: "soil and seeds"},
		{Title: "Advanced gardening", Content: "pruning techniques"},
		{Title: "Cooking at home", Content: "seeds and grains"},
	}
	for _, p := range posts {
		w := createPost(r, token, p)
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to create test post %q", p.Title)
		}
	}

	t.Run("By title", func(t *testing.T) {
		w := doGet(r, "/me/posts/search?title=gardening", token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		var resp []handler.PostResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp) != 2 {
			t.Errorf("expected 2 posts matching 'gardening', got %d", len(resp))
		}
		for _, p := range resp {
			if !strings.Contains(strings.ToLower(p.Title), "gardening") {
				t.Errorf("unexpected post in results: %v", p.Title)
			}
		}
	})

	t.Run("By content", func(t *testing.T) {
		w := doGet(r, "/me/posts/search?content=seeds", token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		var resp []handler.PostResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp) != 2 {
			t.Errorf("expected 2 posts matching 'seeds', got %d", len(resp))
		}
	})

	t.Run("By date range", func(t *testing.T) {
		today := time.Now().Format("2006-01-02")
		tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

		w := doGet(r, "/me/posts/search?from="+today+"&to="+today, token)
		var resp []handler.PostResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp) != 3 {
			t.Errorf("expected all 3 posts published today, got %d", len(resp))
		}

		w = doGet(r, "/me/posts/search?from="+tomorrow, token)
		resp = nil
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp) != 0 {
			t.Errorf("expected no posts published after today, got %d", len(resp))
		}
	})

	t.Run("Without token", func(t *testing.T) {
		w := doGet(r, "/me/posts/search?title=gardening", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", w.Code)
		}
	})
}

func TestGetUserPostsHandler(t *testing.T) {
	t.Cleanup(clearAllPosts)
	t.Cleanup(clearAllUsersExceptAdmin)
	r := api.NewRouter()

	author := addUser("author")
	authorToken := tokenFor(author)

	for i := 1; i <= 3; i++ {
		w := createPost(r, authorToken, handler.PostRequest{Title: fmt.Sprintf("essay %d", i), Content: "text"})
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to create test post %d", i)
		}
	}
	// A post by someone else must not show up.
	if w := createPost(r, token, handler.PostRequest{Title: "unrelated", Content: "text"}); w.Code != http.StatusCreated {
		t.Fatal("failed to create unrelated post")
	}

	w := doGet(r, fmt.Sprintf("/users/%d/posts", author.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp []handler.PostResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(resp))
	}
	for _, p := range resp {
		if p.Username != "author" {
			t.Errorf("expected all posts by 'author', got %v", p.Username)
		}
	}

	t.Run("Search scoped to the user", func(t *testing.T) {
		searchW := doGet(r, fmt.Sprintf("/users/%d/posts/search?title=essay+1", author.ID), "")
		if searchW.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", searchW.Code)
		}

		var found []handler.PostResponse
		json.NewDecoder(searchW.Body).Decode(&found)
		if len(found) != 1 || found[0].Title != "essay 1" {
			t.Errorf("expected exactly 'essay 1', got %v", found)
		}
	})
}
