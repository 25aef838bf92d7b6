package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	api "blogapi/internal/http"
	handler "blogapi/internal/http/handlers"
)

func TestGetMyProfileHandler(t *testing.T) {
	t.Cleanup(clearAllUsersExceptAdmin)
	r := api.NewRouter()

	w := doGet(r, "/me/profile", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var profile handler.ProfileResponse
	if err := json.NewDecoder(w.Body).Decode(&profile); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if profile.Username != "admin" {
		t.Errorf("expected username 'admin', got %v", profile.Username)
	}
	if profile.PostsCount != 0 || profile.SubscribersCount != 0 || profile.SubscriptionsCount != 0 {
		t.Errorf("expected zero counts on a fresh profile, got %+v", profile)
	}
}

func TestUpdateMyProfileHandler(t *testing.T) {
	t.Cleanup(clearAllUsersExceptAdmin)
	r := api.NewRouter()

	t.Run("Full update", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/me/profile", token, handler.ProfileUpdateRequest{
			ShortBiography: "keeps the lights on",
			BirthDate:      "1985-12-24",
			Country:        "NL",
			City:           "Utrecht",
			Interests:      []string{"golang", "cycling"},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		var profile handler.ProfileResponse
		if err := json.NewDecoder(w.Body).Decode(&profile); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if profile.ShortBiography != "keeps the lights on" {
			t.Errorf("expected updated biography, got %v", profile.ShortBiography)
		}
		if profile.City != "Utrecht" {
			t.Errorf("expected city 'Utrecht', got %v", profile.City)
		}
		if len(profile.Interests) != 2 {
			t.Errorf("expected 2 interests, got %v", profile.Interests)
		}
	})

	t.Run("Omitted interests stay untouched", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/me/profile", token, handler.ProfileUpdateRequest{
			ShortBiography: "updated again",
			BirthDate:      "1985-12-24",
			Country:        "NL",
			City:           "Utrecht",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		var profile handler.ProfileResponse
		json.NewDecoder(w.Body).Decode(&profile)
		if len(profile.Interests) != 2 {
			t.Errorf("expected interests to survive an update without them, got %v", profile.Interests)
		}
	})

	t.Run("Invalid birth date", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/me/profile", token, handler.ProfileUpdateRequest{
			BirthDate: "24-12-1985",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})

	t.Run("Without token", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/me/profile", "", handler.ProfileUpdateRequest{})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", w.Code)
		}
	})
}

func TestUpdateCredentialsHandler(t *testing.T) {
	t.Cleanup(clearAllUsersExceptAdmin)
	r := api.NewRouter()

	carol := addUser("carol")
	carolToken := tokenFor(carol)

	t.Run("Taken username", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/me/credentials", carolToken, handler.CredentialsRequest{
			Username: "admin",
			Password: "Another_pass9",
		})
		if w.Code != http.StatusConflict {
			t.Errorf("expected 409 Conflict, got %d", w.Code)
		}
	})

	t.Run("Weak password", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/me/credentials", carolToken, handler.CredentialsRequest{
			Username: "carol",
			Password: "short",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})

	t.Run("Valid change", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/me/credentials", carolToken, handler.CredentialsRequest{
			Username: "caroline",
			Password: "Another_pass9",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		var resp handler.RegisterResult
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if resp.User.Username != "caroline" {
			t.Errorf("expected username 'caroline', got %v", resp.User.Username)
		}

		// The fresh token carries the new identity.
		profileW := doGet(r, "/me/profile", resp.Token)
		if profileW.Code != http.StatusOK {
			t.Fatalf("expected 200 OK with the reissued token, got %d", profileW.Code)
		}
		var profile handler.ProfileResponse
		json.NewDecoder(profileW.Body).Decode(&profile)
		if profile.Username != "caroline" {
			t.Errorf("expected profile username 'caroline', got %v", profile.Username)
		}

		// And the new password works at login.
		loginW := login(r, "caroline", "Another_pass9")
		if loginW.Code != http.StatusOK {
			t.Errorf("expected 200 OK at login with new credentials, got %d", loginW.Code)
		}
	})
}

func TestSubscribeHandlers(t *testing.T) {
	t.Cleanup(clearAllUsersExceptAdmin)
	r := api.NewRouter()

	bob := addUser("bob")

	t.Run("Subscribe", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, fmt.Sprintf("/users/%d/subscribe", bob.ID), token, nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204 No Content, got %d", w.Code)
		}

		profileW := doGet(r, "/me/profile", token)
		var profile handler.ProfileResponse
		json.NewDecoder(profileW.Body).Decode(&profile)
		if profile.SubscriptionsCount != 1 {
			t.Errorf("expected 1 subscription, got %d", profile.SubscriptionsCount)
		}

		viewW := doGet(r, fmt.Sprintf("/users/%d", bob.ID), "")
		var view handler.UserProfileView
		json.NewDecoder(viewW.Body).Decode(&view)
		if view.SubscribersCount != 1 {
			t.Errorf("expected bob to have 1 subscriber, got %d", view.SubscribersCount)
		}
	})

	t.Run("Subscribe is idempotent", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, fmt.Sprintf("/users/%d/subscribe", bob.ID), token, nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204 No Content, got %d", w.Code)
		}

		profileW := doGet(r, "/me/profile", token)
		var profile handler.ProfileResponse
		json.NewDecoder(profileW.Body).Decode(&profile)
		if profile.SubscriptionsCount != 1 {
			t.Errorf("expected subscription count to stay at 1, got %d", profile.SubscriptionsCount)
		}
	})

	t.Run("Self subscription", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/users/1/subscribe", token, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})

	t.Run("Missing target", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/users/999999/subscribe", token, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 Not Found, got %d", w.Code)
		}
	})

	t.Run("Unsubscribe", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, fmt.Sprintf("/users/%d/unsubscribe", bob.ID), token, nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204 No Content, got %d", w.Code)
		}

		profileW := doGet(r, "/me/profile", token)
		var profile handler.ProfileResponse
		json.NewDecoder(profileW.Body).Decode(&profile)
		if profile.SubscriptionsCount != 0 {
			t.Errorf("expected 0 subscriptions after unsubscribing, got %d", profile.SubscriptionsCount)
		}
	})

	t.Run("Without token", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, fmt.Sprintf("/users/%d/subscribe", bob.ID), "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", w.Code)
		}
	})
}

func TestGetUsersHandler(t *testing.T) {
	t.Cleanup(clearAllPosts)
	t.Cleanup(clearAllUsersExceptAdmin)
	r := api.NewRouter()

	bob := addUser("bob")
	carol := addUser("carol")
	dave := addUser("dave")

	// carol gets two subscribers, bob one, dave none.
	usersRepo.Subscribe(bob.ID, carol.ID)
	usersRepo.Subscribe(dave.ID, carol.ID)
	usersRepo.Subscribe(carol.ID, bob.ID)

	// Six posts for carol so the profile view has to cut the list at five.
	carolToken := tokenFor(carol)
	for i := 1; i <= 6; i++ {
		w := createPost(r, carolToken, handler.PostRequest{Title: fmt.Sprintf("note %d", i), Content: "text"})
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to create test post %d", i)
		}
	}

	w := doGet(r, "/users", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var views []handler.UserProfileView
	if err := json.NewDecoder(w.Body).Decode(&views); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if len(views) != 3 {
		t.Fatalf("expected 3 users, got %d", len(views))
	}
	for _, v := range views {
		if v.Username == "admin" {
			t.Error("expected the caller to be excluded from the listing")
		}
	}

	// Most subscribed first.
	if views[0].Username != "carol" {
		t.Errorf("expected 'carol' first, got %v", views[0].Username)
	}
	if views[1].Username != "bob" {
		t.Errorf("expected 'bob' second, got %v", views[1].Username)
	}

	if len(views[0].Posts) != 5 {
		t.Errorf("expected 5 latest posts in the profile view, got %d", len(views[0].Posts))
	}
	if views[0].Posts[0].Title != "note 6" {
		t.Errorf("expected newest post 'note 6' first, got %v", views[0].Posts[0].Title)
	}

	t.Run("Without token", func(t *testing.T) {
		unauthedW := doGet(r, "/users", "")
		if unauthedW.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", unauthedW.Code)
		}
	})
}

func TestGetUserProfileViewHandler(t *testing.T) {
	t.Cleanup(clearAllUsersExceptAdmin)
	r := api.NewRouter()

	bob := addUser("bob")

	t.Run("Public access", func(t *testing.T) {
		w := doGet(r, fmt.Sprintf("/users/%d", bob.ID), "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		var view handler.UserProfileView
		if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if view.Username != "bob" {
			t.Errorf("expected username 'bob', got %v", view.Username)
		}
	})

	t.Run("Missing user", func(t *testing.T) {
		w := doGet(r, "/users/999999", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 Not Found, got %d", w.Code)
		}
	})

	t.Run("Invalid ID", func(t *testing.T) {
		w := doGet(r, "/users/abc", "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})
}

func TestGetSubscriptionPostsHandler(t *testing.T) {
	t.Cleanup(clearAllPosts)
	t.Cleanup(clearAllUsersExceptAdmin)
	r := api.NewRouter()

	bob := addUser("bob")
	carol := addUser("carol")

	for _, seed := range []struct {
		token string
		title string
	}{
		{tokenFor(bob), "bob on fishing"},
		{tokenFor(bob), "bob on hiking"},
		{tokenFor(carol), "carol on painting"},
	} {
		w := createPost(r, seed.token, handler.PostRequest{Title: seed.title, Content: "text"})
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to create test post %q", seed.title)
		}
	}

	// admin follows bob only.
	usersRepo.Subscribe(1, bob.ID)

	t.Run("Feed holds subscribed authors only", func(t *testing.T) {
		w := doGet(r, "/me/subscriptions/posts", token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		var resp []handler.PostResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp) != 2 {
			t.Fatalf("expected 2 posts, got %d", len(resp))
		}
		for _, p := range resp {
			if p.Username != "bob" {
				t.Errorf("expected only bob's posts, got one by %v", p.Username)
			}
		}
	})

	t.Run("Usernames filter", func(t *testing.T) {
		w := doGet(r, "/me/subscriptions/posts?usernames=bob", token)
		var resp []handler.PostResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp) != 2 {
			t.Errorf("expected 2 posts for bob, got %d", len(resp))
		}

		// carol is not a subscription, so filtering on her yields nothing.
		w = doGet(r, "/me/subscriptions/posts?usernames=carol", token)
		resp = nil
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp) != 0 {
			t.Errorf("expected no posts for carol, got %d", len(resp))
		}
	})

	t.Run("Title filter", func(t *testing.T) {
		w := doGet(r, "/me/subscriptions/posts?title=fishing", token)
		var resp []handler.PostResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp) != 1 || resp[0].Title != "bob on fishing" {
			t.Errorf("expected exactly 'bob on fishing', got %v", resp)
		}
	})

	t.Run("Without token", func(t *testing.T) {
		w := doGet(r, "/me/subscriptions/posts", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", w.Code)
		}
	})
}
