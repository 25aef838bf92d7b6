package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/auth"
	api "blogapi/internal/http"
	handler "blogapi/internal/http/handlers"
	rl "blogapi/internal/http/rate_limiter"
	"blogapi/internal/models"
	"blogapi/internal/repo"
)

// testPassword is shared by every seeded account so a single bcrypt hash
// can be reused across the suite.
const testPassword = "Admin_12345"

var (
	token     string
	adminHash string
	usersRepo *repo.InMemoryUserRepository
	postsRepo *repo.InMemoryPostRepository
)

func init() {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("error hashing test password: %v", err))
	}
	adminHash = string(hash)

	setupTestRepos()
	r := api.NewRouter()

	token, err = generateToken(r, "admin", testPassword)
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos() {
	usersRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(usersRepo)

	postsRepo = repo.NewInMemoryPostRepository()
	handler.SetPostRepo(postsRepo)

	postsRepo.SetUserRepository(usersRepo)
	usersRepo.SetPostCounter(postsRepo.CountByUser)

	usersRepo.Create(models.User{
		Username:     "admin",
		PasswordHash: adminHash,
		IsActive:     true,
	})
}

func clearAllPosts() {
	postsRepo.Clear()
}

// clearAllUsersExceptAdmin resets the user repository and reseeds the admin
// account. The admin keeps ID 1, so the suite token stays valid.
func clearAllUsersExceptAdmin() {
	usersRepo.Clear()
	usersRepo.Create(models.User{
		Username:     "admin",
		PasswordHash: adminHash,
		IsActive:     true,
	})
}

// addUser seeds an active account directly in the repository, bypassing the
// rate-limited sign-up endpoint. Its password is testPassword.
func addUser(username string) models.User {
	user, err := usersRepo.Create(models.User{
		Username:     username,
		PasswordHash: adminHash,
		IsActive:     true,
	})
	if err != nil {
		panic(fmt.Sprintf("error seeding user %q: %v", username, err))
	}
	return user
}

func tokenFor(user models.User) string {
	t, err := auth.GenerateToken(user)
	if err != nil {
		panic(fmt.Sprintf("error generating token for %q: %v", user.Username, err))
	}
	return t
}

func generateToken(r http.Handler, username, password string) (string, error) {
	w := login(r, username, password)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func signUp(r http.Handler, payload handler.SignUpRequest) *httptest.ResponseRecorder {
	rl.CleanupAllVisitors()
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/sign-up", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(r http.Handler, username, password string) *httptest.ResponseRecorder {
	rl.CleanupAllVisitors()
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createPost(r http.Handler, bearer string, p handler.PostRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/posts", bearer, p)
}

func doJSON(r http.Handler, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doGet(r http.Handler, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
