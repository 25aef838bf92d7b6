package handlers

import (
	"errors"
	"log"
	"net/http"

	"blogapi/internal/auth"
	"blogapi/internal/models"
	"blogapi/internal/repo"
)

// HealthHandler godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// SignUpHandler godoc
// @Summary Register a new user and return a token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body SignUpRequest true "Credentials and profile"
// @Success 201 {object} RegisterResult
// @Failure 400 {array} ValidationError
// @Failure 409 {string} string "Username already registered"
// @Router /sign-up [post]
func SignUpHandler(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateCredentials(req.Username, req.Password)
	validationErrors = append(validationErrors, validateProfile(req.BirthDate)...)
	if len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	if _, err := userRepo.GetByUsername(req.Username); err == nil {
		http.Error(w, "username already registered", http.StatusConflict)
		return
	} else if !errors.Is(err, repo.ErrUserNotFound) {
		http.Error(w, "failed to register user", http.StatusInternalServerError)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username:       req.Username,
		PasswordHash:   hashed,
		IsActive:       true,
		ShortBiography: req.ShortBiography,
		BirthDate:      req.BirthDate,
		Country:        req.Country,
		City:           req.City,
	}

	created, err := userRepo.Create(user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "username already registered", http.StatusConflict)
			return
		}
		http.Error(w, "failed to register user", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateToken(created)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	err = writeJSON(w, http.StatusCreated, RegisterResult{
		Message: "user registered",
		Token:   token,
		User:    toUserResponse(created),
	})
	if err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// LoginHandler godoc
// @Summary Authenticate user and return a token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials CredentialsRequest
	if err := readJSON(w, r, &credentials); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByUsername(credentials.Username)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if !auth.CheckPassword(credentials.Password, user.PasswordHash) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if !user.IsActive {
		http.Error(w, "inactive user", http.StatusForbidden)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, LoginResult{Token: token}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
