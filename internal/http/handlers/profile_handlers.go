package handlers

import (
	"errors"
	"log"
	"net/http"

	"blogapi/internal/auth"
	"blogapi/internal/models"
	"blogapi/internal/repo"
)

func buildProfile(user models.User) (ProfileResponse, error) {
	counts, err := userRepo.Counts(user.ID)
	if err != nil {
		return ProfileResponse{}, err
	}
	interests, err := userRepo.GetInterests(user.ID)
	if err != nil {
		return ProfileResponse{}, err
	}

	return ProfileResponse{
		UserResponse:       toUserResponse(user),
		Interests:          interestNames(interests),
		PostsCount:         counts.Posts,
		SubscribersCount:   counts.Subscribers,
		SubscriptionsCount: counts.Subscriptions,
	}, nil
}

// GetMyProfileHandler godoc
// @Summary Get the current user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {string} string "Unauthorized"
// @Router /me/profile [get]
func GetMyProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, err := userRepo.GetByID(GetUserID(r))
	if err != nil {
		http.Error(w, "could not fetch profile", http.StatusInternalServerError)
		return
	}

	profile, err := buildProfile(user)
	if err != nil {
		http.Error(w, "could not fetch profile", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, profile); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// UpdateMyProfileHandler godoc
// @Summary Update the current user's profile and interests
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} ProfileResponse
// @Failure 400 {array} ValidationError
// @Failure 401 {string} string "Unauthorized"
// @Router /me/profile [put]
func UpdateMyProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req ProfileUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateProfile(req.BirthDate); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	user, err := userRepo.GetByID(GetUserID(r))
	if err != nil {
		http.Error(w, "could not fetch profile", http.StatusInternalServerError)
		return
	}

	user.ShortBiography = req.ShortBiography
	user.BirthDate = req.BirthDate
	user.Country = req.Country
	user.City = req.City

	updated, err := userRepo.Update(user)
	if err != nil {
		http.Error(w, "could not update profile", http.StatusInternalServerError)
		return
	}

	// Interests omitted from the payload are left untouched.
	if req.Interests != nil {
		if err := userRepo.SetInterests(updated.ID, req.Interests); err != nil {
			http.Error(w, "could not update interests", http.StatusInternalServerError)
			return
		}
	}

	profile, err := buildProfile(updated)
	if err != nil {
		http.Error(w, "could not fetch profile", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, profile); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// UpdateCredentialsHandler godoc
// @Summary Change the current user's username or password
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param credentials body CredentialsRequest true "New username and password"
// @Success 200 {object} RegisterResult
// @Failure 400 {array} ValidationError
// @Failure 401 {string} string "Unauthorized"
// @Failure 409 {string} string "Username taken"
// @Router /me/credentials [put]
func UpdateCredentialsHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateCredentials(req.Username, req.Password); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	user, err := userRepo.GetByID(GetUserID(r))
	if err != nil {
		http.Error(w, "could not fetch profile", http.StatusInternalServerError)
		return
	}

	if req.Username != user.Username {
		if _, err := userRepo.GetByUsername(req.Username); err == nil {
			http.Error(w, "that username is used by another user", http.StatusConflict)
			return
		} else if !errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "could not update credentials", http.StatusInternalServerError)
			return
		}
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	user.Username = req.Username
	user.PasswordHash = hashed

	updated, err := userRepo.Update(user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "that username is used by another user", http.StatusConflict)
			return
		}
		http.Error(w, "could not update credentials", http.StatusInternalServerError)
		return
	}

	// The old token still names the previous identity, so issue a fresh one.
	token, err := auth.GenerateToken(updated)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	err = writeJSON(w, http.StatusOK, RegisterResult{
		Message: "credentials updated",
		Token:   token,
		User:    toUserResponse(updated),
	})
	if err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
