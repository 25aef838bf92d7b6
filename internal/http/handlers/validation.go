package handlers

import (
	"strings"
	"time"

	"blogapi/internal/auth"
)

const (
	maxTitleLength   = 100
	maxContentLength = 1000
	birthDateLayout  = "2006-01-02"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateCredentials(username, password string) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(username) == "" {
		errs = append(errs, ValidationError{Field: "Username", Description: "Username is required"})
	} else if len(username) < 3 || len(username) > 100 {
		errs = append(errs, ValidationError{Field: "Username", Description: "Username must be between 3 and 100 characters"})
	}
	if !auth.PasswordIsStrong(password) {
		errs = append(errs, ValidationError{Field: "Password", Description: "Password is not strong enough"})
	}
	return errs
}

func validateProfile(birthDate string) []ValidationError {
	errs := []ValidationError{}
	if birthDate != "" {
		if _, err := time.Parse(birthDateLayout, birthDate); err != nil {
			errs = append(errs, ValidationError{Field: "BirthDate", Description: "Birth date must be formatted as YYYY-MM-DD"})
		}
	}
	return errs
}

func validatePost(p PostRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, ValidationError{Field: "Title", Description: "Title is required"})
	} else if len(p.Title) > maxTitleLength {
		errs = append(errs, ValidationError{Field: "Title", Description: "Title cannot exceed 100 characters"})
	}
	if strings.TrimSpace(p.Content) == "" {
		errs = append(errs, ValidationError{Field: "Content", Description: "Content is required"})
	} else if len(p.Content) > maxContentLength {
		errs = append(errs, ValidationError{Field: "Content", Description: "Content cannot exceed 1000 characters"})
	}
	return errs
}
