package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"blogapi/internal/models"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func toUserResponse(u models.User) UserResponse {
	return UserResponse{
		Id:             u.ID,
		Username:       u.Username,
		IsActive:       u.IsActive,
		ShortBiography: u.ShortBiography,
		BirthDate:      u.BirthDate,
		Country:        u.Country,
		City:           u.City,
	}
}

func toPostResponse(p models.Post) PostResponse {
	return PostResponse{
		Id:            p.ID,
		UserId:        p.UserID,
		Username:      p.Username,
		Title:         p.Title,
		Content:       p.Content,
		DatePublished: p.DatePublished.Format(time.RFC3339),
	}
}

func toPostResponses(posts []models.Post) []PostResponse {
	responses := make([]PostResponse, len(posts))
	for i, p := range posts {
		responses[i] = toPostResponse(p)
	}
	return responses
}

func interestNames(interests []models.Interest) []string {
	names := make([]string, len(interests))
	for i, interest := range interests {
		names[i] = interest.Name
	}
	return names
}
