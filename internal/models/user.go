package models

import "strings"

// User is the profile resolved from the identity provider for an
// authenticated request. It is never persisted or cached by this service;
// posts only keep a snapshot of these fields.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	ImageURL string `json:"imageUrl"`
}

// NameInitials derives the avatar-fallback initials for a display name:
// the first letter of the first and last space-separated tokens, uppercased.
// A single token yields one letter, an empty name an empty string.
func NameInitials(name string) string {
	parts := strings.Split(strings.ToUpper(name), " ")
	if len(parts) == 1 {
		return firstLetter(parts[0])
	}
	return firstLetter(parts[0]) + firstLetter(parts[len(parts)-1])
}

func firstLetter(token string) string {
	for _, r := range token {
		return string(r)
	}
	return ""
}
