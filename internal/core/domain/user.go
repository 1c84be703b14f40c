package domain

import (
	"strings"
	"time"
)

const (
	RoleJobSeeker = "job-seeker"
	RoleRecruiter = "recruiter"
)

// ValidRole reports whether role names one of the two supported account
// roles. Comparison is case-insensitive, matching the login contract.
func ValidRole(role string) bool {
	return strings.EqualFold(role, RoleJobSeeker) || strings.EqualFold(role, RoleRecruiter)
}

// Profile holds the mutable self-service portion of an account.
// Skills is an ordered list and is always replaced wholesale on update,
// never merged.
type Profile struct {
	ProfilePhoto       string   `json:"profilePhoto"`
	Bio                string   `json:"bio,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	Resume             string   `json:"resume,omitempty"`
	ResumeOriginalName string   `json:"resumeOriginalname,omitempty"`
}

// User models a registered account. Email, Aadhaar and PAN are each globally
// unique; Aadhaar and PAN are immutable after registration. PasswordHash is
// never serialized.
type User struct {
	ID           string    `json:"id"`
	Fullname     string    `json:"fullname"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber"`
	Aadhaar      string    `json:"adharcard"`
	PAN          string    `json:"pancard"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy of the user with the password hash cleared.
// Every user representation that leaves the service boundary must come from
// here; the json:"-" tag alone is not treated as sufficient.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
