package ports

import (
	"context"
	"io"

	"github.com/hirepath/jobportal-api/internal/core/domain"
)

// ImageInput is an in-memory image attachment.
type ImageInput struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ResumeInput is a streamed binary attachment.
type ResumeInput struct {
	Reader   io.Reader
	Size     int64
	Filename string
}

// RegisterInput carries the full registration form. All scalar fields are
// required; Image must be present.
type RegisterInput struct {
	Fullname    string
	Email       string
	PhoneNumber string
	Password    string
	Aadhaar     string
	PAN         string
	Role        string
	Image       *ImageInput
}

// UpdateProfileInput carries a partial profile mutation. Empty fields are
// left untouched; Skills is a comma-separated string that replaces the
// stored list wholesale when non-empty.
type UpdateProfileInput struct {
	Fullname    string
	Email       string
	PhoneNumber string
	Bio         string
	Skills      string
	Resume      *ResumeInput
}

// UserService is the account identity and profile mutation subsystem.
// All returned users are sanitized projections (no password hash).
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password, role string) (string, *domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	Activity(ctx context.Context, userID string, limit int) ([]domain.AccountEvent, error)
}
