package ports

import (
	"context"

	"github.com/hirepath/jobportal-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
// Lookup methods return domain.ErrUserNotFound when no record matches.
// Create returns domain.ErrUserExists on a storage-level uniqueness
// violation (email, adharcard or pancard).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByAadhaar(ctx context.Context, aadhaar string) (*domain.User, error)
	FindByPAN(ctx context.Context, pan string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
