package ports

import (
	"context"

	"github.com/hirepath/jobportal-api/internal/core/domain"
)

// EventRepository persists the append-only account activity trail.
type EventRepository interface {
	Insert(ctx context.Context, event *domain.AccountEvent) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.AccountEvent, error)
}
