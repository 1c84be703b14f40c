package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hirepath/jobportal-api/internal/core/domain"
	"github.com/hirepath/jobportal-api/internal/core/ports"
)

type activityService struct {
	events ports.EventRepository
	log    zerolog.Logger
}

// NewActivityService returns the ActivityService that persists account
// events dequeued by the dispatcher.
func NewActivityService(events ports.EventRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{events: events, log: log}
}

// Process persists a single account event. Failures are logged by the
// dispatcher and never retried.
func (s *activityService) Process(ctx context.Context, in ports.AccountEventInput) error {
	at := in.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	event := &domain.AccountEvent{
		UserID: in.UserID,
		Action: in.Action,
		Detail: in.Detail,
		At:     at,
	}

	if err := s.events.Insert(ctx, event); err != nil {
		return fmt.Errorf("insert account event: %w", err)
	}

	s.log.Debug().
		Str("user_id", in.UserID).
		Str("action", in.Action).
		Msg("account event recorded")

	return nil
}
