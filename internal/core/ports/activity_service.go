package ports

import (
	"context"
	"time"
)

// AccountEventInput is the DTO handed to the activity pipeline.
type AccountEventInput struct {
	UserID string
	Action string
	Detail string
	At     time.Time
}

// ActivityService processes a single account event off the dispatcher.
type ActivityService interface {
	Process(ctx context.Context, in AccountEventInput) error
}

// ActivityRecorder is the narrow enqueue-side interface the account service
// uses; recording is fire-and-forget and never blocks a request on
// persistence.
type ActivityRecorder interface {
	Enqueue(event AccountEventInput)
}
