package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hirepath/jobportal-api/internal/core/domain"
	"github.com/hirepath/jobportal-api/internal/core/ports"
)

func TestActivityService_Process(t *testing.T) {
	events := &stubEventRepo{}
	svc := NewActivityService(events, zerolog.Nop())

	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	err := svc.Process(context.Background(), ports.AccountEventInput{
		UserID: "user-1",
		Action: domain.ActionLoggedIn,
		At:     at,
	})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if len(events.events) != 1 {
		t.Fatalf("expected one event, got %d", len(events.events))
	}
	if events.events[0].Action != domain.ActionLoggedIn || !events.events[0].At.Equal(at) {
		t.Fatalf("unexpected event: %+v", events.events[0])
	}
}

func TestActivityService_Process_DefaultsTimestamp(t *testing.T) {
	events := &stubEventRepo{}
	svc := NewActivityService(events, zerolog.Nop())

	err := svc.Process(context.Background(), ports.AccountEventInput{
		UserID: "user-1",
		Action: domain.ActionRegistered,
	})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if events.events[0].At.IsZero() {
		t.Fatalf("expected timestamp to default to now")
	}
}
