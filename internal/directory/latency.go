package directory

import (
	"context"
	"time"

	"github.com/oakwood-commons/contactpicker/internal/contacts"
)

// latencyService delays every call to an underlying Service.
type latencyService struct {
	next  Service
	delay time.Duration
}

// WithLatency returns a Service that waits delay before each call to next.
// Waiting honours ctx cancellation. A non-positive delay returns next as is.
func WithLatency(next Service, delay time.Duration) Service {
	if delay <= 0 {
		return next
	}
	return &latencyService{next: next, delay: delay}
}

func (s *latencyService) wait(ctx context.Context) error {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *latencyService) SearchByName(ctx context.Context, q NameQuery) ([]contacts.Contact, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.next.SearchByName(ctx, q)
}

func (s *latencyService) SearchByState(ctx context.Context, q StateQuery) ([]contacts.Contact, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.next.SearchByState(ctx, q)
}

func (s *latencyService) SearchByDistance(ctx context.Context, q DistanceQuery) ([]contacts.Contact, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.next.SearchByDistance(ctx, q)
}

func (s *latencyService) Count(ctx context.Context, q CountQuery) (int, error) {
	if err := s.wait(ctx); err != nil {
		return 0, err
	}
	return s.next.Count(ctx, q)
}

func (s *latencyService) AssignContactToCase(ctx context.Context, a Assignment) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	return s.next.AssignContactToCase(ctx, a)
}

func (s *latencyService) GetCase(ctx context.Context, caseID string) (contacts.Case, error) {
	if err := s.wait(ctx); err != nil {
		return contacts.Case{}, err
	}
	return s.next.GetCase(ctx, caseID)
}
