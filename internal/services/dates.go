package services

import (
	"context"
	"fmt"

	"dating-backend/internal/metrics"
	"dating-backend/internal/models"
	"dating-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// DateService records decisions on suggestions and serves suggestion queries.
//
// Accept and Decline read the record and then write the new status. The store
// gives no isolation across the two steps, so concurrent decisions on the same
// suggestion race and the last write wins.
type DateService struct {
	dates    repository.DateStore
	policy   models.TransitionPolicy
	notifier Notifier
	metrics  *metrics.Metrics
}

// NewDateService creates a new date service
func NewDateService(dates repository.DateStore, policy models.TransitionPolicy) *DateService {
	if policy == "" {
		policy = models.PolicyIdempotent
	}
	return &DateService{
		dates:  dates,
		policy: policy,
	}
}

// SetNotifier sets the notifier informed about written decisions (optional)
func (s *DateService) SetNotifier(n Notifier) {
	s.notifier = n
}

// SetMetrics sets the metrics collectors (optional)
func (s *DateService) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// Policy returns the configured transition policy
func (s *DateService) Policy() models.TransitionPolicy {
	return s.policy
}

// Get returns a suggestion by id
func (s *DateService) Get(ctx context.Context, id string) (*models.DateSuggestion, error) {
	date, err := s.dates.GetDate(ctx, id)
	if err != nil {
		return nil, storeErr("services.DateService.Get", err)
	}
	return date, nil
}

// Accept records an accepted decision
func (s *DateService) Accept(ctx context.Context, id string) (*models.DateSuggestion, error) {
	return s.decide(ctx, id, models.StatusAccepted)
}

// Decline records a declined decision
func (s *DateService) Decline(ctx context.Context, id string) (*models.DateSuggestion, error) {
	return s.decide(ctx, id, models.StatusDeclined)
}

func (s *DateService) decide(ctx context.Context, id string, target models.Status) (*models.DateSuggestion, error) {
	const op = "services.DateService.decide"

	date, err := s.dates.GetDate(ctx, id)
	if err != nil {
		return nil, storeErr(op, err)
	}

	next, changed, err := models.Transition(date.Status, target, s.policy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !changed {
		return date, nil
	}

	if err := s.dates.UpdateDate(ctx, id, repository.DatePatch{Status: &next}); err != nil {
		return nil, storeErr(op, err)
	}
	date.Status = next

	s.metrics.Transitioned(string(next))
	log.Info().Str("date_id", id).Str("status", string(next)).Msg("Date decision recorded")

	if s.notifier != nil {
		s.notifier.DateStatusChanged(ctx, date)
	}
	return date, nil
}

// ListByUser returns every suggestion the user takes part in, in no particular order
func (s *DateService) ListByUser(ctx context.Context, userID string) ([]*models.DateSuggestion, error) {
	dates, err := s.dates.ListDatesByUser(ctx, userID, nil)
	if err != nil {
		return nil, storeErr("services.DateService.ListByUser", err)
	}
	return dates, nil
}

// ListByUserAndStatus returns the suggestions of a user with exactly the given
// status. An unknown status matches nothing.
func (s *DateService) ListByUserAndStatus(ctx context.Context, userID, status string) ([]*models.DateSuggestion, error) {
	st := models.Status(status)
	if !st.Valid() {
		return []*models.DateSuggestion{}, nil
	}

	dates, err := s.dates.ListDatesByUser(ctx, userID, &st)
	if err != nil {
		return nil, storeErr("services.DateService.ListByUserAndStatus", err)
	}
	return dates, nil
}

// Update patches a suggestion administratively. It bypasses the transition
// policy but keeps the two participants distinct.
func (s *DateService) Update(ctx context.Context, id string, patch repository.DatePatch) (*models.DateSuggestion, error) {
	const op = "services.DateService.Update"

	if patch.Empty() {
		return nil, Invalid("no fields to update")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, Invalid("unknown status %q", *patch.Status)
	}
	if (patch.UserAID != nil && *patch.UserAID == "") || (patch.UserBID != nil && *patch.UserBID == "") {
		return nil, Invalid("user ids must not be empty")
	}

	date, err := s.dates.GetDate(ctx, id)
	if err != nil {
		return nil, storeErr(op, err)
	}
	patch.Apply(date)
	if date.UserAID == date.UserBID {
		return nil, Invalid("a date needs two different users")
	}

	if err := s.dates.UpdateDate(ctx, id, patch); err != nil {
		return nil, storeErr(op, err)
	}

	log.Info().Str("date_id", id).Msg("Date updated")
	return date, nil
}

// Delete removes a suggestion
func (s *DateService) Delete(ctx context.Context, id string) error {
	if err := s.dates.DeleteDate(ctx, id); err != nil {
		return storeErr("services.DateService.Delete", err)
	}
	log.Info().Str("date_id", id).Msg("Date deleted")
	return nil
}
