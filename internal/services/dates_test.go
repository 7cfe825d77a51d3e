package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"dating-backend/internal/metrics"
	"dating-backend/internal/models"
	"dating-backend/internal/repository"
	"dating-backend/internal/repository/memory"
	"dating-backend/mocks"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putDate(t *testing.T, store *memory.Store, id, a, b string, status models.Status) {
	t.Helper()
	require.NoError(t, store.CreateDate(context.Background(), &models.DateSuggestion{
		ID:        id,
		UserAID:   a,
		UserBID:   b,
		Status:    status,
		Timestamp: time.Now().UTC(),
	}))
}

func ids(dates []*models.DateSuggestion) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.ID)
	}
	return out
}

func TestDateService_AcceptAndDecline(t *testing.T) {
	store := memory.New()
	putDate(t, store, "d1", "a", "b", models.StatusSuggested)
	putDate(t, store, "d2", "a", "c", models.StatusSuggested)
	svc := NewDateService(store, models.PolicyIdempotent)
	ctx := context.Background()

	date, err := svc.Accept(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, date.Status)

	got, err := svc.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, got.Status)

	date, err = svc.Decline(ctx, "d2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeclined, date.Status)

	got, err = svc.Get(ctx, "d2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeclined, got.Status)
}

func TestDateService_MissingRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	dates := mocks.NewMockDateStore(ctrl)
	svc := NewDateService(dates, models.PolicyIdempotent)

	dates.EXPECT().GetDate(gomock.Any(), "missing").Return(nil, repository.ErrNotFound).Times(3)
	// no UpdateDate expectation: a missing record must not be written

	_, err := svc.Decline(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Accept(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDateService_TransitionPolicies(t *testing.T) {
	tests := []struct {
		name       string
		policy     models.TransitionPolicy
		first      models.Status
		second     models.Status
		wantErr    error
		wantStatus models.Status
	}{
		{"idempotent repeat", models.PolicyIdempotent, models.StatusAccepted, models.StatusAccepted, nil, models.StatusAccepted},
		{"idempotent flip", models.PolicyIdempotent, models.StatusAccepted, models.StatusDeclined, ErrInvalidTransition, models.StatusAccepted},
		{"reject repeat", models.PolicyReject, models.StatusAccepted, models.StatusAccepted, ErrInvalidTransition, models.StatusAccepted},
		{"reject flip", models.PolicyReject, models.StatusDeclined, models.StatusAccepted, ErrInvalidTransition, models.StatusDeclined},
		{"override flip", models.PolicyOverride, models.StatusAccepted, models.StatusDeclined, nil, models.StatusDeclined},
		{"override repeat", models.PolicyOverride, models.StatusDeclined, models.StatusDeclined, nil, models.StatusDeclined},
	}

	decide := func(svc *DateService, status models.Status) (*models.DateSuggestion, error) {
		if status == models.StatusAccepted {
			return svc.Accept(context.Background(), "d1")
		}
		return svc.Decline(context.Background(), "d1")
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New()
			putDate(t, store, "d1", "a", "b", models.StatusSuggested)
			svc := NewDateService(store, tt.policy)

			_, err := decide(svc, tt.first)
			require.NoError(t, err)

			_, err = decide(svc, tt.second)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			got, err := svc.Get(context.Background(), "d1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestDateService_NoOpDoesNotWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	dates := mocks.NewMockDateStore(ctrl)
	notifier := &recordingNotifier{}
	svc := NewDateService(dates, models.PolicyIdempotent)
	svc.SetNotifier(notifier)

	dates.EXPECT().GetDate(gomock.Any(), "d1").Return(&models.DateSuggestion{
		ID: "d1", UserAID: "a", UserBID: "b", Status: models.StatusAccepted,
	}, nil)

	date, err := svc.Accept(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, date.Status)
	assert.Empty(t, notifier.changed)
}

func TestDateService_WriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	dates := mocks.NewMockDateStore(ctrl)
	svc := NewDateService(dates, models.PolicyIdempotent)

	dates.EXPECT().GetDate(gomock.Any(), "d1").Return(&models.DateSuggestion{
		ID: "d1", UserAID: "a", UserBID: "b", Status: models.StatusSuggested,
	}, nil)
	dates.EXPECT().UpdateDate(gomock.Any(), "d1", gomock.Any()).Return(errors.New("connection reset"))

	_, err := svc.Accept(context.Background(), "d1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "connection reset")
}

func TestDateService_NotifiesAndCounts(t *testing.T) {
	store := memory.New()
	putDate(t, store, "d1", "a", "b", models.StatusSuggested)
	notifier := &recordingNotifier{}
	reg := metrics.New()

	svc := NewDateService(store, models.PolicyIdempotent)
	svc.SetNotifier(notifier)
	svc.SetMetrics(reg)

	_, err := svc.Accept(context.Background(), "d1")
	require.NoError(t, err)
	_, err = svc.Accept(context.Background(), "d1")
	require.NoError(t, err)

	require.Len(t, notifier.changed, 1)
	assert.Equal(t, models.StatusAccepted, notifier.changed[0].Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.DateTransitions.WithLabelValues("accepted")))
}

func TestDateService_ListByUserMatchesBruteForce(t *testing.T) {
	store := memory.New()
	svc := NewDateService(store, models.PolicyIdempotent)
	rng := rand.New(rand.NewSource(99))
	users := []string{"u0", "u1", "u2", "u3", "u4", "u5"}
	statuses := []models.Status{models.StatusSuggested, models.StatusAccepted, models.StatusDeclined}

	var all []models.DateSuggestion
	for i := range 300 {
		a := rng.Intn(len(users))
		b := rng.Intn(len(users) - 1)
		if b >= a {
			b++
		}
		d := models.DateSuggestion{
			ID:      fmt.Sprintf("d%03d", i),
			UserAID: users[a],
			UserBID: users[b],
			Status:  statuses[rng.Intn(len(statuses))],
		}
		putDate(t, store, d.ID, d.UserAID, d.UserBID, d.Status)
		all = append(all, d)
	}

	ctx := context.Background()
	for _, u := range append(users, "nobody") {
		var want, wantAccepted []string
		for _, d := range all {
			if d.UserAID == u || d.UserBID == u {
				want = append(want, d.ID)
				if d.Status == models.StatusAccepted {
					wantAccepted = append(wantAccepted, d.ID)
				}
			}
		}

		got, err := svc.ListByUser(ctx, u)
		require.NoError(t, err)
		assert.ElementsMatch(t, want, ids(got), "user %s", u)

		accepted, err := svc.ListByUserAndStatus(ctx, u, "accepted")
		require.NoError(t, err)
		assert.ElementsMatch(t, wantAccepted, ids(accepted), "user %s", u)
		assert.Subset(t, ids(got), ids(accepted))
		for _, d := range accepted {
			assert.Equal(t, models.StatusAccepted, d.Status)
		}
	}
}

func TestDateService_ListByUnknownStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	dates := mocks.NewMockDateStore(ctrl)
	svc := NewDateService(dates, models.PolicyIdempotent)

	for _, status := range []string{"Accepted", "ACCEPTED", "pending", ""} {
		got, err := svc.ListByUserAndStatus(context.Background(), "a", status)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestDateService_Update(t *testing.T) {
	store := memory.New()
	putDate(t, store, "d1", "a", "b", models.StatusAccepted)
	svc := NewDateService(store, models.PolicyReject)
	ctx := context.Background()

	// administrative updates bypass the transition policy
	suggested := models.StatusSuggested
	c := "c"
	date, err := svc.Update(ctx, "d1", repository.DatePatch{Status: &suggested, UserBID: &c})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuggested, date.Status)
	assert.Equal(t, "c", date.UserBID)

	list, err := svc.ListByUser(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, ids(list))

	_, err = svc.Update(ctx, "d1", repository.DatePatch{})
	require.ErrorIs(t, err, ErrValidation)

	bogus := models.Status("maybe")
	_, err = svc.Update(ctx, "d1", repository.DatePatch{Status: &bogus})
	require.ErrorIs(t, err, ErrValidation)

	a := "a"
	_, err = svc.Update(ctx, "d1", repository.DatePatch{UserBID: &a})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, "missing", repository.DatePatch{Status: &suggested})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDateService_Delete(t *testing.T) {
	store := memory.New()
	putDate(t, store, "d1", "a", "b", models.StatusSuggested)
	svc := NewDateService(store, models.PolicyIdempotent)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "d1"))
	_, err := svc.Get(ctx, "d1")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "d1"), ErrNotFound)
}

func TestMatchAcceptListScenario(t *testing.T) {
	store := memory.New()
	seedUsers(t, store, "A", "B", "C")
	ctx := context.Background()

	matcher := newTestMatcher(store, MatcherOptions{})
	created, err := matcher.RunCycle(ctx)
	require.NoError(t, err)
	require.Len(t, created, 1)

	var total int
	for _, u := range []string{"A", "B", "C"} {
		list, err := store.ListDatesByUser(ctx, u, nil)
		require.NoError(t, err)
		total += len(list)
	}
	// the single record is seen by exactly its two participants
	assert.Equal(t, 2, total)

	date := created[0]
	assert.Contains(t, []string{"A", "B", "C"}, date.UserAID)
	assert.Contains(t, []string{"A", "B", "C"}, date.UserBID)
	assert.NotEqual(t, date.UserAID, date.UserBID)
	assert.Equal(t, models.StatusSuggested, date.Status)

	svc := NewDateService(store, models.PolicyIdempotent)
	_, err = svc.Accept(ctx, date.ID)
	require.NoError(t, err)

	got, err := svc.Get(ctx, date.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, got.Status)

	forA, err := svc.ListByUser(ctx, "A")
	require.NoError(t, err)
	if date.HasParticipant("A") {
		assert.Equal(t, []string{date.ID}, ids(forA))
	} else {
		assert.Empty(t, forA)
	}
}
