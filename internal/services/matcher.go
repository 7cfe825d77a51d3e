package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"dating-backend/internal/metrics"
	"dating-backend/internal/models"
	"dating-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultMatchInterval = time.Hour

// MatcherOptions configures a Matcher. Zero values fall back to defaults.
type MatcherOptions struct {
	Interval          time.Duration
	PairsPerCycle     int
	SkipExistingPairs bool

	// Lock, when set, makes sure only one replica runs a cycle at a time
	Lock    CycleLock
	LockTTL time.Duration

	Notifier Notifier
	Metrics  *metrics.Metrics

	Rand  *rand.Rand
	Now   func() time.Time
	NewID func() string
}

// Matcher periodically pairs two random distinct users into a new suggestion
type Matcher struct {
	users repository.UserStore
	dates repository.DateStore
	opts  MatcherOptions

	// mu serializes cycles and guards opts.Rand
	mu sync.Mutex
}

// NewMatcher creates a matcher
func NewMatcher(users repository.UserStore, dates repository.DateStore, opts MatcherOptions) *Matcher {
	if opts.Interval <= 0 {
		opts.Interval = defaultMatchInterval
	}
	if opts.PairsPerCycle <= 0 {
		opts.PairsPerCycle = 1
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 5 * time.Minute
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	return &Matcher{
		users: users,
		dates: dates,
		opts:  opts,
	}
}

// Run executes one cycle immediately and then one per interval until ctx is
// cancelled. A failed cycle is logged and retried on the next tick.
func (m *Matcher) Run(ctx context.Context) error {
	log.Info().
		Dur("interval", m.opts.Interval).
		Int("pairs_per_cycle", m.opts.PairsPerCycle).
		Bool("skip_existing_pairs", m.opts.SkipExistingPairs).
		Msg("Matcher started")

	ticker := time.NewTicker(m.opts.Interval)
	defer ticker.Stop()

	if ctx.Err() == nil {
		m.tick(ctx, 1)
	}

	for cycle := 2; ; cycle++ {
		select {
		case <-ctx.Done():
			log.Info().Msg("Matcher stopped")
			return nil
		case <-ticker.C:
			m.tick(ctx, cycle)
		}
	}
}

func (m *Matcher) tick(ctx context.Context, cycle int) {
	created, result, err := m.runCycle(ctx)
	m.opts.Metrics.CycleDone(result, len(created))

	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Error().Err(err).Int("cycle", cycle).Msg("Matching cycle failed")
		return
	}

	log.Debug().
		Int("cycle", cycle).
		Str("result", result).
		Int("created", len(created)).
		Msg("Matching cycle finished")
}

// RunCycle runs a single matching cycle and returns the suggestions it wrote.
// Fewer than two users is not an error and produces nothing.
func (m *Matcher) RunCycle(ctx context.Context) ([]models.DateSuggestion, error) {
	created, _, err := m.runCycle(ctx)
	return created, err
}

func (m *Matcher) runCycle(ctx context.Context) ([]models.DateSuggestion, string, error) {
	const op = "services.Matcher.RunCycle"

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.opts.Lock != nil {
		token, ok, err := m.opts.Lock.TryLock(ctx, m.opts.LockTTL)
		if err != nil {
			return nil, metrics.CycleError, fmt.Errorf("%s: acquire lock: %w", op, err)
		}
		if !ok {
			log.Debug().Msg("Matching cycle held by another instance")
			return nil, metrics.CycleSkipped, nil
		}
		defer func() {
			if err := m.opts.Lock.Unlock(context.WithoutCancel(ctx), token); err != nil {
				log.Warn().Err(err).Msg("Failed to release matcher lock")
			}
		}()
	}

	ids, err := m.users.ListUserIDs(ctx)
	if err != nil {
		return nil, metrics.CycleError, fmt.Errorf("%s: list users: %w", op, err)
	}
	if len(ids) < 2 {
		return nil, metrics.CycleSkipped, nil
	}

	created := make([]models.DateSuggestion, 0, m.opts.PairsPerCycle)
	for range m.opts.PairsPerCycle {
		a, b := m.pickPair(ids)
		if a == b {
			log.Debug().Str("user_id", a).Msg("Duplicate user id in scan, pair skipped")
			continue
		}

		if m.opts.SkipExistingPairs {
			exists, err := m.dates.PairExists(ctx, a, b)
			if err != nil {
				return created, metrics.CycleError, fmt.Errorf("%s: check pair: %w", op, err)
			}
			if exists {
				log.Debug().Str("user_a_id", a).Str("user_b_id", b).Msg("Pair already suggested")
				continue
			}
		}

		date := models.DateSuggestion{
			ID:        m.opts.NewID(),
			UserAID:   a,
			UserBID:   b,
			Status:    models.StatusSuggested,
			Timestamp: m.opts.Now().UTC(),
		}
		if err := m.dates.CreateDate(ctx, &date); err != nil {
			return created, metrics.CycleError, fmt.Errorf("%s: create date: %w", op, err)
		}
		created = append(created, date)

		log.Info().
			Str("date_id", date.ID).
			Str("user_a_id", a).
			Str("user_b_id", b).
			Msg("Date suggested")

		if m.opts.Notifier != nil {
			m.opts.Notifier.DateSuggested(ctx, &date)
		}
	}

	if len(created) == 0 {
		return created, metrics.CycleSkipped, nil
	}
	return created, metrics.CycleOK, nil
}

// pickPair draws two different positions uniformly from ids. The returned
// values can still be equal if the scan returned the same id twice.
func (m *Matcher) pickPair(ids []string) (string, string) {
	n := len(ids)
	i := m.opts.Rand.Intn(n)
	j := m.opts.Rand.Intn(n - 1)
	if j >= i {
		j++
	}
	return ids[i], ids[j]
}
