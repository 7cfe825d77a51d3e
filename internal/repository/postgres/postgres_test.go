package postgres

// Integration tests against a real PostgreSQL started with testcontainers-go.
//
//   GO_TEST_INTEGRATION=1 go test ./internal/repository/postgres -v -count=1

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "dating"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(90 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/dating?sslmode=disable", host, port.Port())
	s, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	return s
}

func TestStore_Integration(t *testing.T) {
	s := startPostgres(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	a, b, c := uuid.NewString(), uuid.NewString(), uuid.NewString()
	for i, id := range []string{a, b, c} {
		require.NoError(t, s.CreateUser(ctx, &models.User{ID: id, Name: fmt.Sprintf("u%d", i), CreatedAt: now.Add(time.Duration(i) * time.Second)}))
	}
	require.ErrorIs(t, s.CreateUser(ctx, &models.User{ID: a, CreatedAt: now}), repository.ErrConflict)

	t.Run("users", func(t *testing.T) {
		ids, err := s.ListUserIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{a, b, c}, ids)

		age := 28
		interests := []string{"climbing", "jazz"}
		require.NoError(t, s.UpdateUser(ctx, a, repository.UserPatch{Age: &age, Interests: &interests}))

		u, err := s.GetUser(ctx, a)
		require.NoError(t, err)
		require.NotNil(t, u.Age)
		assert.Equal(t, 28, *u.Age)
		assert.Equal(t, interests, u.Interests)
		assert.Empty(t, u.PhotoURLs)
		assert.Nil(t, u.PushToken)

		_, err = s.GetUser(ctx, "missing")
		require.ErrorIs(t, err, repository.ErrNotFound)
		require.ErrorIs(t, s.UpdateUser(ctx, "missing", repository.UserPatch{Age: &age}), repository.ErrNotFound)
	})

	t.Run("dates", func(t *testing.T) {
		d1 := &models.DateSuggestion{ID: uuid.NewString(), UserAID: a, UserBID: b, Status: models.StatusSuggested, Timestamp: now}
		d2 := &models.DateSuggestion{ID: uuid.NewString(), UserAID: c, UserBID: a, Status: models.StatusAccepted, Timestamp: now}
		d3 := &models.DateSuggestion{ID: uuid.NewString(), UserAID: b, UserBID: c, Status: models.StatusSuggested, Timestamp: now}
		for _, d := range []*models.DateSuggestion{d1, d2, d3} {
			require.NoError(t, s.CreateDate(ctx, d))
		}

		// distinct participants are enforced by the table as well
		err := s.CreateDate(ctx, &models.DateSuggestion{ID: uuid.NewString(), UserAID: a, UserBID: a, Status: models.StatusSuggested, Timestamp: now})
		require.Error(t, err)

		got, err := s.GetDate(ctx, d1.ID)
		require.NoError(t, err)
		assert.Equal(t, d1.UserAID, got.UserAID)
		assert.Equal(t, models.StatusSuggested, got.Status)

		list, err := s.ListDatesByUser(ctx, a, nil)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		accepted := models.StatusAccepted
		list, err = s.ListDatesByUser(ctx, a, &accepted)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, d2.ID, list[0].ID)

		unknown := models.Status("ACCEPTED")
		list, err = s.ListDatesByUser(ctx, a, &unknown)
		require.NoError(t, err)
		assert.Empty(t, list)

		exists, err := s.PairExists(ctx, b, a)
		require.NoError(t, err)
		assert.True(t, exists)

		declined := models.StatusDeclined
		require.NoError(t, s.UpdateDate(ctx, d1.ID, repository.DatePatch{Status: &declined}))
		got, err = s.GetDate(ctx, d1.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusDeclined, got.Status)

		require.NoError(t, s.DeleteDate(ctx, d1.ID))
		require.ErrorIs(t, s.DeleteDate(ctx, d1.ID), repository.ErrNotFound)
		_, err = s.GetDate(ctx, d1.ID)
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("credentials", func(t *testing.T) {
		require.NoError(t, s.CreateCredential(ctx, &models.Credential{UserID: a, Email: "Ann@Example.com", PasswordHash: "h", CreatedAt: now}))
		require.ErrorIs(t, s.CreateCredential(ctx, &models.Credential{UserID: b, Email: "ann@example.com", PasswordHash: "h", CreatedAt: now}), repository.ErrConflict)

		cred, err := s.GetCredentialByEmail(ctx, "ANN@example.com")
		require.NoError(t, err)
		assert.Equal(t, a, cred.UserID)

		require.NoError(t, s.DeleteCredential(ctx, a))
		_, err = s.GetCredentialByEmail(ctx, "ann@example.com")
		require.ErrorIs(t, err, repository.ErrNotFound)
	})
}
