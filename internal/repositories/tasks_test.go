package repositories

import (
	"context"
	"sync"
	"testing"

	"pomotrack-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUsers(t *testing.T, db *gorm.DB) (alice, bob *models.User) {
	t.Helper()
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice, err := repo.Create(ctx, "alice", "a@x.com", "h")
	require.NoError(t, err)
	bob, err = repo.Create(ctx, "bob", "b@x.com", "h")
	require.NoError(t, err)
	return alice, bob
}

func TestTaskRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	alice, _ := seedUsers(t, db)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task, err := repo.Create(ctx, alice.ID, "Write spec")
	require.NoError(t, err)
	require.NotZero(t, task.ID)
	require.False(t, task.Completed)
	require.Zero(t, task.PomodoroCount)

	tasks, err := repo.ListForOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "Write spec", tasks[0].Text)

	require.NoError(t, repo.Delete(ctx, alice.ID, task.ID))

	tasks, err = repo.ListForOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestTaskRepository_OwnershipScoping(t *testing.T) {
	db := newTestDB(t)
	alice, bob := seedUsers(t, db)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task, err := repo.Create(ctx, alice.ID, "alice's task")
	require.NoError(t, err)

	// Bob sees nothing and can't touch Alice's task; an existing but
	// foreign-owned task reports not found, never forbidden.
	tasks, err := repo.ListForOwner(ctx, bob.ID)
	require.NoError(t, err)
	require.Empty(t, tasks)

	require.ErrorIs(t, repo.Delete(ctx, bob.ID, task.ID), ErrTaskNotFound)

	_, err = repo.IncrementPomodoro(ctx, bob.ID, task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)

	// The failed attempts left Alice's task untouched.
	got, err := repo.IncrementPomodoro(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.PomodoroCount)
}

func TestTaskRepository_IncrementSequential(t *testing.T) {
	db := newTestDB(t)
	alice, _ := seedUsers(t, db)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task, err := repo.Create(ctx, alice.ID, "focus")
	require.NoError(t, err)

	const n = 5
	var last *models.Task
	for i := 0; i < n; i++ {
		last, err = repo.IncrementPomodoro(ctx, alice.ID, task.ID)
		require.NoError(t, err)
	}
	require.Equal(t, n, last.PomodoroCount)
}

func TestTaskRepository_IncrementConcurrent(t *testing.T) {
	db := newTestDB(t)
	alice, _ := seedUsers(t, db)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task, err := repo.Create(ctx, alice.ID, "contended")
	require.NoError(t, err)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementPomodoro(ctx, alice.ID, task.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		require.NoError(t, err)
		succeeded++
	}

	var got models.Task
	require.NoError(t, db.First(&got, task.ID).Error)
	require.Equal(t, succeeded, got.PomodoroCount, "no increment may be lost")
}

func TestTaskRepository_DeleteMissing(t *testing.T) {
	db := newTestDB(t)
	alice, _ := seedUsers(t, db)
	repo := NewTaskRepository(db)

	require.ErrorIs(t, repo.Delete(context.Background(), alice.ID, 9999), ErrTaskNotFound)
}
