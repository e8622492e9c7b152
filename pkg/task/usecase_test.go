package task

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogaworks/taskboard/pkg/authz"
	"github.com/ogaworks/taskboard/pkg/validation"
)

// memRepo mimics the SQL store: titles are unique at write time, listings
// come back in creation order.
type memRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]Task
	order []uuid.UUID
}

func newMemRepo() *memRepo {
	return &memRepo{tasks: make(map[uuid.UUID]Task)}
}

func (r *memRepo) titleHeld(title string, excludeID uuid.UUID) bool {
	for id, t := range r.tasks {
		if id != excludeID && t.Title == title {
			return true
		}
	}
	return false
}

func (r *memRepo) Create(ctx context.Context, t Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.titleHeld(t.Title, uuid.Nil) {
		return ErrTitleTaken
	}
	r.tasks[t.ID] = t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id uuid.UUID) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (r *memRepo) Update(ctx context.Context, t Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; !ok {
		return ErrNotFound
	}
	if r.titleHeld(t.Title, t.ID) {
		return ErrTitleTaken
	}
	r.tasks[t.ID] = t
	return nil
}

func (r *memRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.tasks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memRepo) List(ctx context.Context) ([]Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id])
	}
	return out, nil
}

func (r *memRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error) {
	all, _ := r.List(ctx)
	var out []Task
	for _, t := range all {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memRepo) TitleTaken(ctx context.Context, title string, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.titleHeld(title, excludeID), nil
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

func identity() authz.Identity {
	return authz.Identity{UserID: uuid.New(), SessionID: uuid.New()}
}

func newTestService(repo *memRepo) UseCase {
	return NewService(repo, authz.NewGate())
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("authenticated user creates a task", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo)
		caller := identity()

		created, err := svc.Create(ctx, caller, CreateInput{
			Title:   "Buy milk",
			Content: "2 liters",
			Status:  StatusTodo,
		})
		require.NoError(t, err)
		assert.Equal(t, caller.UserID, created.OwnerID)
		assert.Equal(t, "Buy milk", created.Title)
		assert.Equal(t, 1, repo.count())
	})

	t.Run("blank title leaves the store unchanged", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo)

		_, err := svc.Create(ctx, identity(), CreateInput{Title: "  ", Status: StatusTodo})
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, validation.Errors{{Field: "title", Reason: validation.ReasonBlank}}, verrs)
		assert.Equal(t, 0, repo.count())
	})

	t.Run("duplicate title across different users", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo)

		_, err := svc.Create(ctx, identity(), CreateInput{Title: "Buy milk", Status: StatusTodo})
		require.NoError(t, err)

		_, err = svc.Create(ctx, identity(), CreateInput{Title: "Buy milk", Status: StatusTodo})
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, validation.Errors{{Field: "title", Reason: validation.ReasonTaken}}, verrs)
		assert.Equal(t, 1, repo.count())
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo)

		_, err := svc.Create(ctx, identity(), CreateInput{Title: "Buy milk", Status: "paused"})
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has("status"))
		assert.Equal(t, 0, repo.count())
	})

	t.Run("anonymous caller gets login required", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo)

		_, err := svc.Create(ctx, authz.Identity{}, CreateInput{Title: "Buy milk", Status: StatusTodo})
		assert.ErrorIs(t, err, authz.ErrLoginRequired)
		assert.Equal(t, 0, repo.count())
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, repo *memRepo, owner authz.Identity, title string) Task {
		t.Helper()
		created, err := newTestService(repo).Create(ctx, owner, CreateInput{Title: title, Status: StatusTodo})
		require.NoError(t, err)
		return created
	}

	t.Run("owner updates title and status", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo)
		owner := identity()
		created := seed(t, repo, owner, "Buy milk")

		newTitle := "foo"
		done := StatusDone
		updated, err := svc.Update(ctx, owner, created.ID, UpdateInput{Title: &newTitle, Status: &done})
		require.NoError(t, err)
		assert.Equal(t, "foo", updated.Title)
		assert.Equal(t, StatusDone, updated.Status)

		stored, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, stored)
	})

	t.Run("keeping own title is not a conflict", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo)
		owner := identity()
		created := seed(t, repo, owner, "Buy milk")

		same := "Buy milk"
		_, err := svc.Update(ctx, owner, created.ID, UpdateInput{Title: &same})
		assert.NoError(t, err)
	})

	t.Run("blank title leaves the stored task untouched", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo)
		owner := identity()
		created := seed(t, repo, owner, "Buy milk")

		blank := ""
		doing := StatusDoing
		_, err := svc.Update(ctx, owner, created.ID, UpdateInput{Title: &blank, Status: &doing})
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has("title"))

		stored, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", stored.Title)
		assert.Equal(t, StatusTodo, stored.Status)
	})

	t.Run("updating into another task's title fails atomically", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo)
		owner := identity()
		seed(t, repo, owner, "Buy milk")
		second := seed(t, repo, owner, "Walk the dog")

		conflict := "Buy milk"
		_, err := svc.Update(ctx, owner, second.ID, UpdateInput{Title: &conflict})
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, validation.Errors{{Field: "title", Reason: validation.ReasonTaken}}, verrs)

		stored, err := repo.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "Walk the dog", stored.Title)
	})

	t.Run("foreign owner is forbidden and the task is unchanged", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo)
		owner := identity()
		created := seed(t, repo, owner, "Buy milk")

		intruderTitle := "stolen"
		_, err := svc.Update(ctx, identity(), created.ID, UpdateInput{Title: &intruderTitle})
		assert.ErrorIs(t, err, authz.ErrForbidden)

		stored, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", stored.Title)
	})

	t.Run("anonymous caller gets login required even for missing tasks", func(t *testing.T) {
		svc := newTestService(newMemRepo())
		title := "x"
		_, err := svc.Update(ctx, authz.Identity{}, uuid.New(), UpdateInput{Title: &title})
		assert.ErrorIs(t, err, authz.ErrLoginRequired)
	})

	t.Run("unknown task", func(t *testing.T) {
		svc := newTestService(newMemRepo())
		title := "x"
		_, err := svc.Update(ctx, identity(), uuid.New(), UpdateInput{Title: &title})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfirmed delete performs no mutation", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo)
		owner := identity()
		created, err := svc.Create(ctx, owner, CreateInput{Title: "Buy milk", Status: StatusTodo})
		require.NoError(t, err)

		err = svc.Delete(ctx, owner, created.ID, false)
		assert.ErrorIs(t, err, ErrConfirmationRequired)
		assert.Equal(t, 1, repo.count())
	})

	t.Run("confirmed delete removes exactly one task", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo)
		owner := identity()
		created, err := svc.Create(ctx, owner, CreateInput{Title: "Buy milk", Status: StatusTodo})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, owner, created.ID, true))
		assert.Equal(t, 0, repo.count())
	})

	t.Run("foreign owner cannot delete even when confirming", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo)
		created, err := svc.Create(ctx, identity(), CreateInput{Title: "Buy milk", Status: StatusTodo})
		require.NoError(t, err)

		err = svc.Delete(ctx, identity(), created.ID, true)
		assert.ErrorIs(t, err, authz.ErrForbidden)
		assert.Equal(t, 1, repo.count())
	})

	t.Run("anonymous caller gets login required", func(t *testing.T) {
		svc := newTestService(newMemRepo())
		err := svc.Delete(ctx, authz.Identity{}, uuid.New(), true)
		assert.ErrorIs(t, err, authz.ErrLoginRequired)
	})
}

func TestShowAndList(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)
	owner := identity()

	titles := []string{"first", "second", "third"}
	for i, title := range titles {
		created, err := svc.Create(ctx, owner, CreateInput{Title: title, Status: StatusTodo})
		require.NoError(t, err)
		// Creation order must survive listing.
		created.CreatedAt = created.CreatedAt.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Update(ctx, created))
	}

	t.Run("show is public", func(t *testing.T) {
		all, err := svc.List(ctx)
		require.NoError(t, err)
		got, err := svc.Show(ctx, all[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "first", got.Title)
	})

	t.Run("show of a missing task", func(t *testing.T) {
		_, err := svc.Show(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list returns all tasks in creation order", func(t *testing.T) {
		all, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		for i, title := range titles {
			assert.Equal(t, title, all[i].Title)
		}
	})
}
