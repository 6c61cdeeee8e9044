package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rahulk1255/taskhub/internal/domain/user"
	"github.com/rahulk1255/taskhub/internal/repo/memory"
)

func TestUsersRepoCreateAndLookup(t *testing.T) {
	repo := memory.NewUsersRepo()
	ctx := context.Background()

	u, err := repo.Create(ctx, "a@x.com", "hashed-pw", "Alice")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if u.ID == "" {
		t.Fatalf("expected a generated id")
	}

	got, err := repo.GetByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}

	if got.ID != u.ID || got.PasswordHash != "hashed-pw" {
		t.Fatalf("lookup mismatch: %+v", got)
	}

	byID, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if byID.Email != "a@x.com" {
		t.Fatalf("GetByID mismatch: %+v", byID)
	}

	_, err = repo.GetByEmail(ctx, "b@x.com")
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = repo.GetByID(ctx, "no-such-id")
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUsersRepoDuplicateEmail(t *testing.T) {
	repo := memory.NewUsersRepo()
	ctx := context.Background()

	if _, err := repo.Create(ctx, "a@x.com", "hash-1", "Alice"); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	_, err := repo.Create(ctx, "a@x.com", "hash-2", "Alice Again")
	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// the original row must be untouched
	got, err := repo.GetByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}
	if got.PasswordHash != "hash-1" {
		t.Fatalf("duplicate insert overwrote the original row: %+v", got)
	}
}

// Many goroutines race to register the same email; exactly one must win
// regardless of interleaving.
func TestUsersRepoConcurrentDuplicateInsert(t *testing.T) {
	repo := memory.NewUsersRepo()
	ctx := context.Background()

	const attempts = 32

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, "race@x.com", "hash", "Racer")
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	wins, losses := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, user.ErrEmailTaken):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 || losses != attempts-1 {
		t.Fatalf("expected exactly one winner, got wins=%d losses=%d", wins, losses)
	}
}
