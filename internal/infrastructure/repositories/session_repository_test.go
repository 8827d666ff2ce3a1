package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/CianCode/Emetals-Web-App/domain"
)

func newSessionRepo(t *testing.T) domain.SessionRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionRepository(client, time.Hour)
}

func testSession(id string, userID uint) *domain.Session {
	return &domain.Session{
		ID:        id,
		UserID:    userID,
		Remember:  true,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
}

func TestSessionCreateAndFind(t *testing.T) {
	repo := newSessionRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testSession("s1", 1)); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByID(ctx, "s1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != "s1" || got.UserID != 1 || !got.Remember {
		t.Errorf("session = %+v", got)
	}
}

func TestSessionMissing(t *testing.T) {
	repo := newSessionRepo(t)
	if _, err := repo.FindByID(context.Background(), "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionExpired(t *testing.T) {
	repo := newSessionRepo(t)
	ctx := context.Background()

	// Plant an already-expired record directly, bypassing the TTL Create
	// would apply.
	impl := repo.(*SessionRepositoryImpl)
	expired := testSession("s1", 1)
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	data, err := json.Marshal(expired)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := impl.client.Set(ctx, impl.prefix+"s1", data, time.Hour).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, err := repo.FindByID(ctx, "s1"); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
}

func TestSessionDelete(t *testing.T) {
	repo := newSessionRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testSession("s1", 1)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

// DeleteByUser wipes every session of one user and nobody else's. This is
// what logs a user out everywhere after a password reset.
func TestSessionDeleteByUser(t *testing.T) {
	repo := newSessionRepo(t)
	ctx := context.Background()

	for _, s := range []*domain.Session{
		testSession("a1", 1),
		testSession("a2", 1),
		testSession("b1", 2),
	} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("create %s: %v", s.ID, err)
		}
	}

	if err := repo.DeleteByUser(ctx, 1); err != nil {
		t.Fatalf("delete by user: %v", err)
	}

	for _, id := range []string{"a1", "a2"} {
		if _, err := repo.FindByID(ctx, id); !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("%s: err = %v, want ErrSessionNotFound", id, err)
		}
	}
	if _, err := repo.FindByID(ctx, "b1"); err != nil {
		t.Errorf("other user's session removed: %v", err)
	}
}
