package sessionstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"pf-loan-generator/internal/domain/application"
)

func sampleSession(id string) *application.Session {
	f := application.NewFormState()
	f.EmployeeName = "Riya Sen"
	f.LoanAmount = "150000"
	return &application.Session{
		ID:        id,
		Form:      f,
		IssueDate: "05 March 2025",
		CreatedAt: time.Date(2025, 3, 5, 10, 30, 0, 0, time.UTC),
	}
}

// exercise runs the repository contract shared by every store.
func exercise(t *testing.T, repo application.Repository) {
	t.Helper()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, application.ErrSessionNotFound) {
		t.Fatalf("Get(missing) err = %v", err)
	}
	if err := repo.Save(ctx, sampleSession("missing")); !errors.Is(err, application.ErrSessionNotFound) {
		t.Fatalf("Save(missing) err = %v", err)
	}

	s := sampleSession("abc")
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	got.Form.Department = "Accounts"
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := repo.Get(ctx, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if again.Form.Department != "Accounts" {
		t.Fatalf("department = %q after save", again.Form.Department)
	}
}

func TestMemoryRepository_Contract(t *testing.T) {
	exercise(t, NewMemoryRepository(time.Hour))
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository(time.Hour)
	ctx := context.Background()
	s := sampleSession("abc")
	_ = repo.Create(ctx, s)
	s.Form.EmployeeName = "changed"

	got, _ := repo.Get(ctx, "abc")
	if got.Form.EmployeeName != "Riya Sen" {
		t.Fatalf("stored session aliased caller value: %q", got.Form.EmployeeName)
	}
}

func TestMemoryRepository_Expiry(t *testing.T) {
	repo := NewMemoryRepository(time.Minute)
	now := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	_ = repo.Create(ctx, sampleSession("abc"))
	now = now.Add(50 * time.Second)
	s, err := repo.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Save slid the expiry to 10:01:50.
	now = now.Add(50 * time.Second)
	if _, err := repo.Get(ctx, "abc"); err != nil {
		t.Fatalf("Get after slide: %v", err)
	}
	now = now.Add(time.Minute)
	if _, err := repo.Get(ctx, "abc"); !errors.Is(err, application.ErrSessionNotFound) {
		t.Fatalf("err = %v, want expired", err)
	}
}

func TestMemoryRepository_CreateSweepsExpired(t *testing.T) {
	repo := NewMemoryRepository(time.Minute)
	now := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	_ = repo.Create(ctx, sampleSession("old"))
	now = now.Add(2 * time.Minute)
	_ = repo.Create(ctx, sampleSession("new"))
	if len(repo.m) != 1 {
		t.Fatalf("entries = %d, want 1 after sweep", len(repo.m))
	}
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisRepository_Contract(t *testing.T) {
	_, rdb := newRedis(t)
	exercise(t, NewRedisRepository(rdb, time.Hour))
}

func TestRedisRepository_KeyAndTTL(t *testing.T) {
	mr, rdb := newRedis(t)
	repo := NewRedisRepository(rdb, 10*time.Minute)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleSession("abc")); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("pf:session:abc") {
		t.Fatal("session key not written")
	}
	if ttl := mr.TTL("pf:session:abc"); ttl != 10*time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}

	mr.FastForward(11 * time.Minute)
	if _, err := repo.Get(ctx, "abc"); !errors.Is(err, application.ErrSessionNotFound) {
		t.Fatalf("err = %v, want expired", err)
	}
}

func TestRedisRepository_CreateDuplicate(t *testing.T) {
	_, rdb := newRedis(t)
	repo := NewRedisRepository(rdb, time.Hour)
	ctx := context.Background()
	_ = repo.Create(ctx, sampleSession("abc"))
	if err := repo.Create(ctx, sampleSession("abc")); err == nil {
		t.Fatal("want error on duplicate id")
	}
}

func TestRedisRepository_CorruptValue(t *testing.T) {
	mr, rdb := newRedis(t)
	repo := NewRedisRepository(rdb, time.Hour)
	if err := mr.Set("pf:session:abc", "{not json"); err != nil {
		t.Fatal(err)
	}
	_, err := repo.Get(context.Background(), "abc")
	if err == nil || errors.Is(err, application.ErrSessionNotFound) {
		t.Fatalf("err = %v, want decode error", err)
	}
}
