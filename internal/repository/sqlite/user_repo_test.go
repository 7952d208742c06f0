package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hijri-users/internal/domain"
	"github.com/prn-tf/hijri-users/internal/hijri"
	"github.com/prn-tf/hijri-users/internal/repository"
	"github.com/prn-tf/hijri-users/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	db, err := sqlite.NewDB(context.Background(), sqlite.DefaultConfig(dbPath), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	var version int
	if err := db.QueryRowContext(context.Background(), `SELECT MAX(version) FROM schema_migrations`).Scan(&version); err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != 1 {
		t.Errorf("expected schema version 1, got %d", version)
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := domain.NewUser("Ali", hijri.MustParse("1438-01-02"))
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user ID to be set after create")
	}

	got, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Ali" {
		t.Errorf("expected name Ali, got %s", got.Name)
	}
	if got.BirthDate != user.BirthDate {
		t.Errorf("expected birth date %s, got %s", user.BirthDate, got.BirthDate)
	}
	if !got.CreatedAt.Equal(user.CreatedAt.Truncate(time.Second)) {
		t.Errorf("expected created_at %v, got %v", user.CreatedAt, got.CreatedAt)
	}
}

func TestUserRepository_BirthDateStoredAsInteger(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := domain.NewUser("Mortada", hijri.MustParse("14440116"))
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	var raw int64
	var typ string
	err := db.QueryRowContext(ctx, `SELECT birth_date, typeof(birth_date) FROM users WHERE id = ?`, user.ID).Scan(&raw, &typ)
	if err != nil {
		t.Fatalf("raw select: %v", err)
	}
	if raw != 14440116 {
		t.Errorf("expected stored 14440116, got %d", raw)
	}
	if typ != "integer" {
		t.Errorf("expected integer column, got %s", typ)
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo := sqlite.NewUserRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), 999)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_ListAndCount(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	for _, in := range []struct{ name, date string }{
		{"Ali", "1438-01-02"},
		{"Wael", "1438-02-22"},
		{"Mostafa", "1439-01-02"},
	} {
		if err := repo.Create(ctx, domain.NewUser(in.name, hijri.MustParse(in.date))); err != nil {
			t.Fatalf("Create %s: %v", in.name, err)
		}
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 users, got %d", count)
	}

	page, err := repo.List(ctx, repository.ListOptions{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 3 {
		t.Errorf("expected total 3, got %d", page.Total)
	}
	if len(page.Items) != 2 || page.Items[0].Name != "Wael" || page.Items[1].Name != "Mostafa" {
		t.Errorf("unexpected page: %+v", page.Items)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Ali" {
		t.Errorf("unexpected users: %+v", all)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := domain.NewUser("Ibrahim", hijri.MustParse("14360105"))
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
