package board

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"msgboard/internal/config"
	"msgboard/internal/storage"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver: "sqlite3",
			Path:   "file:" + name + "?mode=memory&cache=shared",
		},
	}
	db, err := storage.Open(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.Migrate(db, "sqlite3"); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	return db
}

func TestRegisterUserDuplicateFails(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, "sqlite3")
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}
	if user.ID <= 0 {
		t.Fatalf("expected assigned id")
	}
	if user.Role != "user" {
		t.Fatalf("expected default role user, got %q", user.Role)
	}
	if user.PasswordHash == "secret123" {
		t.Fatalf("password stored in plaintext")
	}

	if _, err := svc.RegisterUser(ctx, "alice", "othersecret"); err == nil {
		t.Fatalf("expected duplicate username to fail")
	}
}

func TestAuthenticateUniformError(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, "sqlite3")
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "alice", "secret123"); err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}

	user, err := svc.Authenticate(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user %+v", user)
	}

	_, wrongPass := svc.Authenticate(ctx, "alice", "wrongpass")
	_, unknownUser := svc.Authenticate(ctx, "nobody", "secret123")
	if !errors.Is(wrongPass, ErrInvalidCredentials) || !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Fatalf("expected uniform invalid credentials, got %v / %v", wrongPass, unknownUser)
	}
	if wrongPass.Error() != unknownUser.Error() {
		t.Fatalf("error messages differ: %q vs %q", wrongPass, unknownUser)
	}
}

func TestMessagesOwnershipAndOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, "sqlite3")
	ctx := context.Background()

	alice, err := svc.RegisterUser(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}
	bob, err := svc.RegisterUser(ctx, "bob", "secret123")
	if err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}

	// The messages table does not exist yet; the first write creates it.
	for _, texto := range []string{"first", "second"} {
		if _, err := svc.AddMessage(ctx, alice.ID, texto); err != nil {
			t.Fatalf("AddMessage error: %v", err)
		}
	}
	if _, err := svc.AddMessage(ctx, bob.ID, "bob message"); err != nil {
		t.Fatalf("AddMessage error: %v", err)
	}

	msgs, err := svc.ListMessages(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListMessages error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Texto != "first" || msgs[1].Texto != "second" {
		t.Fatalf("messages out of insertion order: %+v", msgs)
	}
	for _, m := range msgs {
		if m.Texto == "bob message" {
			t.Fatalf("leaked another user's message")
		}
	}
}

func TestDeleteUserIsPermissive(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, "sqlite3")
	ctx := context.Background()

	if err := svc.DeleteUser(ctx, 9999); err != nil {
		t.Fatalf("deleting a non-existent id should succeed, got %v", err)
	}

	user, err := svc.RegisterUser(ctx, "gone", "secret123")
	if err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}
	if err := svc.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser error: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "gone", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected deleted user to fail login, got %v", err)
	}
}

func TestListUsersHidesPasswordHash(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, "sqlite3")
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "alice", "secret123"); err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}
	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	u := users[0]
	if u.Username != "alice" || u.Role != "user" || u.CreatedAt.IsZero() {
		t.Fatalf("unexpected listing %+v", u)
	}
}
