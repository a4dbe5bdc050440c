package user

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nibzard/edu-cli/internal/store"
)

type constSource int

func (c constSource) IntN(n int) int {
	return int(c) % n
}

func newTestRegistry(t *testing.T, contents string) (*Registry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	if contents != "" {
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	return Open(path), path
}

func TestRegisterSuccess(t *testing.T) {
	r, _ := newTestRegistry(t, "")

	u, err := r.Register("Alice", "Lee", "alice@example.com")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if u.ID < 0 || u.ID >= MaxID {
		t.Errorf("id %d out of range", u.ID)
	}

	users, err := r.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := User{ID: u.ID, FirstName: "Alice", LastName: "Lee", Email: "alice@example.com"}
	if len(users) != 1 || users[0] != want {
		t.Errorf("users: got %+v, want [%+v]", users, want)
	}
}

func TestRegisterKeepsEmailCase(t *testing.T) {
	r, _ := newTestRegistry(t, "")

	u, err := r.Register("Alice", "Lee", "Alice@Example.COM")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if u.Email != "Alice@Example.COM" {
		t.Errorf("email: got %q", u.Email)
	}
}

func TestRegisterInvalidLeavesStoreUnchanged(t *testing.T) {
	tests := []struct {
		name      string
		firstname string
		lastname  string
		email     string
		field     string
	}{
		{"short firstname", "Al", "Lee", "al@example.com", "firstname"},
		{"short lastname", "Alice", "Le", "alice@example.com", "lastname"},
		{"bad email", "Alice", "Lee", "not-an-email", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, path := newTestRegistry(t, `[{"id":1,"firstname":"Bob","lastname":"Ray","email":"bob@example.com"}]`)
			before, _ := os.ReadFile(path)

			_, err := r.Register(tt.firstname, tt.lastname, tt.email)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if !ve.Has(tt.field) {
				t.Errorf("expected field %q in %v", tt.field, ve.Fields)
			}

			after, _ := os.ReadFile(path)
			if !bytes.Equal(before, after) {
				t.Error("store changed")
			}
		})
	}
}

func TestRegisterInvalidDoesNotCreateStore(t *testing.T) {
	r, path := newTestRegistry(t, "")

	if _, err := r.Register("Al", "Lee", "al@example.com"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("store should not be created")
	}
}

func TestRegisterAllowsDuplicates(t *testing.T) {
	r, _ := newTestRegistry(t, "")

	for i := 0; i < 2; i++ {
		if _, err := r.Register("Alice", "Lee", "alice@example.com"); err != nil {
			t.Fatalf("Register #%d failed: %v", i+1, err)
		}
	}
	users, _ := r.List()
	if len(users) != 2 {
		t.Fatalf("users: got %d, want 2", len(users))
	}
	if users[0].ID == users[1].ID {
		t.Errorf("duplicate ids: %d", users[0].ID)
	}
}

func TestRegisterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte(`[{"id":42,"firstname":"Bob","lastname":"Ray","email":"bob@example.com"}]`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	r := Open(path, WithIDSource(constSource(7)))

	u, err := r.Register("Alice", "Lee", "alice@example.com")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if u.ID != 7 {
		t.Errorf("id: got %d, want 7", u.ID)
	}

	users, _ := r.List()
	if len(users) != 2 || users[0].ID != 42 || users[1].FirstName != "Alice" {
		t.Errorf("users: got %+v", users)
	}
}

func TestRegisterMalformedStore(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"missing fields", `[{"id":1,"firstname":"Bob"}]`},
		{"unknown field", `[{"id":1,"firstname":"Bob","lastname":"Ray","email":"bob@example.com","age":40}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, path := newTestRegistry(t, tt.contents)
			before, _ := os.ReadFile(path)

			_, err := r.Register("Alice", "Lee", "alice@example.com")
			var pe *store.ParseError
			if !errors.As(err, &pe) {
				t.Errorf("expected *store.ParseError, got %T: %v", err, err)
			}
			if after, _ := os.ReadFile(path); !bytes.Equal(before, after) {
				t.Error("store changed")
			}
		})
	}
}
