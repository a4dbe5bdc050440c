package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/edu-cli/internal/logging"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

const itemSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "additionalProperties": false,
    "required": ["id", "name"],
    "properties": {
      "id": {"type": "integer", "minimum": 0},
      "name": {"type": "string"}
    }
  }
}`

func newItemStore(t *testing.T, opts ...Option) (*Store[item], string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.json")
	return New[item](path, opts...), path
}

func TestEnsureExistsCreatesEmptyArray(t *testing.T) {
	s, path := newItemStore(t)

	if err := s.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("contents: got %q, want []", data)
	}
}

func TestEnsureExistsCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "items.json")
	s := New[item](path)

	if err := s.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected store file to exist: %v", err)
	}
}

func TestEnsureExistsIsIdempotent(t *testing.T) {
	s, path := newItemStore(t)
	original := []byte(`[{"id":7,"name":"keep"}]`)
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.EnsureExists(); err != nil {
			t.Fatalf("EnsureExists #%d failed: %v", i+1, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(data, original) {
		t.Errorf("store changed: got %q, want %q", data, original)
	}
}

func TestLoadAllMissingFile(t *testing.T) {
	s, path := newItemStore(t)

	records, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("records: got %#v, want empty non-nil slice", records)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("LoadAll should create the store: %v", err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s, _ := newItemStore(t)
	want := []item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}

	if err := s.SaveAll(want); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}
	got, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("records: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSaveLoadIsNoOp(t *testing.T) {
	s, path := newItemStore(t)
	if err := os.WriteFile(path, []byte(`[{"id":3,"name":"x"},{"id":4,"name":"y"}]`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	first, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if err := s.SaveAll(first); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}
	before, _ := os.ReadFile(path)

	second, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if err := s.SaveAll(second); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}
	after, _ := os.ReadFile(path)

	if !bytes.Equal(before, after) {
		t.Errorf("save(load()) changed store:\nbefore: %s\nafter:  %s", before, after)
	}
	if len(second) != 2 || second[0].ID != 3 || second[1].Name != "y" {
		t.Errorf("records: got %+v", second)
	}
}

func TestSaveAllNilWritesEmptyArray(t *testing.T) {
	s, path := newItemStore(t)

	if err := s.SaveAll(nil); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("contents: got %q, want []", data)
	}
}

func TestSaveAllLeavesNoTempFiles(t *testing.T) {
	s, path := newItemStore(t)
	if err := s.SaveAll([]item{{ID: 1, Name: "a"}}); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the store file, got %v", names)
	}
}

func TestLoadAllParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		schema   bool
		wantErr  error
		wantLoc  string
	}{
		{name: "invalid json", contents: `[{"id":1,`},
		{name: "empty file", contents: ``},
		{name: "object document", contents: `{"id":1}`, wantErr: ErrNotArray},
		{name: "string document", contents: `"tasks"`, wantErr: ErrNotArray},
		{name: "wrong field type without schema", contents: `[{"id":"one","name":"a"}]`},
		{name: "wrong field type with schema", contents: `[{"id":1,"name":"a"},{"id":"two","name":"b"}]`, schema: true, wantLoc: "[1].id"},
		{name: "missing field with schema", contents: `[{"id":1}]`, schema: true, wantLoc: "[0]"},
		{name: "negative id with schema", contents: `[{"id":-1,"name":"a"}]`, schema: true, wantLoc: "[0].id"},
		{name: "unknown field with schema", contents: `[{"id":1,"name":"a"},{"id":2,"name":"b","due":"friday"}]`, schema: true, wantLoc: "[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.schema {
				opts = append(opts, WithSchema(MustCompileSchema("items.schema.json", itemSchema)))
			}
			s, path := newItemStore(t, opts...)
			if err := os.WriteFile(path, []byte(tt.contents), 0644); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}

			_, err := s.LoadAll()
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if pe.Path != path {
				t.Errorf("Path: got %q, want %q", pe.Path, path)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantLoc != "" && pe.Location != tt.wantLoc {
				t.Errorf("Location: got %q, want %q", pe.Location, tt.wantLoc)
			}
		})
	}
}

func TestLoadAllWithSchemaAcceptsValidStore(t *testing.T) {
	s, path := newItemStore(t, WithSchema(MustCompileSchema("items.schema.json", itemSchema)))
	if err := os.WriteFile(path, []byte(`[{"id":1,"name":"a"}]`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	records, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(records) != 1 || records[0].Name != "a" {
		t.Errorf("records: got %+v", records)
	}
}

func TestUpdate(t *testing.T) {
	s, _ := newItemStore(t)

	err := s.Update(func(records []item) ([]item, error) {
		return append(records, item{ID: 1, Name: "first"}), nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	records, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(records) != 1 || records[0].Name != "first" {
		t.Errorf("records: got %+v", records)
	}
}

func TestUpdateErrorSkipsSave(t *testing.T) {
	s, path := newItemStore(t)
	if err := s.SaveAll([]item{{ID: 1, Name: "a"}}); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}
	before, _ := os.ReadFile(path)

	sentinel := errors.New("stop")
	err := s.Update(func(records []item) ([]item, error) {
		return nil, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Update: got %v, want %v", err, sentinel)
	}

	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Errorf("store changed after failed update")
	}
}

func TestCompileSchemaInvalid(t *testing.T) {
	if _, err := CompileSchema("bad.schema.json", `{"type": 12}`); err == nil {
		t.Error("expected error for invalid schema")
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/0", "[0]"},
		{"/0/id", "[0].id"},
		{"#/3/task", "[3].task"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.in); got != tt.want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStoreLogging(t *testing.T) {
	t.Run("default logger is silent", func(t *testing.T) {
		s, _ := newItemStore(t)
		if _, err := s.LoadAll(); err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}
	})

	t.Run("debug output goes to the configured logger", func(t *testing.T) {
		var buf bytes.Buffer
		s, path := newItemStore(t, WithLogger(logging.NewFromConfig(&buf, "debug", "logfmt")))
		if _, err := s.LoadAll(); err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "created store") || !strings.Contains(out, path) {
			t.Errorf("log output: %q", out)
		}
	})
}
