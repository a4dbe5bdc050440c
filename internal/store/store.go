package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/pretty"

	"github.com/nibzard/edu-cli/internal/logging"
)

// emptyDocument is written when a store file is first created.
var emptyDocument = []byte("[]\n")

// Store is a handle on a JSON array file of records of type T.
type Store[T any] struct {
	path   string
	schema *jsonschema.Schema
	logger *log.Logger
}

// Option configures a Store.
type Option func(*options)

type options struct {
	schema *jsonschema.Schema
	logger *log.Logger
}

// WithSchema validates the store document against schema on every load.
func WithSchema(schema *jsonschema.Schema) Option {
	return func(o *options) {
		o.schema = schema
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New returns a Store for the file at path. The file is not touched until
// the first load or save.
func New[T any](path string, opts ...Option) *Store[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	return &Store[T]{
		path:   path,
		schema: o.schema,
		logger: o.logger,
	}
}

// Path returns the store file path.
func (s *Store[T]) Path() string {
	return s.path
}

// EnsureExists creates the store file holding an empty array if it does
// not exist yet. An existing file is left untouched.
func (s *Store[T]) EnsureExists() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat store %s: %w", s.path, err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	if err := writeFile(s.path, emptyDocument, 0644); err != nil {
		return fmt.Errorf("create store %s: %w", s.path, err)
	}

	s.logger.Debug("created store", "path", s.path)
	return nil
}

// LoadAll reads every record in the store, creating the file first if
// needed.
func (s *Store[T]) LoadAll() ([]T, error) {
	if err := s.EnsureExists(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", s.path, err)
	}

	records, err := s.decode(data)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("loaded store", "path", s.path, "records", len(records))
	return records, nil
}

func (s *Store[T]) decode(data []byte) ([]T, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	if _, ok := doc.([]interface{}); !ok {
		return nil, &ParseError{Path: s.path, Err: ErrNotArray}
	}

	if s.schema != nil {
		if err := s.schema.Validate(doc); err != nil {
			return nil, schemaError(s.path, err)
		}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// SaveAll replaces the store contents with records. A nil slice is saved
// as an empty array.
func (s *Store[T]) SaveAll(records []T) error {
	if err := s.EnsureExists(); err != nil {
		return err
	}
	if records == nil {
		records = []T{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal store %s: %w", s.path, err)
	}

	if err := writeFile(s.path, pretty.Pretty(data), 0644); err != nil {
		return fmt.Errorf("write store %s: %w", s.path, err)
	}

	s.logger.Debug("saved store", "path", s.path, "records", len(records))
	return nil
}

// Update runs one load-modify-save cycle. If fn returns an error the store
// is not written and the error is returned as is.
func (s *Store[T]) Update(fn func(records []T) ([]T, error)) error {
	records, err := s.LoadAll()
	if err != nil {
		return err
	}

	updated, err := fn(records)
	if err != nil {
		return err
	}

	return s.SaveAll(updated)
}
