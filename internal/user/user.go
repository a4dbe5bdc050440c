// Package user registers people in a JSON user file.
package user

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/edu-cli/internal/store"
)

// MaxID is the exclusive upper bound for generated user ids.
const MaxID = 100_000

// MinNameLength is the minimum length of both name parts, counted in runes:
// "😀😀" is two characters long and too short.
const MinNameLength = 3

//go:embed schema.json
var schemaSource string

// Schema is the compiled JSON Schema for the user file.
var Schema = store.MustCompileSchema("users.schema.json", schemaSource)

// User is a registered person.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstname" validate:"min=3"`
	LastName  string `json:"lastname" validate:"min=3"`
	Email     string `json:"email" validate:"mailbox"`
}

// Registry appends users to a user file.
type Registry struct {
	store *store.Store[User]
	ids   store.Source
}

// Option configures a Registry.
type Option func(*registryOptions)

type registryOptions struct {
	ids    store.Source
	logger *log.Logger
}

// WithIDSource sets the random source used for new user ids.
func WithIDSource(src store.Source) Option {
	return func(o *registryOptions) {
		o.ids = src
	}
}

// WithLogger sets the logger passed to the underlying store.
func WithLogger(logger *log.Logger) Option {
	return func(o *registryOptions) {
		o.logger = logger
	}
}

// Open returns a Registry for the user file at path.
func Open(path string, opts ...Option) *Registry {
	var o registryOptions
	for _, opt := range opts {
		opt(&o)
	}

	storeOpts := []store.Option{store.WithSchema(Schema)}
	if o.logger != nil {
		storeOpts = append(storeOpts, store.WithLogger(o.logger))
	}

	return &Registry{
		store: store.New[User](path, storeOpts...),
		ids:   o.ids,
	}
}

// Path returns the user file path.
func (r *Registry) Path() string {
	return r.store.Path()
}

// Register validates the fields and appends a new user. Invalid input
// returns a *ValidationError and leaves the file untouched. Duplicate names
// and emails are allowed.
func (r *Registry) Register(firstname, lastname, email string) (User, error) {
	u := User{FirstName: firstname, LastName: lastname, Email: email}
	if err := Validate(u); err != nil {
		return User{}, err
	}

	err := r.store.Update(func(users []User) ([]User, error) {
		taken := make(map[int]bool, len(users))
		for _, existing := range users {
			taken[existing.ID] = true
		}

		id, err := store.NewID(r.ids, MaxID, taken)
		if err != nil {
			return nil, fmt.Errorf("allocate user id: %w", err)
		}
		u.ID = id
		return append(users, u), nil
	})
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// List returns every registered user in file order.
func (r *Registry) List() ([]User, error) {
	return r.store.LoadAll()
}
