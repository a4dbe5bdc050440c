package todo

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/edu-cli/internal/store"
)

// List is a task list backed by a task file.
type List struct {
	store *store.Store[Task]
	ids   store.Source
}

// Option configures a List.
type Option func(*listOptions)

type listOptions struct {
	ids    store.Source
	logger *log.Logger
}

// WithIDSource sets the random source used for new task ids.
func WithIDSource(src store.Source) Option {
	return func(o *listOptions) {
		o.ids = src
	}
}

// WithLogger sets the logger passed to the underlying store.
func WithLogger(logger *log.Logger) Option {
	return func(o *listOptions) {
		o.logger = logger
	}
}

// Open returns a List for the task file at path. The file is created on
// first use.
func Open(path string, opts ...Option) *List {
	var o listOptions
	for _, opt := range opts {
		opt(&o)
	}

	storeOpts := []store.Option{store.WithSchema(Schema)}
	if o.logger != nil {
		storeOpts = append(storeOpts, store.WithLogger(o.logger))
	}

	return &List{
		store: store.New[Task](path, storeOpts...),
		ids:   o.ids,
	}
}

// Path returns the task file path.
func (l *List) Path() string {
	return l.store.Path()
}

// Add appends a new, not completed task named name.
func (l *List) Add(name string) (Task, error) {
	if name == "" {
		return Task{}, ErrEmptyName
	}

	var added Task
	err := l.store.Update(func(tasks []Task) ([]Task, error) {
		taken := make(map[int]bool, len(tasks))
		for _, t := range tasks {
			if t.Name == name {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateTask, name)
			}
			taken[t.ID] = true
		}

		id, err := store.NewID(l.ids, MaxID, taken)
		if err != nil {
			return nil, fmt.Errorf("allocate task id: %w", err)
		}
		added = Task{ID: id, Name: name}
		return append(tasks, added), nil
	})
	if err != nil {
		return Task{}, err
	}
	return added, nil
}

// List returns every task in file order.
func (l *List) List() ([]Task, error) {
	return l.store.LoadAll()
}

// Delete removes every task named name and returns how many were removed.
func (l *List) Delete(name string) (int, error) {
	removed := 0
	err := l.store.Update(func(tasks []Task) ([]Task, error) {
		kept := tasks[:0]
		for _, t := range tasks {
			if t.Name == name {
				removed++
				continue
			}
			kept = append(kept, t)
		}
		if removed == 0 {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Complete marks every task named name as completed and returns how many
// matched. Ids and names are preserved.
func (l *List) Complete(name string) (int, error) {
	matched := 0
	err := l.store.Update(func(tasks []Task) ([]Task, error) {
		for i := range tasks {
			if tasks[i].Name == name {
				tasks[i].Completed = true
				matched++
			}
		}
		if matched == 0 {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return tasks, nil
	})
	if err != nil {
		return 0, err
	}
	return matched, nil
}
