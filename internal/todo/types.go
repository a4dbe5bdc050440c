package todo

import (
	_ "embed"
	"errors"

	"github.com/nibzard/edu-cli/internal/store"
)

// MaxID is the exclusive upper bound for generated task ids.
const MaxID = 1_000_000

var (
	// ErrDuplicateTask is returned by Add when a task with the same name
	// already exists.
	ErrDuplicateTask = errors.New("task already exists")

	// ErrNotFound is returned by Delete and Complete when no task has the
	// given name.
	ErrNotFound = errors.New("task does not exist")

	// ErrEmptyName is returned by Add for an empty task name.
	ErrEmptyName = errors.New("task name is required")
)

//go:embed schema.json
var schemaSource string

// Schema is the compiled JSON Schema for the task file.
var Schema = store.MustCompileSchema("tasks.schema.json", schemaSource)

// Status represents a task status.
type Status string

const (
	StatusTodo Status = "todo"
	StatusDone Status = "done"
)

// ParseStatus parses a status filter value.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusTodo, StatusDone:
		return Status(s), true
	}
	return "", false
}

// Task is a single entry in the task list.
type Task struct {
	ID        int    `json:"id"`
	Name      string `json:"task"`
	Completed bool   `json:"completed"`
}

// Status returns the task's status.
func (t Task) Status() Status {
	if t.Completed {
		return StatusDone
	}
	return StatusTodo
}

// Filter returns the tasks with the given status, preserving order. An empty
// status matches every task.
func Filter(tasks []Task, status Status) []Task {
	if status == "" {
		return tasks
	}
	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status() == status {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
