// Package store persists a sequence of typed records as a JSON array in a
// single file.
//
// Every mutation is a whole-file read-modify-write:
//
//	s := store.New[todo.Task]("tasks.json", store.WithSchema(schema))
//	err := s.Update(func(tasks []todo.Task) ([]todo.Task, error) {
//		return append(tasks, task), nil
//	})
//
// # File Format
//
// The file always holds a JSON array. A missing file is created holding an
// empty array before the first read or write. Records are written with
// 2-space indentation and a trailing newline; reads accept any valid array.
//
// # Durability
//
// Writes go to a temporary file in the same directory which is then renamed
// over the store, so a crash leaves either the old or the new contents.
// There is no locking: two processes saving the same store race and the last
// rename wins.
//
// # Validation
//
// When a JSON Schema is attached with WithSchema, the document is validated
// before it is decoded. Malformed JSON, a non-array document, or a schema
// violation is reported as a *ParseError.
package store
