// Package todo manages a task list persisted in a JSON file.
//
// The task file (tasks.json) is a JSON array:
//
//	[
//	  {
//	    "id": 482913,
//	    "task": "buy milk",
//	    "completed": false
//	  }
//	]
//
// # Task Identity
//
// Tasks are addressed by name. Add refuses a name that is already present
// (exact, case-sensitive match). Delete and Complete act on every task with
// the given name, so a hand-edited file holding duplicates is still handled.
//
// Ids are random integers in [0, 1000000), re-drawn until they differ from
// every stored id.
//
// # Status Values
//
//   - "todo": Task is pending
//   - "done": Task is complete
package todo
