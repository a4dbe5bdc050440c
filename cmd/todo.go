package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/edu-cli/internal/config"
	"github.com/nibzard/edu-cli/internal/logging"
	"github.com/nibzard/edu-cli/internal/todo"
	"github.com/nibzard/edu-cli/internal/ui"
)

const todoBannerTitle = "Edu Todo App"

// RunTodo executes the edu-todo CLI.
func RunTodo(ctx context.Context, args []string) error {
	return runTodo(ctx, args, os.Stdout, os.Stderr)
}

// todoApp holds the state shared by the edu-todo subcommands.
type todoApp struct {
	cfg    *config.Config
	fs     *flag.FlagSet
	out    *ui.Printer
	logger *log.Logger
	list   *todo.List
}

func runTodo(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("edu-todo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printTodoUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args, config.AppTodo)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printTodoUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout, "edu-todo")
	}

	logger := logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat)
	app := &todoApp{
		cfg:    cfg,
		fs:     fs,
		out:    ui.NewPrinter(stdout),
		logger: logger,
		list:   todo.Open(cfg.TodoFile, todo.WithLogger(logger)),
	}

	subcommand := ""
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}
	logger.Debug("dispatching command", "command", subcommand, "todo_file", cfg.TodoFile)

	switch subcommand {
	case "help":
		printTodoUsage(fs, stdout)
		return nil
	case "version":
		return versionCommand(stdout, "edu-todo")
	case "doctor":
		return app.doctor(remainingArgs)
	case "clear":
		app.banner()
		return nil
	}

	if cfg.Banner {
		app.banner()
	}

	switch subcommand {
	case "add":
		return app.add(ctx, remainingArgs)
	case "list":
		return app.listTasks(remainingArgs)
	case "delete":
		return app.delete(ctx, remainingArgs)
	case "complete":
		return app.complete(ctx, remainingArgs)
	default:
		app.out.Failure("Command not found")
		printTodoUsage(fs, stdout)
		if subcommand == "" {
			return exitf(errors.New("no command given"))
		}
		return exitf(fmt.Errorf("unknown command: %s", subcommand))
	}
}

// banner clears the terminal and prints the title.
func (a *todoApp) banner() {
	a.out.ClearScreen()
	a.out.Banner(todoBannerTitle)
}

// taskName joins a subcommand's arguments into a task name with single
// spaces. Arguments are taken literally, so names may start with "-"; a
// leading "--" is dropped.
func (a *todoApp) taskName(command string, args []string) (string, error) {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	name := strings.Join(args, " ")
	if strings.TrimSpace(name) == "" {
		a.out.Failure("Task name is required")
		printTodoUsage(a.fs, a.out.Writer())
		return "", exitf(fmt.Errorf("%s: %w", command, errMissingArgument))
	}
	return name, nil
}

func (a *todoApp) add(ctx context.Context, args []string) error {
	name, err := a.taskName("add", args)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	task, err := a.list.Add(name)
	switch {
	case errors.Is(err, todo.ErrDuplicateTask):
		a.out.Failure("Task already exists")
		printTodoUsage(a.fs, a.out.Writer())
		return exitf(err)
	case err != nil:
		return err
	}
	a.logger.Debug("task added", "id", task.ID, "task", task.Name)
	a.out.Success("Task %s added", task.Name)
	return nil
}

func (a *todoApp) listTasks(args []string) error {
	fs := flag.NewFlagSet("edu-todo list", flag.ContinueOnError)
	fs.SetOutput(a.out.Writer())
	statusFilter := fs.String("status", "", "Filter by status (todo|done)")
	asJSON := fs.Bool("json", false, "Print the tasks as JSON")
	if err := fs.Parse(args); err != nil {
		return exitf(err)
	}
	if fs.NArg() > 0 {
		a.out.Failure("unexpected arguments: %v", fs.Args())
		return exitf(fmt.Errorf("unexpected arguments: %v", fs.Args()))
	}

	var status todo.Status
	if *statusFilter != "" {
		s, ok := todo.ParseStatus(*statusFilter)
		if !ok {
			a.out.Failure("Invalid status %q (expected todo|done)", *statusFilter)
			return exitf(fmt.Errorf("invalid status: %s", *statusFilter))
		}
		status = s
	}

	tasks, err := a.list.List()
	if err != nil {
		return err
	}
	tasks = todo.Filter(tasks, status)

	if *asJSON {
		return a.out.PrintJSON(tasks)
	}
	if len(tasks) == 0 {
		a.out.Failure("No tasks found")
		return nil
	}
	a.out.PrintTasks(tasks)
	return nil
}

func (a *todoApp) delete(ctx context.Context, args []string) error {
	name, err := a.taskName("delete", args)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	n, err := a.list.Delete(name)
	switch {
	case errors.Is(err, todo.ErrNotFound):
		a.out.Failure("Task %s does not exist", name)
		return exitf(err)
	case err != nil:
		return err
	}
	a.logger.Debug("task deleted", "task", name, "removed", n)
	a.out.Success("Task %s deleted", name)
	return nil
}

func (a *todoApp) complete(ctx context.Context, args []string) error {
	name, err := a.taskName("complete", args)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	n, err := a.list.Complete(name)
	switch {
	case errors.Is(err, todo.ErrNotFound):
		a.out.Failure("Task %s does not exist", name)
		return exitf(err)
	case err != nil:
		return err
	}
	a.logger.Debug("task completed", "task", name, "updated", n)
	a.out.Success("Task %s completed", name)
	return nil
}

// printTodoUsage prints the edu-todo usage message.
func printTodoUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Edu Todo App - a small task list kept in a JSON file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  edu-todo [options] <command> [task name]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <name>       Add a new task")
	fmt.Fprintln(w, "  list             List all tasks")
	fmt.Fprintln(w, "  delete <name>    Delete a task")
	fmt.Fprintln(w, "  complete <name>  Mark a task as completed")
	fmt.Fprintln(w, "  clear            Clear the terminal")
	fmt.Fprintln(w, "  doctor           Check config and task file validity")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'list' command):")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (todo|done)")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print the tasks as JSON")
}
