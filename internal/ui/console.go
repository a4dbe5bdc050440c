// Package ui renders plain-text console output: banners, coloured status
// lines, task tables and JSON dumps.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"github.com/tidwall/pretty"

	"github.com/nibzard/edu-cli/internal/todo"
)

var (
	colorGreen = lipgloss.Color("2")
	colorRed   = lipgloss.Color("1")
	colorDim   = lipgloss.Color("8")
)

// Printer writes styled output to a single writer. Colours are dropped
// automatically when the writer is not a terminal.
type Printer struct {
	w io.Writer
	r *lipgloss.Renderer
}

// NewPrinter returns a Printer for w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w: w,
		r: lipgloss.NewRenderer(w),
	}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Colored reports whether output carries ANSI colours.
func (p *Printer) Colored() bool {
	return p.r.ColorProfile() != termenv.Ascii
}

// Println writes an unstyled line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Success writes a green line.
func (p *Printer) Success(format string, args ...any) {
	style := p.r.NewStyle().Foreground(colorGreen)
	fmt.Fprintln(p.w, style.Render(fmt.Sprintf(format, args...)))
}

// Failure writes a red line.
func (p *Printer) Failure(format string, args ...any) {
	style := p.r.NewStyle().Foreground(colorRed)
	fmt.Fprintln(p.w, style.Render(fmt.Sprintf(format, args...)))
}

// Banner writes title as a boxed, letter-spaced heading.
func (p *Printer) Banner(title string) {
	style := p.r.NewStyle().
		Bold(true).
		Foreground(colorGreen).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(colorGreen).
		Padding(0, 2)
	fmt.Fprintln(p.w, style.Render(letterSpace(strings.ToUpper(title))))
}

// letterSpace puts a space between letters and three between words.
func letterSpace(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.Join(strings.Split(w, ""), " ")
	}
	return strings.Join(words, "   ")
}

// ClearScreen clears the terminal. It does nothing when the writer is not a
// terminal.
func (p *Printer) ClearScreen() {
	if !IsTTY(p.w) {
		return
	}
	termenv.NewOutput(p.w).ClearScreen()
}

// TaskTable renders tasks as a table with an index column, in file order.
func (p *Printer) TaskTable(tasks []todo.Task) string {
	rows := make([][]string, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(t.ID),
			t.Name,
			strconv.FormatBool(t.Completed),
		})
	}

	header := p.r.NewStyle().Bold(true).Padding(0, 1)
	cell := p.r.NewStyle().Padding(0, 1)
	done := cell.Foreground(colorGreen)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.r.NewStyle().Foreground(colorDim)).
		Headers("(index)", "id", "task", "completed").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 3 && row >= 0 && row < len(tasks) && tasks[row].Completed {
				return done
			}
			return cell
		})
	return tbl.String()
}

// PrintTasks writes the task table.
func (p *Printer) PrintTasks(tasks []todo.Task) {
	fmt.Fprintln(p.w, p.TaskTable(tasks))
}

// PrintJSON writes v as indented JSON, syntax-highlighted on terminals.
func (p *Printer) PrintJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	out := pretty.Pretty(data)
	if p.Colored() {
		out = pretty.Color(out, nil)
	}
	_, err = p.w.Write(out)
	return err
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
