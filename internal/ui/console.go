// Package ui prints user-facing progress lines to the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

const logo = `
  ▗▄▄▄▖ ▗▄▄▖ ▗▄▖ ▗▖  ▗▖▗▄▄▄▖ ▗▄▖ ▗▄▄▖  ▗▄▄▖▗▄▄▄▖
    █  ▐▌   ▐▌ ▐▌▐▛▚▖▐▌▐▌   ▐▌ ▐▌▐▌ ▐▌▐▌   ▐▌
    █  ▐▌   ▐▌ ▐▌▐▌ ▝▜▌▐▛▀▀▘▐▌ ▐▌▐▛▀▚▖▐▌▝▜▌▐▛▀▀▘
  ▗▄█▄▖▝▚▄▄▖▝▚▄▞▘▐▌  ▐▌▐▌   ▝▚▄▞▘▐▌ ▐▌▝▚▄▞▘▐▙▄▄▖
`

// Console writes styled lines to one writer. It is safe for concurrent
// use.
type Console struct {
	mu  sync.Mutex
	out io.Writer

	info, success, warning, failure, header, dim lipgloss.Style
}

// New returns a console writing to w. Colors are dropped automatically
// when w is not a terminal.
func New(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		out:     w,
		info:    r.NewStyle().Foreground(lipgloss.Color("6")),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		header:  r.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
		dim:     r.NewStyle().Faint(true),
	}
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}

func (c *Console) Logo()               { c.println(c.header.Render(logo)) }
func (c *Console) Info(msg string)     { c.println(c.info.Render("[INFO] ") + msg) }
func (c *Console) Success(msg string)  { c.println(c.success.Render("[SUCCESS] ") + msg) }
func (c *Console) Warning(msg string)  { c.println(c.warning.Render("[WARNING] ") + msg) }
func (c *Console) Error(msg string)    { c.println(c.failure.Render("[ERROR] ") + msg) }
func (c *Console) Header(title string) { c.println("\n" + c.header.Render("=== "+title+" ===")) }

// Asset reports one written file.
func (c *Console) Asset(path string, w, h int, renderer string) {
	c.println(fmt.Sprintf("  %s %s", c.success.Render(fmt.Sprintf("%4dx%-4d", w, h)), path) + c.dim.Render(" ("+renderer+")"))
}

var std = New(os.Stdout)

// Stdout returns the console writing to standard output.
func Stdout() *Console { return std }

func PrintLogo()          { std.Logo() }
func Info(msg string)     { std.Info(msg) }
func Success(msg string)  { std.Success(msg) }
func Warning(msg string)  { std.Warning(msg) }
func Error(msg string)    { std.Error(msg) }
func Header(title string) { std.Header(title) }
