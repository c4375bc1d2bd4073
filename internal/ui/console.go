// Package ui implements the console: a REPL that submits queries to the agent
// loop and prints its progress. Terminals get an inline bubbletea program;
// pipes and one-shot runs over plain streams get a line reader.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Cyclone1070/stepagent/internal/workflow"
	"github.com/Cyclone1070/stepagent/internal/workflow/loop"
	tea "github.com/charmbracelet/bubbletea"
)

// ExitCommand ends the REPL. Matching ignores case and surrounding whitespace.
const ExitCommand = "exit"

// IsExitCommand reports whether line asks to leave the REPL.
func IsExitCommand(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), ExitCommand)
}

// Config holds optional console settings.
type Config struct {
	Title string
	// Subtitle is shown under the title, e.g. "gemini · gemini-2.5-flash".
	Subtitle string
	Markdown markdownRenderer
	// Interactive runs the console as a bubbletea program with a text input
	// and a spinner. Only set it when in and out are a terminal.
	Interactive bool
}

// Console reads queries from in and writes progress to out.
type Console struct {
	in     io.Reader
	lines  *bufio.Reader
	out    io.Writer
	mu     sync.Mutex
	runner queryRunner
	events <-chan workflow.Event
	config Config
}

// NewConsole creates a console. events must be the channel the runner emits on.
func NewConsole(in io.Reader, out io.Writer, runner queryRunner, events <-chan workflow.Event, cfg Config) *Console {
	if runner == nil {
		panic("runner is required")
	}
	if events == nil {
		panic("events is required")
	}
	if cfg.Title == "" {
		cfg.Title = "⚡ Agentic Coding Tool"
	}
	return &Console{
		in:     in,
		lines:  bufio.NewReader(in),
		out:    out,
		runner: runner,
		events: events,
		config: cfg,
	}
}

// Serve runs the REPL until the exit command, end of input, or ctx is cancelled.
// Failed queries are reported and the REPL continues.
func (c *Console) Serve(ctx context.Context) error {
	c.Banner()
	if c.config.Interactive {
		return c.serveInteractive(ctx)
	}

	for {
		c.write(PromptStyle.Render(`📝 Enter your prompt (or "exit" to quit): `))

		line, ok, err := c.readLine(ctx)
		if err != nil {
			return err
		}
		if !ok || IsExitCommand(line) {
			c.goodbye()
			return nil
		}

		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}

		if _, err := c.RunQuery(ctx, query); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Console) serveInteractive(ctx context.Context) error {
	m := newSessionModel(ctx, c.runner, c.events, c.config.Markdown)
	if _, err := c.runProgram(ctx, m); err != nil {
		return err
	}
	c.goodbye()
	return nil
}

// Banner prints the boxed title.
func (c *Console) Banner() {
	text := c.config.Title
	if c.config.Subtitle != "" {
		text += "\n" + c.config.Subtitle
	}
	c.write(BannerStyle.Render(text) + "\n")
}

// RunQuery submits one query and renders its events until the loop is done.
func (c *Console) RunQuery(ctx context.Context, query string) (*loop.Result, error) {
	if c.config.Interactive {
		final, err := c.runProgram(ctx, newOneShotModel(ctx, c.runner, c.events, c.config.Markdown, query))
		if err != nil {
			return nil, err
		}
		return final.result, final.err
	}

	c.write(InfoStyle.Render("\n🚀 User Query: "+query) + "\n\n")

	type outcome struct {
		res *loop.Result
		err error
	}
	finished := make(chan outcome, 1)
	go func() {
		res, err := c.runner.Run(ctx, query)
		finished <- outcome{res: res, err: err}
	}()

	for e := range c.events {
		if _, ok := e.(workflow.DoneEvent); ok {
			break
		}
		if text := renderEvent(e, c.config.Markdown); text != "" {
			c.write(text)
		}
	}

	o := <-finished
	return o.res, o.err
}

// runProgram runs m inline (no alternate screen) until it quits.
func (c *Console) runProgram(ctx context.Context, m sessionModel) (sessionModel, error) {
	p := tea.NewProgram(m, tea.WithInput(c.in), tea.WithOutput(c.out), tea.WithContext(ctx))
	final, err := p.Run()
	if ctx.Err() != nil {
		return m, ctx.Err()
	}
	if err != nil {
		return m, fmt.Errorf("console failed: %w", err)
	}
	return final.(sessionModel), nil
}

// readLine reads one line of any length, giving up when ctx is cancelled.
// A final line without a newline is still returned.
func (c *Console) readLine(ctx context.Context) (string, bool, error) {
	type read struct {
		line string
		err  error
	}
	ch := make(chan read, 1)
	go func() {
		line, err := c.lines.ReadString('\n')
		ch <- read{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case r := <-ch:
		line := strings.TrimRight(r.line, "\r\n")
		switch {
		case r.err == nil:
			return line, true, nil
		case errors.Is(r.err, io.EOF):
			return line, line != "", nil
		default:
			return "", false, fmt.Errorf("failed to read input: %w", r.err)
		}
	}
}

func (c *Console) goodbye() {
	c.write(InfoStyle.Render("\n👋 Goodbye!") + "\n\n")
}

func (c *Console) write(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	io.WriteString(c.out, s)
}
