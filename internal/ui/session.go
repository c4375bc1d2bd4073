package ui

import (
	"context"
	"strings"

	"github.com/Cyclone1070/stepagent/internal/workflow"
	"github.com/Cyclone1070/stepagent/internal/workflow/loop"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Internal messages
type eventMsg struct{ event workflow.Event }

type queryFinishedMsg struct {
	res *loop.Result
	err error
}

// sessionModel is the inline bubbletea program used on terminals. Queries are
// typed into a text input; while one runs, its events are printed above the
// program and a spinner shows while the model is thinking.
type sessionModel struct {
	ctx      context.Context
	runner   queryRunner
	events   <-chan workflow.Event
	markdown markdownRenderer

	input   textinput.Model
	spinner spinner.Model

	// Query in flight. A query is over once the runner has returned and
	// its DoneEvent has been seen.
	running    bool
	thinking   bool
	eventsDone bool
	finished   bool
	queryCtx   context.Context
	cancel     context.CancelFunc

	oneShot  bool
	initCmd  tea.Cmd
	quitting bool
	result   *loop.Result
	err      error
}

func newSessionModel(ctx context.Context, runner queryRunner, events <-chan workflow.Event, md markdownRenderer) sessionModel {
	ti := textinput.New()
	ti.Prompt = PromptStyle.Render("📝 ")
	ti.Placeholder = `Enter your prompt (or "exit" to quit)`
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(ThoughtStyle))

	return sessionModel{
		ctx:      ctx,
		runner:   runner,
		events:   events,
		markdown: md,
		input:    ti,
		spinner:  sp,
	}
}

// newOneShotModel starts query immediately and quits when it is over.
func newOneShotModel(ctx context.Context, runner queryRunner, events <-chan workflow.Event, md markdownRenderer, query string) sessionModel {
	m := newSessionModel(ctx, runner, events, md)
	m.oneShot = true
	m, m.initCmd = m.submit(query)
	return m
}

func (m sessionModel) Init() tea.Cmd {
	if m.initCmd != nil {
		return m.initCmd
	}
	return textinput.Blink
}

func (m sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		return m.handleEvent(msg.event)

	case queryFinishedMsg:
		m.finished = true
		m.result, m.err = msg.res, msg.err
		return m.settle()
	}

	if m.running {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m sessionModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		// Interrupt the running query; at the prompt, leave.
		if m.running {
			m.cancel()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case tea.KeyCtrlD:
		if !m.running {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		line := m.input.Value()
		if IsExitCommand(line) {
			m.quitting = true
			return m, tea.Quit
		}
		query := strings.TrimSpace(line)
		if query == "" {
			m.input.Reset()
			return m, nil
		}
		return m.submit(query)
	}

	if m.running {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts query on the runner and begins listening for its events.
func (m sessionModel) submit(query string) (sessionModel, tea.Cmd) {
	m.queryCtx, m.cancel = context.WithCancel(m.ctx)
	m.running = true
	m.thinking, m.eventsDone, m.finished = false, false, false
	m.result, m.err = nil, nil
	m.input.Reset()

	ctx, runner := m.queryCtx, m.runner
	run := func() tea.Msg {
		res, err := runner.Run(ctx, query)
		return queryFinishedMsg{res: res, err: err}
	}
	return m, tea.Sequence(
		tea.Println(InfoStyle.Render("🚀 User Query: "+query)+"\n"),
		tea.Batch(run, listenForEvents(m.events), m.spinner.Tick),
	)
}

func (m sessionModel) handleEvent(e workflow.Event) (tea.Model, tea.Cmd) {
	switch e.(type) {
	case workflow.DoneEvent, nil:
		m.eventsDone = true
		m.thinking = false
		return m.settle()
	case workflow.ThinkingEvent:
		m.thinking = true
		return m, listenForEvents(m.events)
	}

	m.thinking = false
	next := listenForEvents(m.events)
	text := strings.TrimSuffix(renderEvent(e, m.markdown), "\n")
	if text == "" {
		return m, next
	}
	return m, tea.Sequence(tea.Println(text), next)
}

// settle returns to the prompt once the query is over.
func (m sessionModel) settle() (tea.Model, tea.Cmd) {
	if !m.eventsDone || !m.finished {
		return m, nil
	}
	m.running = false
	m.cancel()
	if m.oneShot {
		return m, tea.Quit
	}
	return m, textinput.Blink
}

func (m sessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.running && m.thinking:
		return m.spinner.View() + " " + ThoughtStyle.Render("Thinking...")
	case m.running, m.oneShot:
		return ""
	}
	return m.input.View()
}

func listenForEvents(ch <-chan workflow.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{event: <-ch}
	}
}
