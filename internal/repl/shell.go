package repl

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/argot/foundation/argot"
	argoterrors "github.com/msto63/argot/foundation/core/errors"
	"github.com/msto63/argot/internal/tui"
)

// Message types for tea.Cmd async operations

// questionMsg is sent when a running command asks for more input
type questionMsg struct {
	text string
}

// resultMsg is sent when a command line has finished
type resultMsg struct {
	input string
	res   *argot.Result
	err   error
}

// relay is the Prompter handed to commands run by the shell. It posts the
// question to the program and blocks until Update forwards the answer.
type relay struct {
	send    func(tea.Msg)
	answers chan string
}

func newRelay() *relay {
	return &relay{answers: make(chan string, 1)}
}

func (p *relay) Prompt(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.send(questionMsg{text: question})

	select {
	case answer := <-p.answers:
		return strings.TrimSpace(answer), nil
	case <-ctx.Done():
		return "", argoterrors.Wrap(ctx.Err(), "prompt aborted").WithCode(argoterrors.CodeCanceled)
	}
}

// Shell is the full screen front end of a REPL: a transcript viewport
// above a single line input. Commands run in a tea.Cmd so the screen stays
// live while they wait for answers.
type Shell struct {
	repl   *REPL
	ctx    context.Context
	relay  *relay
	cancel context.CancelFunc

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	transcript []string
	question   string
	running    bool
	width      int
}

// NewShell creates the bubbletea model for r. Commands run under ctx.
func NewShell(ctx context.Context, r *REPL) Shell {
	ti := textinput.New()
	ti.Placeholder = "command, or exit"
	ti.Prompt = tui.RenderPrompt(r.prompt)
	ti.CharLimit = argot.DefaultMaxInputLength
	ti.ShowSuggestions = true
	ti.Focus()

	suggestions := make([]string, 0, r.engine.Registry().Len())
	for _, name := range r.engine.Registry().Names() {
		suggestions = append(suggestions, r.engine.Prefix()+name)
	}
	ti.SetSuggestions(suggestions)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tui.SpinnerStyle

	s := Shell{
		repl:     r,
		ctx:      ctx,
		relay:    newRelay(),
		viewport: viewport.New(80, 20),
		input:    ti,
		spinner:  sp,
		width:    80,
	}
	if hello := r.greeting(); hello != "" {
		s.transcript = append(s.transcript, hello)
	}
	s.refresh()
	return s
}

// RunShell runs r as a full screen program until the user leaves
func (r *REPL) RunShell(ctx context.Context, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.logger.Info("Shell started")
	defer r.logger.Info("Shell stopped")

	shell := NewShell(ctx, r)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(shell, opts...)
	shell.relay.send = p.Send

	_, err := p.Run()
	if err != nil && ctx.Err() == nil {
		return argoterrors.Wrap(err, "shell failed").WithCode(argoterrors.CodeInternal)
	}
	return nil
}

// Init starts the cursor blinking
func (s Shell) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (s Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.WindowSizeMsg:
		// transcript above, one line for the question or spinner and one for the input
		s.width = msg.Width
		s.viewport.Width = msg.Width
		s.viewport.Height = max(msg.Height-2, 1)
		s.input.Width = max(msg.Width-len(s.repl.prompt)-1, 10)
		s.refresh()
		return s, nil

	case questionMsg:
		s.question = msg.text
		return s, nil

	case resultMsg:
		s.running = false
		s.question = ""
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
		// an answer typed after the command gave up is dropped
		select {
		case <-s.relay.answers:
		default:
		}
		if text := s.repl.outcome(msg.input, msg.res, msg.err); text != "" {
			s.println(text)
		}
		return s, nil

	case spinner.TickMsg:
		if !s.running {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s Shell) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		if s.running {
			// the command sees a canceled context and returns
			s.cancel()
			return s, nil
		}
		if msg.String() == "ctrl+c" {
			return s, tea.Quit
		}
		s.input.Reset()
		return s, nil

	case "ctrl+d":
		if !s.running && s.input.Value() == "" {
			return s, tea.Quit
		}

	case "pgup", "pgdown":
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		return s, cmd

	case "enter":
		return s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s Shell) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(s.input.Value())

	if s.question != "" {
		s.input.Reset()
		s.println(tui.RenderQuestion(s.question) + " " + line)
		s.question = ""
		s.relay.answers <- line
		return s, nil
	}
	if s.running || line == "" {
		return s, nil
	}

	s.input.Reset()
	if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
		return s, tea.Quit
	}

	s.println(tui.RenderPrompt(s.repl.prompt) + line)
	s.running = true
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	return s, tea.Batch(s.spinner.Tick, s.execute(ctx, line))
}

// execute runs one command line off the update loop
func (s Shell) execute(ctx context.Context, line string) tea.Cmd {
	r, p := s.repl, s.relay
	return func() tea.Msg {
		res, err := r.engine.Execute(ctx, line, p)
		r.record(ctx, line, res, err)
		return resultMsg{input: line, res: res, err: err}
	}
}

func (s *Shell) println(text string) {
	s.transcript = append(s.transcript, text)
	s.refresh()
}

func (s *Shell) refresh() {
	s.viewport.SetContent(tui.TranscriptStyle.Width(s.width).Render(strings.Join(s.transcript, "\n")))
	s.viewport.GotoBottom()
}

// View renders the shell
func (s Shell) View() string {
	var status string
	switch {
	case s.question != "":
		status = tui.RenderQuestion(s.question)
	case s.running:
		status = s.spinner.View() + tui.RenderHelp(" running, ctrl+c cancels")
	default:
		status = tui.RenderHelp("enter runs, pgup/pgdown scrolls, ctrl+d leaves")
	}
	return s.viewport.View() + "\n" + status + "\n" + s.input.View()
}
