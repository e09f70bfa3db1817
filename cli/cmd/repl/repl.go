// Package repl implements an interactive session for matching argument lines
// against an option registry.
package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/pirate/log"
	"github.com/ardnew/pirate/manifest"
	"github.com/ardnew/pirate/opts"
	"github.com/ardnew/pirate/usage"
)

const (
	matchPrompt = "➜ "
	ctrlPrompt  = " :"

	// exprPrefix begins a line evaluated as an expression over the most
	// recent matches.
	exprPrefix = "="
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help     Print this message
  list     List declared options
  usage    Print usage text
  clear    Clear screen
  quit     Exit REPL

Usage:
  Type arguments to match them against the declared options
  Type "=" followed by an expression to evaluate it over the last matches
  Press Tab / Shift-Tab to cycle through option completions
  Press Esc to toggle between match and command modes
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeMatch inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// Evaluator evaluates an expression over a set of matches.
type Evaluator func(expr string, matches *opts.Matches) (any, error)

// Config describes a REPL session.
type Config struct {
	Program  string
	Registry *opts.Registry
	Eval     Evaluator
	CacheDir string // history is not persisted when empty
	Logger   log.Logger
	Input    io.Reader
	Output   io.Writer
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	cfg          Config
	input        textinput.Model
	history      *History
	historyIdx   int
	candidates   []string      // option completions
	last         *opts.Matches // most recent successful match
	matches      fuzzy.Matches // current completion results
	wordStart    int
	wordEnd      int
	suggIdx      int
	tabActive    bool
	preTabText   string
	preTabCursor int
	width        int
	quitting     bool
	mode         inputMode
	matchText    string
	matchCursor  int
	ctrlText     string
	ctrlCursor   int
}

// Run starts an interactive session and blocks until the user quits.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if cfg.Registry == nil {
		return ErrNoRegistry
	}

	var histPath string
	if cfg.CacheDir != "" {
		histPath = filepath.Join(cfg.CacheDir, baseHistory)
	}

	history := NewHistory(histPath)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history",
			slog.String("path", histPath),
			slog.String("error", err.Error()),
		)
	}

	cfg.Logger.TraceContext(ctx, "repl start",
		slog.String("program", cfg.Program),
		slog.Int("history", history.Len()),
	)

	options := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.Input != nil {
		options = append(options, tea.WithInput(cfg.Input))
	}

	if cfg.Output != nil {
		options = append(options, tea.WithOutput(cfg.Output))
	}

	_, err = tea.NewProgram(newModel(ctx, cfg, history), options...).Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, cfg Config, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(matchPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		cfg:        cfg,
		input:      ti,
		history:    history,
		historyIdx: history.Len(),
		candidates: optionCandidates(cfg.Registry),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeMatch,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(matchPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		hint := "Type arguments, =expression, or press Esc for commands"
		if m.mode == modeCtrl {
			hint = "Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			// Lock in the current candidate without executing.
			m.tabActive = false
			refreshMatches(&m)

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1), nil

	case tea.KeyDown:
		return m.historyStep(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m)

			return m, nil
		}

		if m.mode == modeMatch {
			return m.switchToMode(modeCtrl), nil
		}

		return m.switchToMode(modeMatch), nil
	}

	if msg.Type == tea.KeyRunes && m.tabActive && msg.String() == " " {
		m.tabActive = false
	} else if msg.Type != tea.KeyRunes {
		m.tabActive = false
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m)

	return m, cmd
}

// cycle moves the tab selection by step and completes the current word.
// A lone candidate completes immediately.
func (m model) cycle(step int) model {
	switch len(m.matches) {
	case 0:
		return m

	case 1:
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word with replacement and moves
// the cursor to its end.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes completions for the current input.
func refreshMatches(m *model) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	ctx := m.ctxFunc()

	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(line, m.mode); err != nil {
		m.cfg.Logger.DebugContext(ctx, "could not save history",
			slog.String("error", err.Error()),
		)
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(line)
	}

	echo := tea.Println(promptStyle.Render(matchPrompt) + inputStyle.Render(line))

	out, err := m.respond(ctx, line)

	m.cfg.Logger.TraceContext(ctx, "repl input",
		slog.String("input", line),
		slog.Bool("ok", err == nil),
	)

	if err != nil {
		return m, tea.Sequence(echo, tea.Println(renderError(err, m.cfg.Registry)))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

// respond matches line as arguments, or evaluates it as an expression when
// it begins with exprPrefix. A successful match becomes the expression
// environment.
func (m *model) respond(ctx context.Context, line string) (string, error) {
	if source, ok := strings.CutPrefix(line, exprPrefix); ok {
		return m.evaluate(strings.TrimSpace(source))
	}

	args, err := manifest.Split(line)
	if err != nil {
		return "", err
	}

	matches, err := m.cfg.Registry.Match(ctx, args)
	if err != nil {
		return "", err
	}

	m.last = matches

	return formatMatches(matches), nil
}

// evaluate runs source over the most recent matches.
func (m *model) evaluate(source string) (string, error) {
	switch {
	case m.cfg.Eval == nil:
		return "", ErrNoEvaluator
	case m.last == nil:
		return "", ErrNoMatches
	}

	result, err := m.cfg.Eval(source, m.last)
	if err != nil {
		return "", err
	}

	return fmt.Sprint(result), nil
}

// formatMatches renders one "name=value" line per match.
func formatMatches(matches *opts.Matches) string {
	if matches.Len() == 0 {
		return "(no matches)"
	}

	lines := make([]string, 0, matches.Len())
	for name, value := range matches.All() {
		lines = append(lines, name+"="+value)
	}

	return strings.Join(lines, "\n")
}

// renderError renders err, followed by option name suggestions when err
// names an undeclared option.
func renderError(err error, r *opts.Registry) string {
	out := errorStyle.Render("error: " + err.Error())

	var oe *opts.Error
	if errors.As(err, &oe) && oe.Kind() == opts.KindInvalidArgument {
		if names := usage.Suggest(oe.Offender(), r); len(names) > 0 {
			out += "\n" + hintStyle.Render("did you mean: --"+strings.Join(names, ", --"))
		}
	}

	return out
}

func (m model) executeCommand(line string) (model, tea.Cmd) {
	fields := strings.Fields(line)
	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(line))

	switch fields[0] {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(listOptions(m.cfg.Registry)))

	case "u", "usage":
		var buf bytes.Buffer
		if err := usage.Write(&buf, m.cfg.Program, m.cfg.Registry); err != nil {
			return m, tea.Sequence(echo, tea.Println(renderError(err, m.cfg.Registry)))
		}

		return m, tea.Sequence(echo, tea.Println(buf.String()))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Sequence(echo, tea.Println(
			errorStyle.Render("Unknown command: "+fields[0]+" (try 'help')"),
		))
	}
}

// listOptions renders every declared option and positional with its
// description.
func listOptions(r *opts.Registry) string {
	width := usage.Width(r)

	var b strings.Builder

	for _, d := range r.Descriptors() {
		if d.Header {
			continue
		}

		flags := d.Flags()
		pad := strings.Repeat(" ", max(width-lipgloss.Width(flags), 0))

		fmt.Fprintf(&b, "  %s%s  %s\n", flags, pad, hintStyle.Render(d.Description))
	}

	return b.String()
}

// historyStep moves through history by step, switching to the mode each
// entry was entered in. Stepping past the newest entry clears the input.
func (m model) historyStep(step int) model {
	idx := m.historyIdx + step
	if idx < 0 {
		return m
	}

	if idx >= m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m)

		return m
	}

	entry, err := m.history.Entry(idx)
	if err != nil {
		return m
	}

	m.historyIdx = idx

	if m.mode != entry.Mode {
		m = m.switchToMode(entry.Mode)
	}

	m.input.SetValue(entry.Line)
	m.input.SetCursor(len(entry.Line))
	refreshMatches(&m)

	return m
}

// switchToMode switches to mode, restoring the input last typed in it.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeMatch {
		m.matchText, m.matchCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode

	if mode == modeMatch {
		m.input.Prompt = promptStyle.Render(matchPrompt)
		m.input.SetValue(m.matchText)
		m.input.SetCursor(m.matchCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m)

	return m
}
