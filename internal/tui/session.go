package tui

import (
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/smileynet/interestform/internal/form"
)

// Session runs one interactive form session until the user exits.
type Session interface {
	Run() error
}

// SessionOptions configures session creation.
type SessionOptions struct {
	In          io.Reader   // Input source (default: os.Stdin).
	Out         io.Writer   // Output destination (default: os.Stdout).
	Store       form.Store  // Record store shared by both renditions.
	Color       bool        // ANSI colors.
	ClearScreen bool        // Clear between screens in plain mode (ignored when Out is not a TTY).
	ForcePlain  bool        // Force the line-oriented loop even if Out is a TTY.
	Logger      *zap.Logger // Diagnostic logger (default: no-op).
}

// NewSession returns a TUI session when Out is a TTY, or a plain line-oriented
// session otherwise. ForcePlain overrides TTY detection.
func NewSession(opts SessionOptions) Session {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	tty := isTTY(opts.Out)
	plain := &PlainSession{loop: form.New(opts.In, opts.Out, opts.Store,
		form.WithStyles(form.NewStyles(opts.Out, opts.Color)),
		form.WithClearScreen(opts.ClearScreen && tty),
		form.WithLogger(opts.Logger),
	)}

	if opts.ForcePlain || !tty {
		return plain
	}

	return &TUISession{
		in:       opts.In,
		out:      opts.Out,
		log:      opts.Logger,
		fallback: plain,
		model: NewModel(opts.Store,
			WithStyles(form.NewStyles(opts.Out, opts.Color)),
			WithLogger(opts.Logger),
		),
	}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainSession runs the line-oriented loop.
type PlainSession struct {
	loop *form.Loop
}

// Run runs the loop. Closed input counts as a normal exit.
func (s *PlainSession) Run() error {
	err := s.loop.Run()
	if errors.Is(err, form.ErrInputClosed) {
		return nil
	}
	return err
}

// TUISession runs the Bubble Tea form.
// Falls back to PlainSession if the program fails to start.
type TUISession struct {
	in       io.Reader
	out      io.Writer
	log      *zap.Logger
	model    Model
	fallback *PlainSession
}

// Run starts the Bubble Tea program on the alternate screen.
func (s *TUISession) Run() error {
	p := tea.NewProgram(s.model,
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		s.log.Warn("tui failed, falling back to plain mode", zap.Error(err))
		return s.fallback.Run()
	}
	// The alternate screen is gone once the program exits, so the farewell goes to the main screen.
	if m, ok := final.(Model); ok && m.quitting {
		_, _ = io.WriteString(s.out, m.Farewell())
	}
	return nil
}
