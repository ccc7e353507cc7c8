package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/interestform/internal/config"
	"github.com/smileynet/interestform/internal/contact"
	"github.com/smileynet/interestform/internal/form"
	"github.com/smileynet/interestform/internal/logging"
	"github.com/smileynet/interestform/internal/store"
	"github.com/smileynet/interestform/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals holds flags shared by every command.
type Globals struct {
	Config string `help:"Extra config file, applied after the user and project layers."`
	File   string `help:"Record file path (overrides config)." short:"f"`
}

// CLI is the top-level command structure for interestform.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Form    FormCmd          `cmd:"" default:"1" help:"Run the interactive interest form (default)."`
	Count   CountCmd         `cmd:"" help:"Print the number of stored submissions."`
	Path    PathCmd          `cmd:"" help:"Print the record file location."`
	Check   CheckCmd         `cmd:"" help:"Check whether an email address would be accepted."`
}

// FormCmd runs the interactive loop.
type FormCmd struct {
	Plain   bool `help:"Force the line-oriented form even if stdout is a TTY." default:"false"`
	NoColor bool `help:"Disable ANSI colors." default:"false"`
	NoClear bool `help:"Do not clear the screen between menus." default:"false"`
}

// CountCmd prints the submission count.
type CountCmd struct{}

// PathCmd prints the record file location.
type PathCmd struct{}

// CheckCmd validates one email address.
type CheckCmd struct {
	Email string `arg:"" help:"Email address to check."`
}

// errRejected marks a check that completed but refused the address.
var errRejected = errors.New("email rejected")

// loadConfig loads layered config from user, project, and --config paths with env and flag overrides.
func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/interestform/config.yaml"),
		".interestform.yaml",
		g.Config,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g.File != "" {
		cfg.Store.Path = g.File
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run executes the form command.
func (f *FormCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}
	if f.NoColor {
		cfg.Display.Color = false
	}
	if f.NoClear {
		cfg.Display.ClearScreen = false
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}
	defer func() { _ = log.Sync() }()

	st := store.NewFileStore(cfg.Store.Path)
	return f.run(os.Stderr, st, log, tui.SessionOptions{
		In:          os.Stdin,
		Out:         os.Stdout,
		Store:       st,
		Color:       cfg.Display.Color,
		ClearScreen: cfg.Display.ClearScreen,
		ForcePlain:  f.Plain,
		Logger:      log,
	})
}

// initializer abstracts record file creation for testing.
type initializer interface {
	EnsureInitialized() error
}

// run prepares the record file and runs one session. A file that cannot be
// created is reported on errw and the session still starts.
func (f *FormCmd) run(errw io.Writer, st initializer, log *zap.Logger, opts tui.SessionOptions) error {
	if err := st.EnsureInitialized(); err != nil {
		log.Error("initializing record file", zap.Error(err))
		_, _ = fmt.Fprintf(errw, "warning: could not create contacts file: %s\n", err)
	}

	log.Info("session started", zap.Bool("plain", opts.ForcePlain))
	if err := tui.NewSession(opts).Run(); err != nil {
		return fmt.Errorf("form: %w", err)
	}
	log.Info("session ended")
	return nil
}

// Run executes the count command.
func (c *CountCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}
	return c.run(os.Stdout, store.NewFileStore(cfg.Store.Path))
}

// counter abstracts store.FileStore.Count for testing.
type counter interface {
	Count() (int, bool, error)
}

func (c *CountCmd) run(w io.Writer, st counter) error {
	n, found, err := st.Count()
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}
	if !found {
		_, _ = fmt.Fprintln(w, form.NoFileYet)
		return nil
	}
	_, _ = fmt.Fprintf(w, "%s%d\n", form.TotalLabel, n)
	return nil
}

// Run executes the path command.
func (p *PathCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("path: %w", err)
	}
	return p.run(os.Stdout, store.NewFileStore(cfg.Store.Path))
}

// locator abstracts the store's path accessors for testing.
type locator interface {
	Path() string
	AbsPath() string
}

func (p *PathCmd) run(w io.Writer, st locator) error {
	_, _ = fmt.Fprintln(w, form.LocationLabel+st.Path())
	_, _ = fmt.Fprintln(w, form.LocationNote+st.AbsPath())
	return nil
}

// Run executes the check command.
func (c *CheckCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *CheckCmd) run(w io.Writer) error {
	err := contact.CheckEmail(c.Email)
	if err == nil {
		_, _ = fmt.Fprintf(w, "%q is a valid email address.\n", c.Email)
		return nil
	}
	_, _ = fmt.Fprintln(w, "Error: "+form.Message(err))
	if errors.Is(err, contact.ErrInvalidEmail) {
		for _, g := range form.EmailGuidance {
			_, _ = fmt.Fprintln(w, g)
		}
	}
	return fmt.Errorf("check: %w", errRejected)
}

const (
	exitSuccess  = 0
	exitRejected = 1
	exitSetup    = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, errRejected) {
		return exitRejected
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("interestform"),
		kong.Description("Collect contact details for people interested in hearing more."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
		}
		os.Exit(exitCode(err))
	}
}
