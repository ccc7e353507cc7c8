// Package form runs the interest form as a line-oriented console loop.
package form

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/interestform/internal/contact"
)

// ErrInputClosed indicates the input stream ended before the user chose Exit.
var ErrInputClosed = errors.New("form: input closed")

// clearSequence moves the cursor home and clears the screen.
const clearSequence = "\033[H\033[2J"

// Store persists submissions and reports how many exist.
type Store interface {
	// Count returns the number of saved submissions; found is false if nothing was ever saved.
	Count() (n int, found bool, err error)
	// Append saves one submission.
	Append(sub contact.Submission) error
	// Path returns the location as configured.
	Path() string
	// AbsPath returns the resolved location.
	AbsPath() string
}

// Loop drives the menu, prompt, and confirmation cycle over a reader and writer.
type Loop struct {
	in     *bufio.Reader
	out    io.Writer
	store  Store
	styles Styles
	clear  bool
	log    *zap.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithStyles sets the styles used for output. The default is uncolored.
func WithStyles(s Styles) Option {
	return func(l *Loop) { l.styles = s }
}

// WithClearScreen enables clearing the screen before each menu and form.
func WithClearScreen(enabled bool) Option {
	return func(l *Loop) { l.clear = enabled }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loop) { l.log = log }
}

// New creates a Loop reading from in and writing to out.
func New(in io.Reader, out io.Writer, store Store, opts ...Option) *Loop {
	l := &Loop{
		in:     bufio.NewReader(in),
		out:    out,
		store:  store,
		styles: NewStyles(out, false),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run shows the menu until the user exits. It returns nil on Exit and
// ErrInputClosed if input ends first.
func (l *Loop) Run() error {
	for {
		l.redraw()
		l.printStats()
		l.println("")
		l.printMenu()

		line, err := l.readLine()
		if err != nil {
			return err
		}

		switch Choice(line) {
		case '1':
			if err := l.addContact(); err != nil {
				return err
			}
		case '2':
			l.redraw()
			l.printf("%s%s\n", l.styles.Field.Render(LocationLabel), l.styles.Bold.Render(l.store.Path()))
			l.printf("%s\n\n", l.styles.Label.Render(LocationNote+l.store.AbsPath()))
			if err := l.waitForEnter(); err != nil {
				return err
			}
		case '3':
			l.println("")
			l.println(l.styles.Success.Render(FarewellMsg))
			l.printf("%s%s\n", l.styles.Field.Render(FarewellPath), l.styles.Bold.Render(l.store.Path()))
			return nil
		default:
			l.println("")
			l.printError(BadChoiceMsg)
			if err := l.waitForEnter(); err != nil {
				return err
			}
		}
	}
}

// addContact collects, confirms, and saves one submission.
// Only input closure is returned; every other failure is reported inline.
func (l *Loop) addContact() error {
	l.redraw()
	l.printf("%s\n\n", l.styles.Bold.Render(InfoPrompt))

	name, err := l.prompt(l.styles.Prompt.Render(NamePrompt))
	if err != nil {
		return err
	}
	if err := contact.CheckName(name); err != nil {
		l.println("")
		l.printError(Message(err))
		return l.waitForEnter()
	}

	var email string
	for {
		email, err = l.prompt(l.styles.Prompt.Render(EmailPrompt))
		if err != nil {
			return err
		}
		verr := contact.CheckEmail(email)
		if verr == nil {
			break
		}
		l.printError(Message(verr))
		if errors.Is(verr, contact.ErrInvalidEmail) {
			for _, g := range EmailGuidance {
				l.println(l.styles.Hint.Render(g))
			}
		}
	}

	l.println("")
	l.println(l.styles.Confirm.Render(ConfirmTitle))
	l.printf("%s %s\n", l.styles.Field.Render("Name:"), name)
	l.printf("%s %s\n", l.styles.Field.Render("Email:"), email)
	l.println("")
	answer, err := l.prompt(l.styles.Hint.Render(ConfirmAsk))
	if err != nil {
		return err
	}

	l.println("")
	if !Confirmed(answer) {
		l.log.Info("submission discarded by user")
		l.println(l.styles.Info.Render(DiscardedMsg))
		return l.waitForEnter()
	}

	if err := l.store.Append(contact.Submission{Name: name, Email: email}); err != nil {
		l.log.Error("saving submission", zap.String("path", l.store.Path()), zap.Error(err))
		l.printError(SaveFailedMsg)
		return l.waitForEnter()
	}

	l.log.Info("submission saved", zap.String("path", l.store.Path()), zap.Int("name_bytes", len(name)))
	l.println(l.styles.Success.Render("✓ " + SavedMsg))
	l.println(l.styles.Thanks.Render(ThanksMsg))
	return l.waitForEnter()
}

func (l *Loop) redraw() {
	if l.clear {
		_, _ = io.WriteString(l.out, clearSequence)
	}
	l.println(l.styles.Header.Render(HeaderRule))
	l.println(l.styles.Header.Render("     " + Title))
	l.println(l.styles.Header.Render(HeaderRule))
	l.println("")
}

func (l *Loop) printStats() {
	n, found, err := l.store.Count()
	switch {
	case err != nil:
		l.log.Warn("counting submissions", zap.Error(err))
		l.printError("Could not read contacts file.")
	case !found:
		l.println(l.styles.Hint.Render(NoFileYet))
	default:
		l.printf("%s%s\n", l.styles.Label.Render(TotalLabel), l.styles.Count.Render(fmt.Sprint(n)))
	}
}

func (l *Loop) printMenu() {
	l.println(l.styles.Bold.Render(MenuTitle))
	l.printf("%s %s\n", l.styles.MenuAdd.Render("1."), MenuAdd)
	l.printf("%s %s\n", l.styles.MenuPath.Render("2."), MenuPath)
	l.printf("%s %s\n", l.styles.MenuExit.Render("3."), MenuExit)
	l.printf("\n%s", l.styles.Hint.Render(ChoicePrompt))
}

func (l *Loop) printError(msg string) {
	l.println(l.styles.Error.Render("Error: " + msg))
}

// prompt writes an already styled label and reads the reply.
func (l *Loop) prompt(label string) (string, error) {
	_, _ = io.WriteString(l.out, label)
	return l.readLine()
}

func (l *Loop) waitForEnter() error {
	_, _ = io.WriteString(l.out, l.styles.Field.Render(ContinuePrompt))
	_, err := l.readLine()
	return err
}

// readLine returns the next input line without its terminator.
// A final unterminated line is returned normally; EOF after that is ErrInputClosed.
func (l *Loop) readLine() (string, error) {
	line, err := l.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			l.log.Info("input closed")
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("form: reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (l *Loop) println(s string) {
	_, _ = fmt.Fprintln(l.out, s)
}

func (l *Loop) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(l.out, format, args...)
}
