// Package tui renders the interest form as a Bubble Tea terminal UI.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/smileynet/interestform/internal/contact"
	"github.com/smileynet/interestform/internal/form"
)

// screen identifies which part of the form is shown.
type screen int

const (
	screenMenu screen = iota
	screenName
	screenEmail
	screenConfirm
	screenSaving
	screenNotice
	screenLocation
)

// noticeKind selects the style of a notice screen.
type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeError
	noticeSuccess
)

// countMsg carries the result of a record file count scan.
type countMsg struct {
	n     int
	found bool
	err   error
}

// savedMsg carries the result of an append.
type savedMsg struct {
	err error
}

// Model is the Bubble Tea model for the interest form.
type Model struct {
	store  form.Store
	styles form.Styles
	keys   keyMap
	log    *zap.Logger

	screen   screen
	name     textinput.Model
	email    textinput.Model
	emailErr error
	sub      contact.Submission

	count    int
	found    bool
	countErr error

	notice     []string
	noticeKind noticeKind

	quitting bool
}

// ModelOption configures optional Model settings.
type ModelOption func(*Model)

// WithStyles sets the styles used for rendering.
func WithStyles(s form.Styles) ModelOption {
	return func(m *Model) { m.styles = s }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) ModelOption {
	return func(m *Model) { m.log = log }
}

// NewModel creates a Model showing the menu for store.
func NewModel(store form.Store, opts ...ModelOption) Model {
	name := textinput.New()
	name.Prompt = form.NamePrompt
	name.CharLimit = contact.MaxNameLength

	email := textinput.New()
	email.Prompt = form.EmailPrompt
	email.CharLimit = contact.MaxEmailLength

	m := Model{
		store:  store,
		styles: form.NewStyles(io.Discard, false),
		keys:   defaultKeys(),
		log:    zap.NewNop(),
		name:   name,
		email:  email,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init loads the submission count for the menu.
func (m Model) Init() tea.Cmd {
	return m.loadCount()
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case countMsg:
		m.count, m.found, m.countErr = msg.n, msg.found, msg.err
		if msg.err != nil {
			m.log.Warn("counting submissions", zap.Error(msg.err))
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.log.Error("saving submission", zap.String("path", m.store.Path()), zap.Error(msg.err))
			m.showNotice(noticeError, form.SaveFailedMsg)
		} else {
			m.log.Info("submission saved", zap.String("path", m.store.Path()), zap.Int("name_bytes", len(m.sub.Name)))
			m.showNotice(noticeSuccess, "✓ "+form.SavedMsg, form.ThanksMsg)
		}
		return m, m.loadCount()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

// handleKey dispatches a key press according to the current screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenMenu:
		switch {
		case key.Matches(msg, m.keys.Add):
			return m.startForm()
		case key.Matches(msg, m.keys.Location):
			m.screen = screenLocation
			return m, nil
		case key.Matches(msg, m.keys.Exit):
			m.quitting = true
			return m, tea.Quit
		default:
			m.showNotice(noticeError, "Error: "+form.BadChoiceMsg)
			return m, nil
		}

	case screenName:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m.backToMenu()
		case key.Matches(msg, m.keys.Submit):
			value := m.name.Value()
			if err := contact.CheckName(value); err != nil {
				m.name.Blur()
				m.showNotice(noticeError, "Error: "+form.Message(err))
				return m, nil
			}
			m.sub.Name = value
			m.name.Blur()
			m.screen = screenEmail
			cmd := m.email.Focus()
			return m, cmd
		}

	case screenEmail:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m.backToMenu()
		case key.Matches(msg, m.keys.Submit):
			value := m.email.Value()
			if err := contact.CheckEmail(value); err != nil {
				m.emailErr = err
				m.email.Reset()
				return m, nil
			}
			m.emailErr = nil
			m.sub.Email = value
			m.email.Blur()
			m.screen = screenConfirm
			return m, nil
		}

	case screenConfirm:
		if key.Matches(msg, m.keys.Yes) {
			m.screen = screenSaving
			return m, m.save(m.sub)
		}
		m.log.Info("submission discarded by user")
		m.showNotice(noticeInfo, form.DiscardedMsg)
		return m, nil

	case screenSaving:
		// Keys are ignored until the append finishes.
		return m, nil

	case screenNotice, screenLocation:
		return m.backToMenu()
	}

	return m.updateInputs(msg)
}

// updateInputs forwards msg to the focused text input.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenName:
		m.name, cmd = m.name.Update(msg)
	case screenEmail:
		m.email, cmd = m.email.Update(msg)
	}
	return m, cmd
}

func (m Model) startForm() (tea.Model, tea.Cmd) {
	m.sub = contact.Submission{}
	m.emailErr = nil
	m.name.Reset()
	m.email.Reset()
	m.screen = screenName
	cmd := m.name.Focus()
	return m, cmd
}

func (m Model) backToMenu() (tea.Model, tea.Cmd) {
	m.name.Blur()
	m.email.Blur()
	m.notice = nil
	m.screen = screenMenu
	return m, m.loadCount()
}

func (m *Model) showNotice(kind noticeKind, lines ...string) {
	m.notice = lines
	m.noticeKind = kind
	m.screen = screenNotice
}

func (m Model) loadCount() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		n, found, err := store.Count()
		return countMsg{n: n, found: found, err: err}
	}
}

func (m Model) save(sub contact.Submission) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return savedMsg{err: store.Append(sub)}
	}
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(form.HeaderRule) + "\n")
	b.WriteString(m.styles.Header.Render("     "+form.Title) + "\n")
	b.WriteString(m.styles.Header.Render(form.HeaderRule) + "\n\n")

	switch m.screen {
	case screenMenu:
		m.viewMenu(&b)
	case screenName:
		b.WriteString(m.styles.Bold.Render(form.InfoPrompt) + "\n\n")
		b.WriteString(m.name.View() + "\n")
	case screenEmail:
		b.WriteString(m.styles.Bold.Render(form.InfoPrompt) + "\n\n")
		b.WriteString(m.styles.Field.Render("Name:") + " " + m.sub.Name + "\n")
		b.WriteString(m.email.View() + "\n")
		if m.emailErr != nil {
			b.WriteString(m.styles.Error.Render("Error: "+form.Message(m.emailErr)) + "\n")
			if errors.Is(m.emailErr, contact.ErrInvalidEmail) {
				for _, g := range form.EmailGuidance {
					b.WriteString(m.styles.Hint.Render(g) + "\n")
				}
			}
		}
	case screenConfirm:
		m.viewConfirm(&b)
		b.WriteString("\n" + m.styles.Hint.Render(form.ConfirmAsk) + "\n")
	case screenSaving:
		m.viewConfirm(&b)
		b.WriteString("\nSaving...\n")
	case screenNotice:
		style := m.styles.Info
		switch m.noticeKind {
		case noticeError:
			style = m.styles.Error
		case noticeSuccess:
			style = m.styles.Success
		}
		for i, line := range m.notice {
			if i == 0 {
				b.WriteString(style.Render(line) + "\n")
				continue
			}
			b.WriteString(m.styles.Thanks.Render(line) + "\n")
		}
		b.WriteString("\n" + m.styles.Field.Render("Press any key to continue...") + "\n")
	case screenLocation:
		b.WriteString(m.styles.Field.Render(form.LocationLabel) + m.styles.Bold.Render(m.store.Path()) + "\n")
		b.WriteString(m.styles.Label.Render(form.LocationNote+m.store.AbsPath()) + "\n")
		b.WriteString("\n" + m.styles.Field.Render("Press any key to continue...") + "\n")
	}

	return b.String()
}

func (m Model) viewMenu(b *strings.Builder) {
	switch {
	case m.countErr != nil:
		b.WriteString(m.styles.Error.Render("Error: Could not read contacts file.") + "\n")
	case !m.found:
		b.WriteString(m.styles.Hint.Render(form.NoFileYet) + "\n")
	default:
		b.WriteString(m.styles.Label.Render(form.TotalLabel) + m.styles.Count.Render(fmt.Sprint(m.count)) + "\n")
	}
	b.WriteString("\n" + m.styles.Bold.Render(form.MenuTitle) + "\n")
	b.WriteString(m.styles.MenuAdd.Render("1.") + " " + form.MenuAdd + "\n")
	b.WriteString(m.styles.MenuPath.Render("2.") + " " + form.MenuPath + "\n")
	b.WriteString(m.styles.MenuExit.Render("3.") + " " + form.MenuExit + "\n")
	b.WriteString("\n" + m.styles.Hint.Render(form.ChoicePrompt) + "\n")
}

func (m Model) viewConfirm(b *strings.Builder) {
	b.WriteString(m.styles.Confirm.Render(form.ConfirmTitle) + "\n")
	b.WriteString(m.styles.Field.Render("Name:") + " " + m.sub.Name + "\n")
	b.WriteString(m.styles.Field.Render("Email:") + " " + m.sub.Email + "\n")
}

// Farewell renders the exit message shown after the program ends.
func (m Model) Farewell() string {
	return m.styles.Success.Render(form.FarewellMsg) + "\n" +
		m.styles.Field.Render(form.FarewellPath) + m.styles.Bold.Render(m.store.Path()) + "\n"
}
