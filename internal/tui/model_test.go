package tui

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/smileynet/interestform/internal/contact"
	"github.com/smileynet/interestform/internal/form"
	"github.com/smileynet/interestform/internal/store"
)

// fakeStore records appends in memory.
type fakeStore struct {
	saved     []contact.Submission
	found     bool
	countErr  error
	appendErr error
}

func (f *fakeStore) Count() (int, bool, error) {
	if f.countErr != nil {
		return 0, false, f.countErr
	}
	return len(f.saved), f.found || len(f.saved) > 0, nil
}

func (f *fakeStore) Append(sub contact.Submission) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.saved = append(f.saved, sub)
	return nil
}

func (f *fakeStore) Path() string    { return "contacts.txt" }
func (f *fakeStore) AbsPath() string { return "/srv/form/contacts.txt" }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlC    = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// typeText sends s one rune at a time, as a user typing would.
func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = update(m, runes(string(r)))
	}
	return m
}

// fillForm walks from the menu to the confirmation screen.
func fillForm(t *testing.T, m Model, name, email string) Model {
	t.Helper()
	m, _ = update(m, runes("1"))
	m = typeText(m, name)
	m, _ = update(m, enterKey)
	m = typeText(m, email)
	m, _ = update(m, enterKey)
	if m.screen != screenConfirm {
		t.Fatalf("screen = %d, want confirm", m.screen)
	}
	return m
}

func TestModel_InitLoadsCount(t *testing.T) {
	// Given a store with two submissions
	st := &fakeStore{saved: make([]contact.Submission, 2)}
	m := NewModel(st)

	// When the Init command completes
	msg := m.Init()()
	m, _ = update(m, msg)

	// Then the menu shows the total
	view := m.View()
	if !strings.Contains(view, form.TotalLabel+"2") {
		t.Errorf("view should show total, got:\n%s", view)
	}
	for _, want := range []string{form.Title, form.MenuAdd, form.MenuPath, form.MenuExit} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestModel_MenuWithoutFile(t *testing.T) {
	m := NewModel(&fakeStore{})
	m, _ = update(m, m.Init()())

	if !strings.Contains(m.View(), form.NoFileYet) {
		t.Errorf("view should contain %q, got:\n%s", form.NoFileYet, m.View())
	}
}

func TestModel_MenuCountError(t *testing.T) {
	m := NewModel(&fakeStore{countErr: errors.New("permission denied")})
	m, _ = update(m, m.Init()())

	if !strings.Contains(m.View(), "Could not read contacts file.") {
		t.Errorf("view should report count failure, got:\n%s", m.View())
	}
}

func TestModel_AddContactConfirmed(t *testing.T) {
	// Given the form filled in
	st := &fakeStore{found: true}
	m := fillForm(t, NewModel(st), "Alice", "alice@example.com")

	view := m.View()
	for _, want := range []string{form.ConfirmTitle, "Alice", "alice@example.com", form.ConfirmAsk} {
		if !strings.Contains(view, want) {
			t.Errorf("confirm view should contain %q, got:\n%s", want, view)
		}
	}

	// When the user confirms
	m, cmd := update(m, runes("y"))
	if m.screen != screenSaving {
		t.Fatalf("screen = %d, want saving", m.screen)
	}
	if cmd == nil {
		t.Fatal("confirming should return a save command")
	}
	m, cmd = update(m, cmd())

	// Then the submission is stored and a success notice is shown
	want := contact.Submission{Name: "Alice", Email: "alice@example.com"}
	if len(st.saved) != 1 || st.saved[0] != want {
		t.Fatalf("saved = %+v, want [%+v]", st.saved, want)
	}
	if m.screen != screenNotice || m.noticeKind != noticeSuccess {
		t.Errorf("screen = %d kind = %d, want success notice", m.screen, m.noticeKind)
	}
	for _, want := range []string{form.SavedMsg, form.ThanksMsg} {
		if !strings.Contains(m.View(), want) {
			t.Errorf("notice should contain %q", want)
		}
	}

	// And the count reload shows the new total once back at the menu
	m, _ = update(m, cmd())
	m, _ = update(m, runes("x"))
	if m.screen != screenMenu {
		t.Fatalf("screen = %d, want menu", m.screen)
	}
	if !strings.Contains(m.View(), form.TotalLabel+"1") {
		t.Errorf("menu should show total 1, got:\n%s", m.View())
	}
}

func TestModel_ConfirmDeclined(t *testing.T) {
	for _, answer := range []string{"n", "N", "x"} {
		t.Run(answer, func(t *testing.T) {
			st := &fakeStore{}
			m := fillForm(t, NewModel(st), "Bob", "bob@example.co.uk")

			m, cmd := update(m, runes(answer))

			if cmd != nil {
				t.Error("declining should not return a command")
			}
			if len(st.saved) != 0 {
				t.Errorf("saved = %d, want 0", len(st.saved))
			}
			if !strings.Contains(m.View(), form.DiscardedMsg) {
				t.Errorf("view should contain %q, got:\n%s", form.DiscardedMsg, m.View())
			}
		})
	}
}

func TestModel_ConfirmEnterDeclines(t *testing.T) {
	st := &fakeStore{}
	m := fillForm(t, NewModel(st), "Bob", "bob@example.co.uk")

	m, _ = update(m, enterKey)

	if m.screen != screenNotice || len(st.saved) != 0 {
		t.Errorf("screen = %d saved = %d, want notice and nothing saved", m.screen, len(st.saved))
	}
}

func TestModel_EmptyNameShowsError(t *testing.T) {
	// Given the name field left blank
	m := NewModel(&fakeStore{})
	m, _ = update(m, runes("1"))

	// When the user submits it
	m, _ = update(m, enterKey)

	// Then an error notice is shown and any key returns to the menu
	if m.screen != screenNotice || m.noticeKind != noticeError {
		t.Fatalf("screen = %d kind = %d, want error notice", m.screen, m.noticeKind)
	}
	if !strings.Contains(m.View(), "Error: Name cannot be empty.") {
		t.Errorf("view should report empty name, got:\n%s", m.View())
	}
	m, _ = update(m, enterKey)
	if m.screen != screenMenu {
		t.Errorf("screen = %d, want menu", m.screen)
	}
}

func TestModel_NameLimitedByInput(t *testing.T) {
	m := NewModel(&fakeStore{})
	m, _ = update(m, runes("1"))
	m = typeText(m, strings.Repeat("x", contact.MaxNameLength+10))

	if got := len(m.name.Value()); got != contact.MaxNameLength {
		t.Errorf("name length = %d, want %d", got, contact.MaxNameLength)
	}
}

func TestModel_InvalidEmailStaysOnField(t *testing.T) {
	// Given a valid name
	m := NewModel(&fakeStore{})
	m, _ = update(m, runes("1"))
	m = typeText(m, "Carol")
	m, _ = update(m, enterKey)

	// When an invalid email is submitted
	m = typeText(m, "carol@")
	m, _ = update(m, enterKey)

	// Then the email screen shows the error and guidance with a cleared field
	if m.screen != screenEmail {
		t.Fatalf("screen = %d, want email", m.screen)
	}
	if !errors.Is(m.emailErr, contact.ErrInvalidEmail) {
		t.Errorf("emailErr = %v, want ErrInvalidEmail", m.emailErr)
	}
	if m.email.Value() != "" {
		t.Errorf("email value = %q, want cleared", m.email.Value())
	}
	view := m.View()
	if !strings.Contains(view, "Error: Invalid email format.") {
		t.Errorf("view should report invalid email, got:\n%s", view)
	}
	for _, g := range form.EmailGuidance {
		if !strings.Contains(view, g) {
			t.Errorf("view should contain guidance %q", g)
		}
	}

	// And an empty email shows its own error without guidance
	m, _ = update(m, enterKey)
	if !errors.Is(m.emailErr, contact.ErrEmptyEmail) {
		t.Errorf("emailErr = %v, want ErrEmptyEmail", m.emailErr)
	}
	if strings.Contains(m.View(), form.EmailGuidance[0]) {
		t.Error("guidance should only follow a format error")
	}

	// And a valid email moves on
	m = typeText(m, "carol@example.org")
	m, _ = update(m, enterKey)
	if m.screen != screenConfirm || m.emailErr != nil {
		t.Errorf("screen = %d emailErr = %v, want confirm and no error", m.screen, m.emailErr)
	}
}

func TestModel_SaveFailure(t *testing.T) {
	st := &fakeStore{appendErr: store.ErrOpen}
	m := fillForm(t, NewModel(st), "Dan", "dan@example.com")

	m, cmd := update(m, runes("y"))
	m, _ = update(m, cmd())

	if m.noticeKind != noticeError {
		t.Errorf("kind = %d, want error", m.noticeKind)
	}
	if !strings.Contains(m.View(), form.SaveFailedMsg) {
		t.Errorf("view should report save failure, got:\n%s", m.View())
	}
}

func TestModel_SavingIgnoresKeys(t *testing.T) {
	m := fillForm(t, NewModel(&fakeStore{}), "Eve", "eve@example.com")
	m, _ = update(m, runes("y"))

	m, cmd := update(m, runes("3"))

	if m.screen != screenSaving || cmd != nil || m.quitting {
		t.Errorf("screen = %d quitting = %v, want saving with no command", m.screen, m.quitting)
	}
}

func TestModel_InvalidChoice(t *testing.T) {
	m := NewModel(&fakeStore{})

	m, _ = update(m, runes("9"))

	if !strings.Contains(m.View(), "Error: "+form.BadChoiceMsg) {
		t.Errorf("view should report invalid choice, got:\n%s", m.View())
	}
	m, _ = update(m, runes("1"))
	if m.screen != screenMenu {
		t.Errorf("key on a notice should return to the menu, screen = %d", m.screen)
	}
}

func TestModel_Location(t *testing.T) {
	m := NewModel(&fakeStore{})

	m, _ = update(m, runes("2"))

	view := m.View()
	if !strings.Contains(view, form.LocationLabel+"contacts.txt") {
		t.Errorf("view should show location, got:\n%s", view)
	}
	if !strings.Contains(view, "/srv/form/contacts.txt") {
		t.Errorf("view should show absolute location, got:\n%s", view)
	}
}

func TestModel_EscReturnsToMenu(t *testing.T) {
	m := NewModel(&fakeStore{})
	m, _ = update(m, runes("1"))
	m = typeText(m, "Frank")
	m, _ = update(m, enterKey)

	m, _ = update(m, escKey)

	if m.screen != screenMenu {
		t.Errorf("screen = %d, want menu", m.screen)
	}
}

func TestModel_Exit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		from func(Model) Model
	}{
		{name: "3 at menu", msg: runes("3"), from: func(m Model) Model { return m }},
		{name: "q at menu", msg: runes("q"), from: func(m Model) Model { return m }},
		{name: "ctrl+c while typing", msg: ctrlC, from: func(m Model) Model {
			m, _ = update(m, runes("1"))
			return typeText(m, "Gr")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.from(NewModel(&fakeStore{}))

			m, cmd := update(m, tt.msg)

			if !m.quitting {
				t.Error("model should be quitting")
			}
			if cmd == nil {
				t.Fatal("exit should return a command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("exit command should quit the program")
			}
			if m.View() != "" {
				t.Errorf("View() while quitting = %q, want empty", m.View())
			}
		})
	}
}

func TestModel_Farewell(t *testing.T) {
	got := NewModel(&fakeStore{}).Farewell()
	for _, want := range []string{form.FarewellMsg, form.FarewellPath + "contacts.txt"} {
		if !strings.Contains(got, want) {
			t.Errorf("Farewell() should contain %q, got %q", want, got)
		}
	}
}

// TestModel_Teatest_AddContact runs a full submission through a real program.
func TestModel_Teatest_AddContact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.txt")
	fs := store.NewFileStore(path)
	if err := fs.EnsureInitialized(); err != nil {
		t.Fatal(err)
	}

	tm := teatest.NewTestModel(t, NewModel(fs), teatest.WithInitialTermSize(80, 24))
	waitFor := func(s string) {
		t.Helper()
		teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
			return bytes.Contains(b, []byte(s))
		}, teatest.WithDuration(3*time.Second))
	}

	waitFor(form.TotalLabel + "0")
	tm.Send(runes("1"))
	waitFor("Full Name:")
	tm.Type("Alice")
	tm.Send(enterKey)
	waitFor("Email Address:")
	tm.Type("alice@example.com")
	tm.Send(enterKey)
	waitFor(form.ConfirmTitle)
	tm.Send(runes("y"))
	waitFor(form.SavedMsg)
	tm.Send(enterKey)
	waitFor(form.TotalLabel + "1")
	tm.Send(runes("3"))

	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := tm.FinalModel(t).(Model)
	if !final.quitting {
		t.Error("final model should be quitting")
	}
	n, found, err := fs.Count()
	if err != nil || !found || n != 1 {
		t.Errorf("Count() = (%d, %v, %v), want (1, true, nil)", n, found, err)
	}
}
