package form

import (
	"errors"
	"fmt"

	"github.com/smileynet/interestform/internal/contact"
)

// User-facing text shared by both renditions.
const (
	Title        = "CONTACT INTEREST FORM"
	HeaderRule   = "====================================="
	NoFileYet    = "No contacts file found yet."
	TotalLabel   = "Total contacts collected: "
	MenuTitle    = "Options:"
	MenuAdd      = "Add new contact"
	MenuPath     = "View contacts file location"
	MenuExit     = "Exit"
	ChoicePrompt = "Enter your choice (1-3): "

	InfoPrompt   = "Please enter your information:"
	NamePrompt   = "Full Name: "
	EmailPrompt  = "Email Address: "
	ConfirmTitle = "--- Please confirm your information ---"
	ConfirmAsk   = "Is this correct? (y/n): "

	SavedMsg      = "Your information has been saved successfully!"
	ThanksMsg     = "Thank you! We will contact you soon."
	SaveFailedMsg = "Failed to save your information. Please try again."
	DiscardedMsg  = "Information not saved. Please try again."
	BadChoiceMsg  = "Invalid choice. Please try again."

	LocationLabel = "Contacts are being saved to: "
	LocationNote  = "This file is located at: "
	FarewellMsg   = "Thank you for using the Contact Interest Form!"
	FarewellPath  = "All contacts have been saved to: "

	ContinuePrompt = "Press Enter to continue..."
)

// EmailGuidance explains the accepted email characters after a format error.
var EmailGuidance = []string{
	"Email can only contain " + contact.AllowedEmailChars,
	"No spaces or special characters like *, !, etc. are allowed.",
}

// Message returns the user-facing text for a field validation error.
func Message(err error) string {
	switch {
	case errors.Is(err, contact.ErrEmptyName):
		return "Name cannot be empty."
	case errors.Is(err, contact.ErrNameTooLong):
		return fmt.Sprintf("Name is too long (maximum %d characters).", contact.MaxNameLength)
	case errors.Is(err, contact.ErrInvalidName):
		return "Name must fit on a single line."
	case errors.Is(err, contact.ErrEmptyEmail):
		return "Email cannot be empty."
	case errors.Is(err, contact.ErrEmailTooLong):
		return fmt.Sprintf("Email is too long (maximum %d characters).", contact.MaxEmailLength)
	case errors.Is(err, contact.ErrInvalidEmail):
		return "Invalid email format."
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}

// Choice returns the first non-whitespace byte of line, or 0 if there is none.
func Choice(line string) byte {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			continue
		}
		return line[i]
	}
	return 0
}

// Confirmed reports whether line accepts the confirmation step.
func Confirmed(line string) bool {
	c := Choice(line)
	return c == 'y' || c == 'Y'
}
