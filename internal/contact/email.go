package contact

import "strings"

// minEmailLength is the shortest string ValidEmail will consider.
const minEmailLength = 5

// AllowedEmailChars describes the accepted character set for user-facing guidance.
const AllowedEmailChars = "letters, numbers, @, ., -, _, and +"

// ValidEmail reports whether s matches the form's email grammar.
//
// The grammar is deliberately loose: exactly one '@' that is neither first
// nor last, at least one '.', the last '.' after the '@', no leading or
// trailing '.' or '-', and only ASCII letters, digits and "@.-_+". It does not
// check consecutive dots or real domains.
func ValidEmail(s string) bool {
	n := len(s)
	if n < minEmailLength {
		return false
	}

	atCount, dotCount, atPos := 0, 0, -1
	for i := 0; i < n; i++ {
		c := s[i]
		if !allowedEmailChar(c) {
			return false
		}
		switch c {
		case '@':
			atCount++
			atPos = i
		case '.':
			dotCount++
		}
	}

	return atCount == 1 && dotCount >= 1 &&
		atPos > 0 && atPos < n-1 &&
		strings.LastIndexByte(s, '.') > atPos &&
		s[0] != '.' && s[0] != '-' &&
		s[n-1] != '.' && s[n-1] != '-'
}

func allowedEmailChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '@', '.', '-', '_', '+':
		return true
	}
	return false
}
