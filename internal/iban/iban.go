// Package iban canonicalizes and validates International Bank Account Numbers.
//
// Domain Purity: no I/O and no context. Validate works on the canonical form
// produced by Canonicalize and never rewrites its input.
package iban

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindCharset  Kind = "charset"
	KindLength   Kind = "length"
	KindChecksum Kind = "checksum"
)

var (
	ErrInvalidCharacter = errors.New("iban: invalid character")
	ErrLengthMismatch   = errors.New("iban: length mismatch")
	ErrChecksumMismatch = errors.New("iban: checksum mismatch")
)

// ValidationError describes why an IBAN was rejected. It matches the sentinel
// of its Kind under errors.Is.
type ValidationError struct {
	Kind   Kind
	IBAN   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid IBAN %q: %s", e.IBAN, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k Kind) sentinel() error {
	switch k {
	case KindCharset:
		return ErrInvalidCharacter
	case KindLength:
		return ErrLengthMismatch
	case KindChecksum:
		return ErrChecksumMismatch
	}
	return nil
}

// Canonicalize uppercases s with full case mapping (ß becomes SS) and removes
// every space (U+0020). Other whitespace is kept so that Validate reports it.
// Idempotent and total.
func Canonicalize(s string) string {
	return strings.ReplaceAll(cases.Upper(language.Und).String(s), " ", "")
}

// CountryCode returns the first two characters of s, or "" when s is shorter.
func CountryCode(s string) string {
	if len(s) < 2 {
		return ""
	}
	return s[:2]
}

// Validate checks character set, per-country length and the ISO 7064
// mod 97-10 check digits of a canonical IBAN.
func Validate(s string) error {
	if !govalidator.IsAlphanumeric(s) || s != strings.ToUpper(s) {
		return &ValidationError{Kind: KindCharset, IBAN: s, Reason: "only A-Z and 0-9 are allowed"}
	}
	if len(s) < 4 {
		return &ValidationError{Kind: KindLength, IBAN: s, Reason: fmt.Sprintf("%d characters is too short", len(s))}
	}
	if !isLetter(s[0]) || !isLetter(s[1]) {
		return &ValidationError{Kind: KindCharset, IBAN: s, Reason: "country code must be two letters"}
	}
	if !isDigit(s[2]) || !isDigit(s[3]) {
		return &ValidationError{Kind: KindCharset, IBAN: s, Reason: "check digits must be numeric"}
	}

	country := s[:2]
	want, ok := Length(country)
	if !ok {
		return &ValidationError{Kind: KindLength, IBAN: s, Reason: fmt.Sprintf("no registered length for country %s", country)}
	}
	if len(s) != want {
		return &ValidationError{Kind: KindLength, IBAN: s, Reason: fmt.Sprintf("%s IBANs have %d characters, got %d", country, want, len(s))}
	}

	if mod97(s[4:]+s[:4]) != 1 {
		return &ValidationError{Kind: KindChecksum, IBAN: s, Reason: "check digits do not match"}
	}
	return nil
}

// mod97 computes the remainder of the decimal expansion of s (A=10 ... Z=35)
// divided by 97, digit by digit so arbitrary lengths fit in an int.
func mod97(s string) int {
	r := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isDigit(c) {
			r = (r*10 + int(c-'0')) % 97
			continue
		}
		r = (r*100 + int(c-'A') + 10) % 97
	}
	return r
}

func isLetter(c byte) bool { return c >= 'A' && c <= 'Z' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
