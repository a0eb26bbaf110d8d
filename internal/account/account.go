// Package account models a bank account participant of a payment message:
// an IBAN plus an optional currency tag, emitted as an XML fragment.
//
// Domain Purity: no I/O and no context. Validation is delegated to a
// Validator so callers can swap the IBAN rules; emission returns a detached
// xmltree.Node and leaves placement to the document layer.
package account

import (
	"sepacbi/internal/iban"
	"sepacbi/internal/xmltree"
	"sepacbi/pkg/attrs"
)

// Attribute names accepted by FromAttributes.
const (
	AttrIBAN        = "iban"
	AttrHasEuroAttr = "has_euro_attr"
)

const (
	// DomesticCountryCode is the IBAN prefix of accounts held in the home
	// banking system.
	DomesticCountryCode = "DE"
	// Currency is the code written into Ccy when the tag is enabled.
	Currency = "EUR"
)

// Element names of the emitted fragment.
const (
	TagID       = "Id"
	TagIBAN     = "IBAN"
	TagCurrency = "Ccy"
)

// Common root tags used by payment documents.
const (
	TagCreditorAccount = "CdtrAcct"
	TagDebtorAccount   = "DbtrAcct"
)

var schema = attrs.NewSchema(AttrIBAN, AttrHasEuroAttr)

// Validator checks a canonical IBAN. Errors are returned to callers unchanged.
type Validator interface {
	Validate(canonical string) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(canonical string) error

func (f ValidatorFunc) Validate(canonical string) error { return f(canonical) }

// DefaultValidator applies the IBAN registry rules of package iban.
var DefaultValidator Validator = ValidatorFunc(iban.Validate)

// Params is the typed construction input.
type Params struct {
	IBAN            string
	EmitCurrencyTag bool
}

// Account is a bank account identified by an IBAN.
//
// Invariants:
//   - iban is canonical after construction and after every CanonicalizeIBAN
//     or PerformChecks call: uppercase, no spaces
//   - emitCurrencyTag never changes after construction
//
// An Account is not safe for concurrent use when one of the callers runs
// CanonicalizeIBAN or PerformChecks.
type Account struct {
	iban            string
	emitCurrencyTag bool
	validator       Validator
}

// Option configures an Account at construction.
type Option func(*Account)

// WithValidator replaces DefaultValidator for PerformChecks.
func WithValidator(v Validator) Option {
	return func(a *Account) {
		if v != nil {
			a.validator = v
		}
	}
}

// New builds an Account from typed params. The IBAN is canonicalized; its
// well-formedness is not checked until PerformChecks.
func New(p Params, opts ...Option) *Account {
	a := &Account{
		iban:            p.IBAN,
		emitCurrencyTag: p.EmitCurrencyTag,
		validator:       DefaultValidator,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.CanonicalizeIBAN()
	return a
}

// FromAttributes builds an Account from named values. Only "iban" and
// "has_euro_attr" are recognized; any other key fails with
// *attrs.UnrecognizedAttributeError. The currency tag is enabled whenever
// "has_euro_attr" is present, whatever its value.
func FromAttributes(supplied map[string]any, opts ...Option) (*Account, error) {
	var fields struct {
		IBAN string `attr:"iban"`
	}
	if err := schema.Build(supplied, &fields); err != nil {
		return nil, err
	}
	return New(Params{
		IBAN:            fields.IBAN,
		EmitCurrencyTag: attrs.Has(supplied, AttrHasEuroAttr),
	}, opts...), nil
}

// IBAN returns the stored, canonical IBAN.
func (a *Account) IBAN() string { return a.iban }

// EmitsCurrencyTag reports whether Emit writes a Ccy element.
func (a *Account) EmitsCurrencyTag() bool { return a.emitCurrencyTag }

// CanonicalizeIBAN uppercases the IBAN and strips spaces. Idempotent; never
// fails, even on malformed input.
func (a *Account) CanonicalizeIBAN() {
	a.iban = iban.Canonicalize(a.iban)
}

// IsForeign reports whether the IBAN's country prefix differs from
// DomesticCountryCode. IBANs shorter than two characters count as foreign.
func (a *Account) IsForeign() bool {
	return iban.CountryCode(a.iban) != DomesticCountryCode
}

// PerformChecks canonicalizes the IBAN and validates it. The IBAN stays
// canonical when validation fails; the validator's error is returned as is.
func (a *Account) PerformChecks() error {
	a.CanonicalizeIBAN()
	return a.validator.Validate(a.iban)
}

// Emit returns a new fragment rooted at tag:
//
//	<tag><Id><IBAN>...</IBAN></Id><Ccy>EUR</Ccy></tag>
//
// Ccy is present only when the currency tag is enabled. The IBAN is written
// verbatim, empty or not.
func (a *Account) Emit(tag string) xmltree.Node {
	root := xmltree.NewElement(tag)
	id := xmltree.SubElement(root, TagID)
	xmltree.SubElement(id, TagIBAN).SetText(a.iban)
	if a.emitCurrencyTag {
		xmltree.SubElement(root, TagCurrency).SetText(Currency)
	}
	return root.Freeze()
}
