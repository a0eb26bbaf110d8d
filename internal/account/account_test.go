package account_test

import (
	"errors"
	"testing"
	"unicode"

	"github.com/stretchr/testify/suite"

	"sepacbi/internal/account"
	"sepacbi/internal/iban"
	"sepacbi/internal/xmltree"
	"sepacbi/pkg/attrs"
)

// =============================================================================
// Account Test Suite
// =============================================================================
// Justification for unit tests: Account is a pure domain entity. Tests pin the
// construction contract, canonicalization invariants, classification and the
// exact shape of the emitted fragment.

type AccountSuite struct {
	suite.Suite
}

func TestAccountSuite(t *testing.T) {
	suite.Run(t, new(AccountSuite))
}

// =============================================================================
// Construction
// =============================================================================

func (s *AccountSuite) TestFromAttributes() {
	s.Run("canonicalizes the supplied IBAN", func() {
		a, err := account.FromAttributes(map[string]any{"iban": "de89 3704 0044 0532 0130 00"})
		s.Require().NoError(err)
		s.Equal("DE89370400440532013000", a.IBAN())
		s.False(a.EmitsCurrencyTag())
	})

	s.Run("missing iban yields an empty IBAN", func() {
		a, err := account.FromAttributes(map[string]any{})
		s.Require().NoError(err)
		s.Equal("", a.IBAN())
	})

	s.Run("nil map is accepted", func() {
		a, err := account.FromAttributes(nil)
		s.Require().NoError(err)
		s.Equal("", a.IBAN())
	})

	s.Run("has_euro_attr presence enables the currency tag", func() {
		for _, v := range []any{true, false, nil, "", 0} {
			a, err := account.FromAttributes(map[string]any{"iban": "DE89", "has_euro_attr": v})
			s.Require().NoError(err)
			s.True(a.EmitsCurrencyTag(), "value %v", v)
		}
	})

	s.Run("recognized keys succeed regardless of IBAN validity", func() {
		a, err := account.FromAttributes(map[string]any{"iban": "not an iban!"})
		s.Require().NoError(err)
		s.Equal("NOTANIBAN!", a.IBAN())
	})

	s.Run("numeric iban values are converted to text", func() {
		a, err := account.FromAttributes(map[string]any{"iban": 1234})
		s.Require().NoError(err)
		s.Equal("1234", a.IBAN())
	})

	s.Run("unrecognized keyword fails", func() {
		_, err := account.FromAttributes(map[string]any{"iban": "de89...", "bogus": 1})
		s.Require().Error(err)
		s.ErrorIs(err, attrs.ErrUnrecognizedAttribute)

		var uerr *attrs.UnrecognizedAttributeError
		s.Require().True(errors.As(err, &uerr))
		s.Equal([]string{"bogus"}, uerr.Names)
		s.Equal([]string{"iban", "has_euro_attr"}, uerr.Allowed)
	})

	s.Run("undecodable iban value fails", func() {
		_, err := account.FromAttributes(map[string]any{"iban": map[string]any{"country": "DE"}})
		s.ErrorIs(err, attrs.ErrInvalidAttributeValue)
	})
}

func (s *AccountSuite) TestNew() {
	a := account.New(account.Params{IBAN: "fr76 3000", EmitCurrencyTag: true})
	s.Equal("FR763000", a.IBAN())
	s.True(a.EmitsCurrencyTag())
}

// =============================================================================
// Canonicalization
// =============================================================================

func (s *AccountSuite) TestCanonicalizeIBAN() {
	inputs := []string{"", " ", "de89 3704", "DE89\t3704", "ß x", "straße", "ﬁ", "ŉ", "already CANON"}
	for _, in := range inputs {
		a := account.New(account.Params{IBAN: in})
		once := a.IBAN()
		a.CanonicalizeIBAN()
		s.Equal(once, a.IBAN(), "idempotent for %q", in)
		s.NotContains(a.IBAN(), " ")
		for _, r := range a.IBAN() {
			s.False(unicode.IsLower(r), "lowercase rune %q left in %q", r, a.IBAN())
		}
	}

	s.Equal("SSX", account.New(account.Params{IBAN: "ß x"}).IBAN())
	s.Equal("STRASSE", account.New(account.Params{IBAN: "straße"}).IBAN())
}

// =============================================================================
// Classification
// =============================================================================

func (s *AccountSuite) TestIsForeign() {
	tests := []struct {
		iban    string
		foreign bool
	}{
		{"", true},
		{"D", true},
		{"DE", false},
		{"de89370400440532013000", false},
		{"FR7630006000011234567890189", true},
		{" d e89", false},
	}
	for _, tt := range tests {
		a := account.New(account.Params{IBAN: tt.iban})
		s.Equal(tt.foreign, a.IsForeign(), "iban %q", tt.iban)
	}
}

// =============================================================================
// Validation
// =============================================================================

func (s *AccountSuite) TestPerformChecks() {
	s.Run("valid IBAN passes", func() {
		a := account.New(account.Params{IBAN: "de89 3704 0044 0532 0130 00"})
		s.NoError(a.PerformChecks())
	})

	s.Run("checksum failure propagates and IBAN stays canonical", func() {
		a := account.New(account.Params{IBAN: "de89 3704 0044 0532 0130 01"})
		err := a.PerformChecks()
		s.ErrorIs(err, iban.ErrChecksumMismatch)
		s.Equal("DE89370400440532013001", a.IBAN())
	})

	s.Run("validator error is returned unchanged", func() {
		sentinel := errors.New("rejected")
		var seen string
		a := account.New(account.Params{IBAN: "de 89"}, account.WithValidator(account.ValidatorFunc(func(v string) error {
			seen = v
			return sentinel
		})))

		err := a.PerformChecks()
		s.Same(sentinel, err)
		s.Equal("DE89", seen)
	})

	s.Run("nil validator option keeps the default", func() {
		a := account.New(account.Params{IBAN: "DE89370400440532013001"}, account.WithValidator(nil))
		s.ErrorIs(a.PerformChecks(), iban.ErrChecksumMismatch)
	})
}

// =============================================================================
// Emission
// =============================================================================

func (s *AccountSuite) TestEmit() {
	s.Run("without currency tag", func() {
		a := account.New(account.Params{IBAN: "de89 3704 0044 0532 0130 00"})
		got := a.Emit(account.TagCreditorAccount)

		want := xmltree.New("CdtrAcct",
			xmltree.New("Id", xmltree.Leaf("IBAN", "DE89370400440532013000")),
		)
		s.True(want.Equal(got))
		_, hasCcy := got.Child("Ccy")
		s.False(hasCcy)
	})

	s.Run("with currency tag", func() {
		a, err := account.FromAttributes(map[string]any{
			"iban":          "de89 3704 0044 0532 0130 00",
			"has_euro_attr": true,
		})
		s.Require().NoError(err)
		got := a.Emit(account.TagDebtorAccount)

		want := xmltree.New("DbtrAcct",
			xmltree.New("Id", xmltree.Leaf("IBAN", "DE89370400440532013000")),
			xmltree.Leaf("Ccy", "EUR"),
		)
		s.True(want.Equal(got))

		id, ok := got.Child("Id")
		s.Require().True(ok)
		_, nested := id.Child("Ccy")
		s.False(nested, "Ccy must be a sibling of Id")
	})

	s.Run("empty IBAN is emitted verbatim", func() {
		got := account.New(account.Params{}).Emit("CdtrAcct")
		out, err := xmltree.Marshal(got)
		s.Require().NoError(err)
		s.Equal(`<CdtrAcct><Id><IBAN></IBAN></Id></CdtrAcct>`, string(out))
	})

	s.Run("repeated emission is read-only and independent", func() {
		a := account.New(account.Params{IBAN: "DE89370400440532013000", EmitCurrencyTag: true})
		first := a.Emit("DbtrAcct")
		second := a.Emit("DbtrAcct")

		s.True(first.Equal(second))
		s.Equal("DE89370400440532013000", a.IBAN())
		s.True(a.EmitsCurrencyTag())

		grown := first.Append(xmltree.Leaf("Extra", "x"))
		s.Equal(3, grown.Len())
		s.Equal(2, second.Len())
	})
}
