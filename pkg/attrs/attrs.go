// Package attrs implements the construction contract shared by domain entities:
// an entity declares the attribute names it accepts, and construction from an
// open-ended map rejects any other name before decoding the values.
package attrs

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag Decode reads field names from.
const TagName = "attr"

var (
	// ErrUnrecognizedAttribute matches every UnrecognizedAttributeError.
	ErrUnrecognizedAttribute = errors.New("unrecognized attribute")
	// ErrInvalidAttributeValue is returned when a recognized value cannot be
	// decoded into the target field.
	ErrInvalidAttributeValue = errors.New("invalid attribute value")
)

// UnrecognizedAttributeError reports the supplied names a Schema does not allow.
type UnrecognizedAttributeError struct {
	Names   []string
	Allowed []string
}

func (e *UnrecognizedAttributeError) Error() string {
	return fmt.Sprintf("unrecognized attribute %s (allowed: %s)",
		strings.Join(e.Names, ", "), strings.Join(e.Allowed, ", "))
}

func (e *UnrecognizedAttributeError) Is(target error) bool {
	return target == ErrUnrecognizedAttribute
}

// Schema is the fixed allow-list of attribute names for one entity type.
type Schema struct {
	names []string
	index map[string]struct{}
}

// NewSchema declares the accepted attribute names. Order is kept for error
// messages.
func NewSchema(names ...string) Schema {
	s := Schema{
		names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
	}
	for _, n := range names {
		if _, dup := s.index[n]; dup {
			continue
		}
		s.index[n] = struct{}{}
		s.names = append(s.names, n)
	}
	return s
}

// Names returns a copy of the declared names.
func (s Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Allows reports whether name is declared.
func (s Schema) Allows(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Check fails with *UnrecognizedAttributeError when supplied holds any key
// outside the schema. Offending names are reported sorted.
func (s Schema) Check(supplied map[string]any) error {
	var unknown []string
	for k := range supplied {
		if !s.Allows(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &UnrecognizedAttributeError{Names: unknown, Allowed: s.Names()}
}

// Build checks supplied against the schema and decodes it into dst.
func (s Schema) Build(supplied map[string]any, dst any) error {
	if err := s.Check(supplied); err != nil {
		return err
	}
	return Decode(supplied, dst)
}

// Has reports whether name is present in supplied, whatever its value.
func Has(supplied map[string]any, name string) bool {
	_, ok := supplied[name]
	return ok
}

// Decode assigns each value in supplied onto the dst field tagged with the
// same name. Keys without a matching field are ignored; use Schema.Build to
// reject them. Scalar values are converted leniently (a number becomes its
// decimal string); nil leaves the field untouched.
func Decode(supplied map[string]any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(supplied); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAttributeValue, err)
	}
	return nil
}
