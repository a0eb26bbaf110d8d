package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"unicode"
)

// ErrInvalidName is returned when an element name is not a valid unprefixed
// XML name.
var ErrInvalidName = errors.New("xmltree: invalid element name")

// Marshal renders n without indentation.
func Marshal(n Node) ([]byte, error) {
	return MarshalIndent(n, "", "")
}

// MarshalIndent renders n, starting each nested line with prefix followed by
// one copy of indent per nesting level.
func MarshalIndent(n Node, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent(prefix, indent)
	if err := encodeNode(enc, n); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes n to w followed by a newline.
func Encode(w io.Writer, n Node, indent string) error {
	out, err := MarshalIndent(n, "", indent)
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

// MarshalXML lets a Node be embedded in documents built with encoding/xml.
// The node's own name is used; attributes on start are kept.
func (n Node) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	return encodeElement(enc, n, start.Attr)
}

func encodeNode(enc *xml.Encoder, n Node) error {
	return encodeElement(enc, n, nil)
}

func encodeElement(enc *xml.Encoder, n Node, attrs []xml.Attr) error {
	if !validName(n.name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, n.name)
	}
	start := xml.StartElement{Name: xml.Name{Local: n.name}, Attr: attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if n.text != "" {
		if err := enc.EncodeToken(xml.CharData(n.text)); err != nil {
			return err
		}
	}
	for _, c := range n.children {
		if err := encodeElement(enc, c, nil); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case unicode.IsLetter(r), r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
