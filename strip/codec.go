package strip

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errInvalidUTF8 = errors.New("content is not valid utf-8")

// codec decodes file content to text and encodes it back with the same
// encoding. UTF-8 content passes through untouched apart from validation.
type codec struct {
	name string
	enc  encoding.Encoding
}

func lookupCodec(label string) (*codec, error) {
	if label == "" {
		label = "utf-8"
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding '%s' : %w", label, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = strings.ToLower(label)
	}
	if enc == unicode.UTF8 {
		enc = nil
	}
	return &codec{name: name, enc: enc}, nil
}

func (c *codec) decode(b []byte) (string, error) {
	if c.enc == nil {
		if !utf8.Valid(b) {
			return "", errInvalidUTF8
		}
		return string(b), nil
	}
	out, _, err := transform.Bytes(c.enc.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("decoding %s : %w", c.name, err)
	}
	return string(out), nil
}

func (c *codec) encode(s string) ([]byte, error) {
	if c.enc == nil {
		return []byte(s), nil
	}
	out, _, err := transform.Bytes(c.enc.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("encoding %s : %w", c.name, err)
	}
	return out, nil
}
