package charset

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Encoding returns the text encoding for a character set name. ECI names
// and aliases are tried first, then the IANA registry.
func Encoding(name string) (encoding.Encoding, error) {
	if eci := GetECIByName(name); eci != nil {
		return eci.Encoding, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, name)
	}
	return enc, nil
}

// Encode converts s to the named character set. Characters the set cannot
// represent are an error.
func Encode(s, name string) ([]byte, error) {
	enc, err := Encoding(name)
	if err != nil {
		return nil, err
	}
	out, _, err := transform.Bytes(enc.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("charset: encoding as %s: %w", name, err)
	}
	return out, nil
}

// Decode converts b from the named character set to a UTF-8 string.
func Decode(b []byte, name string) (string, error) {
	enc, err := Encoding(name)
	if err != nil {
		return "", err
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("charset: decoding %s: %w", name, err)
	}
	return string(out), nil
}
